package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context, db *gorm.DB) ([]Row, error)
	Insert(ctx context.Context, db *gorm.DB, rows []Row) error
	UpdateByID(ctx context.Context, db *gorm.DB, id string, cells map[string]string) (int64, error)
	DeleteByID(ctx context.Context, db *gorm.DB, id string) (int64, error)
}
