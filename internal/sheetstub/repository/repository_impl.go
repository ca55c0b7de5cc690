package repository

import (
	"context"

	"github.com/smallbiznis/vitrine/internal/sheetstub/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Row, error) {
	var rows []domain.Row
	err := db.WithContext(ctx).Raw(
		`SELECT row_id, id, imagem, nome, descricao, preco, tipo, estoque, created_at
		 FROM catalog_rows ORDER BY row_id ASC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rows []domain.Row) error {
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&rows).Error
}

func (r *repo) UpdateByID(ctx context.Context, db *gorm.DB, id string, cells map[string]string) (int64, error) {
	if len(cells) == 0 {
		return 0, nil
	}
	updates := make(map[string]any, len(cells))
	for column, value := range cells {
		updates[column] = value
	}
	res := db.WithContext(ctx).Model(&domain.Row{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *repo) DeleteByID(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Row{})
	return res.RowsAffected, res.Error
}
