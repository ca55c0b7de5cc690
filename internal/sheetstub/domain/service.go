package domain

import (
	"context"
	"errors"
)

// Service is the sheet as exposed over HTTP.
type Service interface {
	List(ctx context.Context) ([]map[string]string, error)
	Append(ctx context.Context, records []map[string]any) (int, error)
	Update(ctx context.Context, id string, record map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

var (
	ErrNotFound    = errors.New("not_found")
	ErrInvalidID   = errors.New("invalid_id")
	ErrEmptyRecord = errors.New("empty_record")
)
