package service

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/vitrine/internal/sheetstub/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
	now  func() time.Time
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("sheetstub.service"),
		repo: p.Repo,
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]map[string]string, error) {
	rows, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, row.Cells())
	}
	return resp, nil
}

// Append adds rows at the end of the sheet. Identifiers are not checked for
// uniqueness.
func (s *Service) Append(ctx context.Context, records []map[string]any) (int, error) {
	rows := make([]domain.Row, 0, len(records))
	now := s.now().UTC()
	for _, record := range records {
		row := domain.RowFromRecord(record)
		if row == (domain.Row{}) {
			return 0, domain.ErrEmptyRecord
		}
		row.CreatedAt = now
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return 0, domain.ErrEmptyRecord
	}

	if err := s.repo.Insert(ctx, s.db, rows); err != nil {
		return 0, err
	}
	s.log.Info("rows appended", zap.Int("count", len(rows)))
	return len(rows), nil
}

func (s *Service) Update(ctx context.Context, id string, record map[string]any) (int64, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, domain.ErrInvalidID
	}

	cells := domain.CellsFromRecord(record)
	delete(cells, "id")
	if len(cells) == 0 {
		return 0, domain.ErrEmptyRecord
	}

	updated, err := s.repo.UpdateByID(ctx, s.db, id, cells)
	if err != nil {
		return 0, err
	}
	if updated == 0 {
		return 0, domain.ErrNotFound
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, domain.ErrInvalidID
	}

	deleted, err := s.repo.DeleteByID(ctx, s.db, id)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, domain.ErrNotFound
	}
	return deleted, nil
}
