// Package access implements the access audit log: who asked for which asset,
// when, and what was granted.
package access

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/infogrid/catalog-backend/internal/domain"
)

type recordRepo interface {
	Create(ctx context.Context, rec *domain.AccessRecord) (*domain.AccessRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AccessRecord, error)
	List(ctx context.Context, page domain.Page) ([]domain.AccessRecord, error)
	ListByRange(ctx context.Context, rng domain.TimeRange, limit int) ([]domain.AccessRecord, error)
	Update(ctx context.Context, id uuid.UUID, u domain.AccessRecordUpdate) (*domain.AccessRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type userGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config bounds list and filter results.
type Config struct {
	Pages       domain.PageLimits
	FilterLimit int
}

// Service manages access records.
type Service struct {
	records recordRepo
	users   userGetter
	tx      txManager
	cfg     Config
	log     *slog.Logger
}

// NewService creates a new access audit service.
func NewService(log *slog.Logger, records recordRepo, users userGetter, tx txManager, cfg Config) *Service {
	return &Service{
		records: records,
		users:   users,
		tx:      tx,
		cfg:     cfg,
		log:     log.With("service", "access"),
	}
}
