package repository

import (
	"context"

	"github.com/alexanderramin/orgscope/internal/domain"
)

// EmployeeRepo stores the roster. Each id addresses one employee; earlier
// imported records that reused an id are kept as shadowed records, which
// only ListRoster returns.
type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	Upsert(ctx context.Context, e *domain.Employee) error
	CreateShadowed(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	// ListRoster returns every record, shadowed ones included, in roster
	// order. This is the input the hierarchy builder sees.
	ListRoster(ctx context.Context) ([]domain.Employee, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
	// ReassignShadowedReports points shadowed records that report to from
	// at to instead, returning how many moved.
	ReassignShadowedReports(ctx context.Context, from, to string) (int, error)
	ReplaceAll(ctx context.Context, employees []domain.Employee) error
}

// ViewStateRepo persists the chart browser's expansion, layer filter and
// zoom between sessions.
type ViewStateRepo interface {
	Get(ctx context.Context, id string) (*domain.ViewState, error)
	Upsert(ctx context.Context, v *domain.ViewState) error
}
