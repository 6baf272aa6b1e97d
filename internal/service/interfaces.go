package service

import (
	"context"
	"time"

	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/alexanderramin/orgscope/internal/hierarchy"
	"github.com/alexanderramin/orgscope/internal/importer"
)

type EmployeeService interface {
	Add(ctx context.Context, e *domain.Employee) error
	Get(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Remove(ctx context.Context, id string, reassignReports bool) error
}

// ImportMode selects how an imported roster combines with the stored one.
type ImportMode string

const (
	// ImportReplace swaps the stored roster for the file's contents.
	ImportReplace ImportMode = "replace"
	// ImportMerge upserts the file's records, leaving others in place.
	ImportMerge ImportMode = "merge"
)

// ImportOptions controls an import. Strict turns validation warnings into
// a failed import.
type ImportOptions struct {
	Mode   ImportMode
	Strict bool
}

// ImportResult holds the outcome of a roster import.
type ImportResult struct {
	Mode     ImportMode
	Imported int
	Warnings []error
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error)
	ImportRoster(ctx context.Context, roster *importer.RosterFile, opts ImportOptions) (*ImportResult, error)
}

// Snapshot is one immutable build of the chart. Consumers must treat Tree
// as read-only; a roster change produces a new Snapshot.
type Snapshot struct {
	Tree      *hierarchy.Tree
	Version   int
	BuiltAt   time.Time
	Headcount int
	Shadowed  int
	Orphans   int
}

type ChartService interface {
	Rebuild(ctx context.Context) (*Snapshot, error)
	Current() *Snapshot
	Subscribe(fn func(*Snapshot)) (unsubscribe func())
	Stats(ctx context.Context) (*hierarchy.Summary, error)
	LoadViewState(ctx context.Context) (*domain.ViewState, bool, error)
	SaveViewState(ctx context.Context, v *domain.ViewState) error
}
