package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/orgscope/internal/db"
	"github.com/alexanderramin/orgscope/internal/importer"
	"github.com/alexanderramin/orgscope/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	roster, err := importer.LoadRoster(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading roster file: %w", err)
	}
	return s.ImportRoster(ctx, roster, opts)
}

// ImportRoster writes the roster in a single transaction, so a failure
// part way leaves the stored roster untouched.
func (s *importService) ImportRoster(ctx context.Context, roster *importer.RosterFile, opts ImportOptions) (result *ImportResult, err error) {
	if opts.Mode == "" {
		opts.Mode = ImportReplace
	}
	fields := map[string]any{"mode": string(opts.Mode), "records": len(roster.Employees)}
	defer observe(ctx, s.observer, "import-roster", fields)(&err)

	if opts.Mode != ImportReplace && opts.Mode != ImportMerge {
		return nil, fmt.Errorf("unknown import mode %q", opts.Mode)
	}

	warnings := importer.ValidateRoster(roster)
	fields["warnings"] = len(warnings)
	if opts.Strict && len(warnings) > 0 {
		return nil, formatValidationErrors(warnings)
	}

	employees := importer.Convert(roster)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEmployees := repository.NewSQLiteEmployeeRepo(tx)
		if opts.Mode == ImportReplace {
			return txEmployees.ReplaceAll(ctx, employees)
		}
		last := make(map[string]int, len(employees))
		for i := range employees {
			last[employees[i].ID] = i
		}
		for i := range employees {
			if last[employees[i].ID] != i {
				if err := txEmployees.CreateShadowed(ctx, &employees[i]); err != nil {
					return err
				}
				continue
			}
			if err := txEmployees.Upsert(ctx, &employees[i]); err != nil {
				return fmt.Errorf("merging employee %s: %w", employees[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Mode:     opts.Mode,
		Imported: len(employees),
		Warnings: warnings,
	}, nil
}
