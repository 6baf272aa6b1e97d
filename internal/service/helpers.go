package service

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrManagerCycle is returned when a manager assignment would make an
// employee report to one of their own reports.
var ErrManagerCycle = errors.New("manager assignment creates a reporting cycle")

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("roster validation failed (%d warnings):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

// observe reports a use case to obs once the returned func runs. Callers
// defer it with a pointer to their named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, fields map[string]any) func(*error) {
	startedAt := time.Now().UTC()
	return func(errp *error) {
		var err error
		if errp != nil {
			err = *errp
		}
		obs.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}
}
