package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/orgscope/internal/db"
	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/alexanderramin/orgscope/internal/repository"
	"github.com/google/uuid"
)

type employeeService struct {
	employees repository.EmployeeRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewEmployeeService(
	employees repository.EmployeeRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) EmployeeService {
	return &employeeService{
		employees: employees,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Add stores a new employee at the end of the roster. An empty id is
// replaced with a UUID. A named manager must already exist.
func (s *employeeService) Add(ctx context.Context, e *domain.Employee) (err error) {
	fields := map[string]any{"name": e.Name}
	defer observe(ctx, s.observer, "add-employee", fields)(&err)

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	fields["employee_id"] = e.ID
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	if err = e.Validate(); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEmployees := repository.NewSQLiteEmployeeRepo(tx)
		if e.HasManager() {
			if _, err := txEmployees.GetByID(ctx, e.ManagerID); err != nil {
				return fmt.Errorf("resolving manager: %w", err)
			}
		}
		return txEmployees.Create(ctx, e)
	})
}

func (s *employeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.List(ctx)
}

// Update rewrites an existing employee. Changing the manager is refused
// when the new manager is missing or sits below e in the hierarchy.
func (s *employeeService) Update(ctx context.Context, e *domain.Employee) (err error) {
	defer observe(ctx, s.observer, "update-employee", map[string]any{"employee_id": e.ID})(&err)

	if err = e.Validate(); err != nil {
		return err
	}
	e.UpdatedAt = time.Now().UTC()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEmployees := repository.NewSQLiteEmployeeRepo(tx)
		existing, err := txEmployees.GetByID(ctx, e.ID)
		if err != nil {
			return err
		}
		e.CreatedAt = existing.CreatedAt

		if e.HasManager() && e.ManagerID != existing.ManagerID {
			roster, err := txEmployees.List(ctx)
			if err != nil {
				return err
			}
			if err := checkNoCycle(roster, e.ID, e.ManagerID); err != nil {
				return err
			}
		}
		return txEmployees.Upsert(ctx, e)
	})
}

// Remove deletes an employee. With reassignReports the direct reports move
// up to the removed employee's manager; otherwise they become roots.
func (s *employeeService) Remove(ctx context.Context, id string, reassignReports bool) (err error) {
	fields := map[string]any{"employee_id": id, "reassign": reassignReports}
	defer observe(ctx, s.observer, "remove-employee", fields)(&err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEmployees := repository.NewSQLiteEmployeeRepo(tx)
		target, err := txEmployees.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if reassignReports {
			roster, err := txEmployees.List(ctx)
			if err != nil {
				return err
			}
			moved := 0
			for i := range roster {
				r := &roster[i]
				if r.ID == id || r.ManagerID != id {
					continue
				}
				r.ManagerID = ""
				if target.HasManager() {
					r.ManagerID = target.ManagerID
				}
				r.UpdatedAt = time.Now().UTC()
				if err := txEmployees.Upsert(ctx, r); err != nil {
					return fmt.Errorf("reassigning %s: %w", r.ID, err)
				}
				moved++
			}
			newManager := ""
			if target.HasManager() {
				newManager = target.ManagerID
			}
			n, err := txEmployees.ReassignShadowedReports(ctx, id, newManager)
			if err != nil {
				return err
			}
			fields["reassigned"] = moved + n
		}

		return txEmployees.Delete(ctx, id)
	})
}

// checkNoCycle walks up from managerID and fails if it reaches id.
func checkNoCycle(roster []domain.Employee, id, managerID string) error {
	managerOf := make(map[string]string, len(roster))
	for _, r := range roster {
		managerOf[r.ID] = r.ManagerID
	}
	if _, ok := managerOf[managerID]; !ok {
		return fmt.Errorf("manager %s: %w", managerID, repository.ErrNotFound)
	}

	cur := managerID
	for steps := 0; cur != "" && steps <= len(roster); steps++ {
		if cur == id {
			return fmt.Errorf("%s reporting to %s: %w", id, managerID, ErrManagerCycle)
		}
		next := managerOf[cur]
		if next == cur {
			break
		}
		cur = next
	}
	return nil
}
