package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/shopspring/decimal"
)

var testEmployeeCounter atomic.Int64

// Employee options
type EmployeeOption func(*domain.Employee)

func WithID(id string) EmployeeOption {
	return func(e *domain.Employee) {
		e.ID = id
	}
}

func WithManager(id string) EmployeeOption {
	return func(e *domain.Employee) {
		e.ManagerID = id
	}
}

func WithLevel(level int) EmployeeOption {
	return func(e *domain.Employee) {
		e.Level = level
	}
}

func WithSalary(amount int64) EmployeeOption {
	return func(e *domain.Employee) {
		e.Salary = decimal.NewFromInt(amount)
	}
}

func WithDepartment(dept string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Department = dept
	}
}

func WithJobTitle(title string) EmployeeOption {
	return func(e *domain.Employee) {
		e.JobTitle = title
	}
}

// NewTestEmployee returns a level-5 employee with a unique id and a
// 100000 salary.
func NewTestEmployee(name string, opts ...EmployeeOption) *domain.Employee {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.Employee{
		ID:         fmt.Sprintf("emp-%03d", testEmployeeCounter.Add(1)),
		Name:       name,
		Level:      5,
		Salary:     decimal.NewFromInt(100000),
		Department: "Engineering",
		JobTitle:   "Engineer",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Roster builds a small three-level organization: a CEO, two VPs and
// three ICs. Salaries are chosen so every roll-up is a round number.
//
//	ceo (1, 300)
//	├── vp-eng (2, 200)
//	│   ├── eng-1 (6, 100)
//	│   └── eng-2 (6, 100)
//	└── vp-ops (2, 150)
//	    └── ops-1 (7, 50)
func Roster() []domain.Employee {
	mk := func(id, mgr, name string, level int, salary int64, dept string) domain.Employee {
		return *NewTestEmployee(name, WithID(id), WithManager(mgr), WithLevel(level), WithSalary(salary), WithDepartment(dept))
	}
	return []domain.Employee{
		mk("ceo", "", "Cora", 1, 300, "Exec"),
		mk("vp-eng", "ceo", "Victor", 2, 200, "Engineering"),
		mk("eng-1", "vp-eng", "Erin", 6, 100, "Engineering"),
		mk("eng-2", "vp-eng", "Eli", 6, 100, "Engineering"),
		mk("vp-ops", "ceo", "Olga", 2, 150, "Operations"),
		mk("ops-1", "vp-ops", "Omar", 7, 50, "Operations"),
	}
}
