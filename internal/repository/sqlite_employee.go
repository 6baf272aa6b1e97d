package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/orgscope/internal/db"
	"github.com/alexanderramin/orgscope/internal/domain"
)

// SQLiteEmployeeRepo implements EmployeeRepo using a SQLite database.
type SQLiteEmployeeRepo struct {
	db db.DBTX
}

// NewSQLiteEmployeeRepo creates a new SQLiteEmployeeRepo.
func NewSQLiteEmployeeRepo(conn db.DBTX) *SQLiteEmployeeRepo {
	return &SQLiteEmployeeRepo{db: conn}
}

const employeeColumns = `id, manager_id, name, level, salary, department, job_title, location, email, created_at, updated_at`

const nextSeq = `(SELECT COALESCE(MAX(seq), 0) + 1 FROM
	(SELECT seq FROM employees UNION ALL SELECT seq FROM shadowed_employees))`

// Create inserts e at the end of the roster.
func (r *SQLiteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (` + employeeColumns + `, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ` + nextSeq + `)`
	_, err := r.db.ExecContext(ctx, query, employeeArgs(e)...)
	if err != nil {
		return fmt.Errorf("inserting employee: %w", err)
	}
	return nil
}

// CreateShadowed appends e at the end of the roster as a record whose id
// a later record owns. GetByID and List never return it.
func (r *SQLiteEmployeeRepo) CreateShadowed(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO shadowed_employees (` + employeeColumns + `, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ` + nextSeq + `)`
	if _, err := r.db.ExecContext(ctx, query, employeeArgs(e)...); err != nil {
		return fmt.Errorf("inserting shadowed employee %s: %w", e.ID, err)
	}
	return nil
}

// Upsert inserts e, or updates the existing record in place keeping its
// roster position and creation time.
func (r *SQLiteEmployeeRepo) Upsert(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (` + employeeColumns + `, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ` + nextSeq + `)
		ON CONFLICT(id) DO UPDATE SET
			manager_id = excluded.manager_id,
			name = excluded.name,
			level = excluded.level,
			salary = excluded.salary,
			department = excluded.department,
			job_title = excluded.job_title,
			location = excluded.location,
			email = excluded.email,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, employeeArgs(e)...)
	if err != nil {
		return fmt.Errorf("upserting employee: %w", err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`
	e, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

// List returns the employee owning each id, in roster order.
func (r *SQLiteEmployeeRepo) List(ctx context.Context) ([]domain.Employee, error) {
	return r.list(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY seq, rowid`)
}

func (r *SQLiteEmployeeRepo) ListRoster(ctx context.Context) ([]domain.Employee, error) {
	return r.list(ctx, `SELECT `+employeeColumns+` FROM (
		SELECT `+employeeColumns+`, seq FROM employees
		UNION ALL
		SELECT `+employeeColumns+`, seq FROM shadowed_employees
	) ORDER BY seq`)
}

func (r *SQLiteEmployeeRepo) list(ctx context.Context, query string) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var out []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return out, nil
}

func (r *SQLiteEmployeeRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting employees: %w", err)
	}
	return n, nil
}

// Delete removes the employee with id and any shadowed records of it.
// Reports reassigned to nobody become roots on the next build; their
// manager_id is left as is.
func (r *SQLiteEmployeeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM shadowed_employees WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting shadowed records: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("employee %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) ReassignShadowedReports(ctx context.Context, from, to string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE shadowed_employees SET manager_id = ?, updated_at = ? WHERE manager_id = ?`,
		to, nowUTC(), from)
	if err != nil {
		return 0, fmt.Errorf("reassigning shadowed reports: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reassigning shadowed reports: %w", err)
	}
	return int(n), nil
}

// ReplaceAll swaps the whole roster for employees, numbered in slice order.
// The last record with a given id owns it; earlier ones are stored as
// shadowed records at their own positions. Callers run this inside a unit
// of work so a failure leaves the old roster.
func (r *SQLiteEmployeeRepo) ReplaceAll(ctx context.Context, employees []domain.Employee) error {
	for _, table := range []string{"employees", "shadowed_employees"} {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	last := make(map[string]int, len(employees))
	for i := range employees {
		last[employees[i].ID] = i
	}

	for i := range employees {
		table := "employees"
		if last[employees[i].ID] != i {
			table = "shadowed_employees"
		}
		query := `INSERT INTO ` + table + ` (` + employeeColumns + `, seq)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		args := append(employeeArgs(&employees[i]), i+1)
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting employee %s: %w", employees[i].ID, err)
		}
	}
	return nil
}

func employeeArgs(e *domain.Employee) []any {
	return []any{
		e.ID,
		e.ManagerID,
		e.Name,
		e.Level,
		e.Salary.String(),
		e.Department,
		e.JobTitle,
		e.Location,
		e.Email,
		formatTimestamp(e.CreatedAt),
		formatTimestamp(e.UpdatedAt),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var e domain.Employee
	var salary, createdAt, updatedAt string

	err := row.Scan(
		&e.ID, &e.ManagerID, &e.Name, &e.Level, &salary,
		&e.Department, &e.JobTitle, &e.Location, &e.Email,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning employee: %w", err)
	}

	e.Salary = parseSalary(salary)
	if e.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
