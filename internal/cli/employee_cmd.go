package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/orgscope/internal/cli/formatter"
	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// noManager clears the manager in "employee update --manager".
const noManager = "none"

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"emp"},
		Short:   "Manage employees",
	}

	cmd.AddCommand(
		newEmployeeAddCmd(app),
		newEmployeeListCmd(app),
		newEmployeeShowCmd(app),
		newEmployeeUpdateCmd(app),
		newEmployeeRemoveCmd(app),
	)

	return cmd
}

type employeeFlags struct {
	id, name, title, department, manager, location, email string
	level                                                 int
	salary                                                string
}

func (f *employeeFlags) register(cmd *cobra.Command, withID bool) {
	if withID {
		cmd.Flags().StringVar(&f.id, "id", "", "Employee ID (generated when empty)")
	}
	cmd.Flags().StringVar(&f.name, "name", "", "Full name")
	cmd.Flags().StringVar(&f.title, "title", "", "Job title")
	cmd.Flags().IntVar(&f.level, "level", 5, fmt.Sprintf("Level (%d-%d)", domain.MinLevel+1, domain.MaxLevel))
	cmd.Flags().StringVar(&f.salary, "salary", "", "Annual salary")
	cmd.Flags().StringVar(&f.department, "department", "", "Department")
	cmd.Flags().StringVar(&f.manager, "manager", "", "Manager ID or name")
	cmd.Flags().StringVar(&f.location, "location", "", "Office location")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
}

func newEmployeeAddCmd(app *App) *cobra.Command {
	var f employeeFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		Long:  "Add an employee. Without --name on a terminal, an interactive form is shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var e *domain.Employee
			if f.name == "" && app.interactive() {
				managers, err := app.Employees.List(ctx)
				if err != nil {
					return err
				}
				var values employeeFormValues
				if err := employeeForm(&values, managers).Run(); err != nil {
					return fmt.Errorf("employee form: %w", err)
				}
				if e, err = values.toEmployee(); err != nil {
					return err
				}
			} else {
				if f.name == "" {
					return fmt.Errorf("--name is required")
				}
				salary, err := parseSalary(f.salary)
				if err != nil {
					return err
				}
				e = &domain.Employee{
					ID:         f.id,
					Name:       f.name,
					JobTitle:   f.title,
					Level:      f.level,
					Salary:     salary,
					Department: f.department,
					Location:   f.location,
					Email:      f.email,
				}
				if f.manager != "" {
					if e.ManagerID, err = resolveEmployeeID(ctx, app, f.manager); err != nil {
						return fmt.Errorf("resolving manager: %w", err)
					}
				}
			}

			if err := app.Employees.Add(ctx, e); err != nil {
				return err
			}
			if _, err := app.Chart.Rebuild(ctx); err != nil {
				return fmt.Errorf("rebuilding chart: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s [%s]\n", e.Name, e.ID)
			return nil
		},
	}

	f.register(cmd, true)
	return cmd
}

func newEmployeeListCmd(app *App) *cobra.Command {
	var department string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored employees in roster order",
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Employees.List(cmd.Context())
			if err != nil {
				return err
			}
			shown := employees
			if department != "" {
				shown = nil
				for _, e := range employees {
					if strings.EqualFold(e.Department, department) {
						shown = append(shown, e)
					}
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEmployeeList(shown, employees))
			return nil
		},
	}

	cmd.Flags().StringVar(&department, "department", "", "Only list this department")
	return cmd
}

func newEmployeeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show an employee with their reporting line and roll-ups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEmployeeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Employees.Get(ctx, id)
			if err != nil {
				return err
			}
			snap, err := app.snapshot(ctx)
			if err != nil {
				return err
			}
			n, _ := snap.Tree.ByID(id)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEmployee(e, snap.Tree, n))
			return nil
		},
	}
}

func newEmployeeUpdateCmd(app *App) *cobra.Command {
	var f employeeFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an employee's fields",
		Long:  `Update an employee. Only the flags given are changed; --manager none makes the employee a root.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEmployeeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Employees.Get(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				e.Name = f.name
			}
			if flags.Changed("title") {
				e.JobTitle = f.title
			}
			if flags.Changed("level") {
				e.Level = f.level
			}
			if flags.Changed("salary") {
				if e.Salary, err = parseSalary(f.salary); err != nil {
					return err
				}
			}
			if flags.Changed("department") {
				e.Department = f.department
			}
			if flags.Changed("location") {
				e.Location = f.location
			}
			if flags.Changed("email") {
				e.Email = f.email
			}
			if flags.Changed("manager") {
				e.ManagerID = ""
				if !strings.EqualFold(f.manager, noManager) {
					if e.ManagerID, err = resolveEmployeeID(ctx, app, f.manager); err != nil {
						return fmt.Errorf("resolving manager: %w", err)
					}
				}
			}

			if err := app.Employees.Update(ctx, e); err != nil {
				return err
			}
			if _, err := app.Chart.Rebuild(ctx); err != nil {
				return fmt.Errorf("rebuilding chart: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s [%s]\n", e.Name, e.ID)
			return nil
		},
	}

	f.register(cmd, false)
	return cmd
}

func newEmployeeRemoveCmd(app *App) *cobra.Command {
	var reassign bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an employee",
		Long: `Remove an employee. With --reassign their direct reports move to the
removed employee's manager; otherwise the reports become top-level.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEmployeeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Employees.Remove(ctx, id, reassign); err != nil {
				return err
			}
			if _, err := app.Chart.Rebuild(ctx); err != nil {
				return fmt.Errorf("rebuilding chart: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reassign, "reassign", false, "Move direct reports up to the removed employee's manager")
	return cmd
}

func parseSalary(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid salary %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("salary must not be negative")
	}
	return d, nil
}
