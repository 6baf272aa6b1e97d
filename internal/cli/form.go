package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/orgscope/internal/cli/formatter"
	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// orgscopeHuhTheme returns a huh theme matching the gruvbox palette.
func orgscopeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// employeeFormValues holds the raw strings collected by employeeForm.
type employeeFormValues struct {
	Name       string
	JobTitle   string
	Level      string
	Salary     string
	Department string
	ManagerID  string
}

// toEmployee converts validated form values. Blank level and salary
// become 0.
func (v employeeFormValues) toEmployee() (*domain.Employee, error) {
	e := &domain.Employee{
		Name:       strings.TrimSpace(v.Name),
		JobTitle:   strings.TrimSpace(v.JobTitle),
		Department: strings.TrimSpace(v.Department),
		ManagerID:  strings.TrimSpace(v.ManagerID),
		Salary:     decimal.Zero,
	}
	if v.Level != "" {
		lvl, err := strconv.Atoi(v.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid level %q: %w", v.Level, err)
		}
		e.Level = lvl
	}
	if v.Salary != "" {
		s, err := decimal.NewFromString(strings.ReplaceAll(v.Salary, ",", ""))
		if err != nil {
			return nil, fmt.Errorf("invalid salary %q: %w", v.Salary, err)
		}
		e.Salary = s
	}
	return e, nil
}

// employeeForm builds the interactive add form. managers supplies the
// options for the manager picker; the first option is "no manager".
func employeeForm(v *employeeFormValues, managers []domain.Employee) *huh.Form {
	options := make([]huh.Option[string], 0, len(managers)+1)
	options = append(options, huh.NewOption("(none, top of the organization)", ""))
	for _, m := range managers {
		label := m.Name
		if m.JobTitle != "" {
			label = fmt.Sprintf("%s, %s", m.Name, m.JobTitle)
		}
		options = append(options, huh.NewOption(label, m.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&v.Name).
				Validate(validateRequired("name")),
			huh.NewInput().
				Title("Job Title").
				Placeholder("Engineer").
				Value(&v.JobTitle),
			huh.NewInput().
				Title(fmt.Sprintf("Level (%d-%d)", domain.MinLevel+1, domain.MaxLevel)).
				Placeholder("5").
				Value(&v.Level).
				Validate(validateLevel),
			huh.NewInput().
				Title("Salary").
				Placeholder("100000").
				Value(&v.Salary).
				Validate(validateSalary),
			huh.NewInput().
				Title("Department").
				Value(&v.Department),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Reports To").
				Options(options...).
				Height(10).
				Value(&v.ManagerID),
		),
	).WithTheme(orgscopeHuhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateLevel accepts empty or an integer in the real level range.
func validateLevel(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < domain.MinLevel+1 || v > domain.MaxLevel {
		return fmt.Errorf("enter a level from %d to %d", domain.MinLevel+1, domain.MaxLevel)
	}
	return nil
}

// validateSalary accepts empty or a non-negative amount, commas allowed.
func validateSalary(s string) error {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil || d.IsNegative() {
		return fmt.Errorf("enter a non-negative amount")
	}
	return nil
}
