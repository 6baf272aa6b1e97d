package cli

import (
	"testing"

	"github.com/alexanderramin/orgscope/internal/interaction"
	"github.com/alexanderramin/orgscope/internal/teatest"
)

// ChartDriver wraps teatest.Driver with access to chartModel internals
// that the generic driver can't see.
type ChartDriver struct {
	*teatest.Driver
}

// NewChartDriver builds the chart browser for app, sets a terminal size
// and drains Init(), which loads the chart synchronously from the
// in-memory DB.
func NewChartDriver(t *testing.T, app *App) *ChartDriver {
	t.Helper()

	m := newChartModel(app)
	t.Cleanup(m.quit)
	d := teatest.New(t, m, teatest.WithSize(100, 30))
	d.DrainInit()

	return &ChartDriver{Driver: d}
}

func (d *ChartDriver) model() *chartModel {
	return d.Model.(*chartModel)
}

// State returns the interaction state behind the browser.
func (d *ChartDriver) State() *interaction.State {
	return d.model().st
}

// VisibleIDs returns the ids of the rows currently laid out.
func (d *ChartDriver) VisibleIDs() []string {
	rows := d.model().rows
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.Node.ID
	}
	return ids
}

// CursorID returns the id under the cursor, or "".
func (d *ChartDriver) CursorID() string {
	if row, ok := d.model().currentRow(); ok {
		return row.Node.ID
	}
	return ""
}

// Status returns the transient status line.
func (d *ChartDriver) Status() string {
	return stripANSI(d.model().status)
}

// PlainView returns the rendered view without ANSI styling.
func (d *ChartDriver) PlainView() string {
	return stripANSI(d.View())
}

// Search opens the search box, types query and presses Enter.
func (d *ChartDriver) Search(query string) {
	d.T.Helper()
	d.PressKey('/')
	d.Type(query)
	d.PressEnter()
}

// HideLayers toggles each digit key, hiding the given levels.
func (d *ChartDriver) HideLayers(keys string) {
	d.T.Helper()
	for _, r := range keys {
		d.PressKey(r)
	}
}
