package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/orgscope/internal/cli/formatter"
	"github.com/alexanderramin/orgscope/internal/config"
	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/alexanderramin/orgscope/internal/hierarchy"
	"github.com/alexanderramin/orgscope/internal/interaction"
	"github.com/alexanderramin/orgscope/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Lines of chrome around the chart body.
const (
	chartHeaderLines = 2
	chartFooterLines = 2
	wheelScrollRows  = 3
)

// snapshotMsg delivers a chart build. fromSub marks snapshots read from
// the subscription channel, which must be re-armed.
type snapshotMsg struct {
	snap    *service.Snapshot
	err     error
	fromSub bool
}

type viewStateLoadedMsg struct {
	state *domain.ViewState
	found bool
	err   error
}

// highlightMsg completes a two-phase select once the layout has settled.
type highlightMsg struct{ id string }

type viewStateSavedMsg struct {
	err  error
	quit bool
}

// watchErrorMsg reports a roster watcher failure without stopping the view.
type watchErrorMsg struct{ err error }

// chartModel is the interactive chart browser.
type chartModel struct {
	app  *App
	st   *interaction.State
	keys chartKeyMap

	snap   *service.Snapshot
	rows   []interaction.VisibleRow
	lines  []string
	cursor int

	width  int
	height int

	search    textinput.Model
	searching bool
	fuzzy     bool
	results   []*hierarchy.Node
	resultIdx int

	showMetrics bool
	showHelp    bool
	status      string
	err         error

	updates     chan *service.Snapshot
	unsubscribe func()
	quitting    bool
}

func newChartModel(app *App) *chartModel {
	cfg := app.config()
	opts := interactionOptions(cfg.Chart)
	opts.PanDistance = float64(cfg.View.PanCells)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "name"
	ti.CharLimit = 64

	m := &chartModel{
		app:         app,
		st:          interaction.New(opts),
		keys:        defaultChartKeyMap(),
		search:      ti,
		showMetrics: true,
		updates:     make(chan *service.Snapshot, 1),
	}
	m.unsubscribe = app.Chart.Subscribe(m.publish)
	return m
}

// publish keeps only the newest undelivered snapshot. It runs on the
// goroutine that rebuilt the chart and never blocks it.
func (m *chartModel) publish(s *service.Snapshot) {
	for {
		select {
		case m.updates <- s:
			return
		default:
			select {
			case <-m.updates:
			default:
			}
		}
	}
}

// ── Commands ─────────────────────────────────────────────────────────────────

func (m *chartModel) loadSnapshot() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		snap, err := app.snapshot(context.Background())
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m *chartModel) waitForSnapshot() tea.Cmd {
	ch := m.updates
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg{snap: snap, fromSub: true}
	}
}

func (m *chartModel) loadViewState() tea.Cmd {
	if !m.app.config().View.RestoreState {
		return nil
	}
	chart := m.app.Chart
	return func() tea.Msg {
		v, found, err := chart.LoadViewState(context.Background())
		return viewStateLoadedMsg{state: v, found: found, err: err}
	}
}

func (m *chartModel) saveViewState(quit bool) tea.Cmd {
	if !m.app.config().View.RestoreState {
		if quit {
			m.quit()
			return tea.Quit
		}
		return nil
	}
	v := &domain.ViewState{
		ExpandedIDs:   m.st.ExpandedIDs(),
		VisibleLayers: m.st.VisibleLayers(),
		Zoom:          m.st.Zoom(),
		HighlightedID: m.st.HighlightedID(),
	}
	chart := m.app.Chart
	return func() tea.Msg {
		return viewStateSavedMsg{err: chart.SaveViewState(context.Background(), v), quit: quit}
	}
}

func (m *chartModel) scheduleHighlight(id string) tea.Cmd {
	delay := time.Duration(m.app.config().Chart.HighlightDelayMs) * time.Millisecond
	if delay <= 0 {
		return func() tea.Msg { return highlightMsg{id: id} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return highlightMsg{id: id} })
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m *chartModel) Init() tea.Cmd {
	return tea.Batch(m.loadSnapshot(), m.loadViewState(), m.waitForSnapshot())
}

func (m *chartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()
		return m, nil

	case snapshotMsg:
		var next tea.Cmd
		if msg.fromSub {
			next = m.waitForSnapshot()
		}
		if msg.err != nil {
			m.err = msg.err
			return m, next
		}
		if m.snap != nil && msg.snap.Version <= m.snap.Version {
			return m, next
		}
		if m.snap != nil {
			m.status = fmt.Sprintf("Roster reloaded: %s employees (v%d)", formatter.Count(msg.snap.Headcount), msg.snap.Version)
		}
		m.snap = msg.snap
		m.err = nil
		if m.searching {
			m.runSearch()
		}
		m.relayout()
		return m, next

	case viewStateLoadedMsg:
		if msg.err != nil {
			m.status = "Could not restore view: " + msg.err.Error()
			return m, nil
		}
		if msg.found {
			m.st.RestoreExpanded(msg.state.ExpandedIDs)
			if len(msg.state.VisibleLayers) > 0 {
				m.st.SetVisibleLayers(msg.state.VisibleLayers)
			}
			if msg.state.Zoom > 0 {
				m.st.SetZoom(msg.state.Zoom)
			}
			m.st.ApplyHighlight(msg.state.HighlightedID)
			m.relayout()
		}
		return m, nil

	case highlightMsg:
		m.st.ApplyHighlight(msg.id)
		m.focusNode(msg.id)
		return m, nil

	case viewStateSavedMsg:
		if msg.err != nil {
			m.status = "Could not save view: " + msg.err.Error()
		}
		if msg.quit {
			m.quit()
			return m, tea.Quit
		}
		return m, nil

	case watchErrorMsg:
		m.status = formatter.StyleRed.Render("Watch: " + msg.err.Error())
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.saveViewState(true)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *chartModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.saveViewState(true)

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.currentRow(); ok && row.Node.HasChildren && !row.Node.IsVirtualRoot {
			m.st.Toggle(row.Node.ID)
			m.relayout()
		}

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue("")
		m.results = nil
		m.resultIdx = 0
		m.relayout()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.ExpandAll):
		if m.snap == nil {
			return m, nil
		}
		if !m.st.ExpandAll(m.snap.Tree) {
			m.status = fmt.Sprintf("Expand all is disabled while %d layers are shown (max %d). Hide layers with 1-0.",
				len(m.st.VisibleLayers()), m.st.Options().ExpandAllLayerLimit)
		}
		m.relayout()

	case key.Matches(msg, m.keys.CollapseAll):
		if m.snap != nil {
			m.st.CollapseAll(m.snap.Tree)
			m.relayout()
		}

	case key.Matches(msg, m.keys.Reset):
		m.st.ResetView()
		m.cursor = 0
		m.relayout()

	case key.Matches(msg, m.keys.Metrics):
		m.showMetrics = !m.showMetrics
		m.relayout()

	case key.Matches(msg, m.keys.Clear):
		m.st.ClearSearch()
		m.relayout()

	case key.Matches(msg, m.keys.Layers):
		level := int(msg.Runes[0] - '0')
		if level == 0 {
			level = domain.MaxLevel
		}
		m.st.ToggleLayerVisibility(level)
		state := "hidden"
		if m.st.IsLayerVisible(level) {
			state = "shown"
		}
		m.status = fmt.Sprintf("Level %d %s", level, state)
		m.relayout()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.relayout()

	default:
		zoom := m.st.Zoom()
		res := m.st.HandleKey(interaction.KeyEvent{Key: msg.String()}, m.st.Scroll(), m.scrollSize())
		if res.Handled && m.st.Zoom() != zoom {
			m.relayout()
		}
	}
	return m, nil
}

func (m *chartModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeSearch()
		m.st.ClearSearch()
		m.relayout()
		return m, nil

	case tea.KeyEnter:
		var id string
		if m.snap != nil && len(m.results) > 0 {
			if m.resultIdx == 0 {
				id = m.st.SearchAndHighlight(m.snap.Tree)
			} else {
				id = m.st.SelectEmployee(m.snap.Tree, m.results[m.resultIdx].ID)
			}
		}
		m.closeSearch()
		m.relayout()
		if id == "" {
			return m, nil
		}
		return m, m.scheduleHighlight(id)

	case tea.KeyUp:
		if m.resultIdx > 0 {
			m.resultIdx--
		}
		return m, nil

	case tea.KeyDown:
		if m.resultIdx < len(m.results)-1 {
			m.resultIdx++
		}
		return m, nil

	case tea.KeyTab:
		m.fuzzy = !m.fuzzy
		m.runSearch()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.runSearch()
	return m, cmd
}

func (m *chartModel) runSearch() {
	if m.snap == nil {
		return
	}
	if m.fuzzy {
		m.results = m.st.SearchFuzzy(m.snap.Tree, m.search.Value())
	} else {
		m.results = m.st.Search(m.snap.Tree, m.search.Value())
	}
	if m.resultIdx >= len(m.results) {
		m.resultIdx = max(0, len(m.results)-1)
	}
	m.relayout()
}

func (m *chartModel) closeSearch() {
	m.searching = false
	m.search.Blur()
	m.search.SetValue("")
	m.results = nil
	m.resultIdx = 0
}

func (m *chartModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		delta := -1.0
		if msg.Button == tea.MouseButtonWheelDown {
			delta = 1
		}
		if m.st.HandleWheel(interaction.WheelEvent{DeltaY: delta, Ctrl: msg.Ctrl, Meta: msg.Alt}) {
			m.relayout()
			return m, nil
		}
		cur := m.st.Scroll()
		bound := m.scrollSize().MaxScroll()
		m.st.HandleScroll(clampFloat(cur.Y+delta*wheelScrollRows, 0, bound.Y), cur.X)

	case tea.MouseButtonLeft:
		idx := msg.Y - chartHeaderLines + int(m.st.Scroll().Y)
		if msg.Y >= chartHeaderLines && idx >= 0 && idx < len(m.rows) {
			m.cursor = idx
			m.relayout()
		}
	}
	return m, nil
}

func (m *chartModel) quit() {
	m.quitting = true
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// ── Layout ───────────────────────────────────────────────────────────────────

func (m *chartModel) currentRow() (interaction.VisibleRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return interaction.VisibleRow{}, false
	}
	return m.rows[m.cursor], true
}

// relayout recomputes the visible rows and rendered lines, then clamps the
// cursor and scroll offset to the new content.
func (m *chartModel) relayout() {
	m.rows, m.lines = nil, nil
	if m.snap != nil {
		m.rows = m.st.VisibleNodes(m.snap.Tree)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.snap != nil {
		out := formatter.FormatChart(formatter.ChartView{
			Rows:          m.rows,
			IsExpanded:    m.st.IsExpanded,
			HighlightedID: m.st.HighlightedID(),
			Cursor:        m.cursor,
			Indent:        indentForZoom(m.st.Zoom()),
			ShowMetrics:   m.showMetrics,
		})
		m.lines = strings.Split(strings.TrimRight(out, "\n"), "\n")
	}

	m.st.UpdateContainerSize(float64(m.width), float64(m.bodyHeight()))
	cur := m.st.Scroll()
	bound := m.scrollSize().MaxScroll()
	m.st.HandleScroll(clampFloat(cur.Y, 0, bound.Y), clampFloat(cur.X, 0, bound.X))
}

func (m *chartModel) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.rows)-1, m.cursor+delta))
	m.relayout()

	cur := m.st.Scroll()
	top, h := int(cur.Y), m.bodyHeight()
	switch {
	case m.cursor < top:
		m.st.HandleScroll(float64(m.cursor), cur.X)
	case m.cursor >= top+h:
		m.st.HandleScroll(float64(m.cursor-h+1), cur.X)
	}
}

// focusNode moves the cursor to id and scrolls so its row is centred.
func (m *chartModel) focusNode(id string) {
	m.relayout()
	for i, row := range m.rows {
		if row.Node.ID != id {
			continue
		}
		m.cursor = i
		m.relayout()
		target := interaction.ComputeScrollToCenter(m.rowRect(i), m.st.ContainerSize(), m.scrollSize())
		m.st.HandleScroll(target.Y, target.X)
		return
	}
}

// rowRect places row i in chart cell coordinates.
func (m *chartModel) rowRect(i int) interaction.Rect {
	x := float64(m.rows[i].Depth * indentForZoom(m.st.Zoom()))
	w := float64(lipgloss.Width(m.lines[i])) - x
	return interaction.Rect{X: x, Y: float64(i), Width: w, Height: 1}
}

func (m *chartModel) bodyHeight() int {
	if m.height <= 0 {
		return max(1, len(m.lines))
	}
	chrome := chartHeaderLines + chartFooterLines
	if m.searching {
		chrome += 1 + len(m.results)
	}
	if m.showHelp {
		chrome += 2
	}
	return max(1, m.height-chrome)
}

func (m *chartModel) scrollSize() interaction.ScrollSize {
	width := 0
	for _, l := range m.lines {
		width = max(width, lipgloss.Width(l))
	}
	client := m.width
	if client <= 0 {
		client = width
	}
	return interaction.ScrollSize{
		ScrollWidth:  float64(width),
		ScrollHeight: float64(len(m.lines)),
		ClientWidth:  float64(client),
		ClientHeight: float64(m.bodyHeight()),
	}
}

func clampFloat(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// ── View ─────────────────────────────────────────────────────────────────────

func (m *chartModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.viewHeader() + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case m.snap == nil:
		b.WriteString(formatter.Dim("Loading chart…") + "\n")
	default:
		scroll := m.st.Scroll()
		top, left := int(scroll.Y), int(scroll.X)
		end := min(len(m.lines), top+m.bodyHeight())
		for i := top; i < end; i++ {
			line := m.lines[i]
			if m.width > 0 {
				line = ansi.Cut(line, left, left+m.width)
			}
			b.WriteString(line + "\n")
		}
	}

	if m.searching {
		b.WriteString(m.viewSearch())
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	if m.showHelp {
		b.WriteString(renderHelp(m.keys.FullHelp()))
	} else {
		b.WriteString(renderHelp(m.keys.ShortHelp()))
	}
	return b.String()
}

func (m *chartModel) viewHeader() string {
	title := formatter.StyleHeader.Render("ORGSCOPE")
	if m.snap == nil {
		return title
	}
	parts := []string{
		fmt.Sprintf("%s employees", formatter.Count(m.snap.Headcount)),
		fmt.Sprintf("levels %s", config.FormatLayers(m.st.VisibleLayers())),
		fmt.Sprintf("zoom %d%%", int(m.st.Zoom()*100+0.5)),
		fmt.Sprintf("v%d", m.snap.Version),
	}
	if m.snap.Orphans > 0 {
		parts = append(parts, formatter.StyleRed.Render(fmt.Sprintf("%d orphaned", m.snap.Orphans)))
	}
	return title + "  " + formatter.Dim(strings.Join(parts, " · "))
}

func (m *chartModel) viewSearch() string {
	var b strings.Builder
	mode := "substring"
	if m.fuzzy {
		mode = "fuzzy"
	}
	b.WriteString(m.search.View() + "  " + formatter.Dim("("+mode+", tab to switch)") + "\n")
	for i, n := range m.results {
		line := "  " + n.Name
		if n.JobTitle != "" {
			line += formatter.Dim(" · " + n.JobTitle)
		}
		if i == m.resultIdx {
			line = formatter.StyleYellow.Render("› ") + n.Name
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
