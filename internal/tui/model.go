// Package tui is the interactive render layer over a viewstate.Controller.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasklist/internal/service"
	"tasklist/internal/viewstate"
)

const (
	appTitle         = "To-Do List"
	addPlaceholder   = "Add a new task..."
	loadingText      = "Loading tasks..."
	noTasksText      = "No tasks. Press 'a' to add one."
	noMatchesText    = "No tasks match this filter."
	savingText       = "saving..."
	inputCharLimit   = 256
	defaultInputSize = 50
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// Messages carrying backend results back into Update.
type (
	loadedMsg struct{ err error }
	opDoneMsg struct {
		op  string
		err error
	}
)

// Model is the bubbletea model. All task state lives in the controller; the
// model only keeps cursor, inputs and layout.
type Model struct {
	ctx  context.Context
	ctrl *viewstate.Controller
	keys KeyMap

	mode    mode
	cursor  int
	loading bool
	width   int

	addInput  textinput.Model
	editInput textinput.Model
}

// New creates a model bound to ctrl. Backend calls made by the model use ctx.
func New(ctx context.Context, ctrl *viewstate.Controller) Model {
	add := textinput.New()
	add.Placeholder = addPlaceholder
	add.CharLimit = inputCharLimit
	add.Width = defaultInputSize

	edit := textinput.New()
	edit.CharLimit = inputCharLimit
	edit.Width = defaultInputSize

	return Model{
		ctx:       ctx,
		ctrl:      ctrl,
		keys:      DefaultKeyMap(),
		loading:   true,
		addInput:  add,
		editInput: edit,
	}
}

// Run starts the interactive program and blocks until it exits.
func Run(ctx context.Context, ctrl *viewstate.Controller) error {
	p := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return loadedMsg{err: ctrl.Load(ctx)}
	}
}

// opCmd runs fn as a backend operation off the update loop.
func (m Model) opCmd(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := max(10, msg.Width-appStyle.GetHorizontalFrameSize()-inputStyle.GetHorizontalFrameSize()-2)
		m.addInput.Width = w
		m.editInput.Width = w
		return m, nil

	case loadedMsg:
		m.loading = false
		m.clampCursor()
		return m, nil

	case opDoneMsg:
		switch msg.op {
		case "add":
			if msg.err == nil {
				m.addInput.SetValue(m.ctrl.Draft())
			}
		case "save":
			if _, editing := m.ctrl.Editing(); !editing && m.mode == modeEdit {
				m.mode = modeList
				m.editInput.Blur()
			}
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeEdit:
			return m.updateEdit(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctrl.Err() != nil && !key.Matches(msg, m.keys.Quit) {
		m.ctrl.ClearErr()
	}

	rows := m.ctrl.Rows()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.All):
		m.setFilter(viewstate.All)
	case key.Matches(msg, m.keys.Completed):
		m.setFilter(viewstate.Completed)
	case key.Matches(msg, m.keys.Pending):
		m.setFilter(viewstate.Pending)
	case key.Matches(msg, m.keys.NextFilter):
		next := viewstate.Filters[(int(m.ctrl.Filter())+1)%len(viewstate.Filters)]
		m.setFilter(next)

	case key.Matches(msg, m.keys.Theme):
		// Failure is kept in ctrl.Err and shown by View.
		_ = m.ctrl.ToggleDarkMode()

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.addInput.SetValue(m.ctrl.Draft())
		return m, m.addInput.Focus()

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(rows); ok {
			id := t.ID
			return m, m.opCmd("toggle", func(ctx context.Context) error {
				return m.ctrl.ToggleComplete(ctx, id)
			})
		}

	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(rows); ok {
			m.ctrl.BeginEdit(t.ID, t.Title)
			m.mode = modeEdit
			m.editInput.SetValue(t.Title)
			m.editInput.CursorEnd()
			return m, m.editInput.Focus()
		}

	case key.Matches(msg, m.keys.Delete):
		if m.ctrl.IsSaving() {
			return m, nil
		}
		if t, ok := m.selected(rows); ok {
			id := t.ID
			return m, m.opCmd("delete", func(ctx context.Context) error {
				return m.ctrl.Delete(ctx, id)
			})
		}
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Esc):
		m.mode = modeList
		m.addInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		text := m.addInput.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		return m, m.opCmd("add", func(ctx context.Context) error {
			return m.ctrl.Add(ctx, text)
		})
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	m.ctrl.SetDraft(m.addInput.Value())
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Esc):
		m.ctrl.CancelEdit()
		m.mode = modeList
		m.editInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if m.ctrl.IsSaving() {
			return m, nil
		}
		return m, m.opCmd("save", m.ctrl.SaveEdit)
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.ctrl.SetEditText(m.editInput.Value())
	return m, cmd
}

func (m *Model) setFilter(f viewstate.Filter) {
	if err := m.ctrl.SetFilter(f); err == nil {
		m.cursor = 0
	}
}

func (m Model) selected(rows []viewstate.Row) (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(rows) {
		return service.Task{}, false
	}
	return rows[m.cursor].Item(), true
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	var parts []string

	title := appTitle
	if m.ctrl.DarkMode() {
		title += "  ☾"
	} else {
		title += "  ☀"
	}
	parts = append(parts, titleStyle.Render(title))
	parts = append(parts, m.renderFilters())

	if m.mode == modeAdd {
		parts = append(parts, inputStyle.Render(m.addInput.View()))
	}

	switch {
	case m.loading && len(m.ctrl.Tasks()) == 0:
		parts = append(parts, mutedStyle.Render(loadingText))
	default:
		parts = append(parts, m.renderRows())
	}

	if err := m.ctrl.Err(); err != nil {
		parts = append(parts, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
	}

	help := helpLine(m.keys, m.mode)
	if m.ctrl.IsSaving() {
		help = savingText + " │ " + help
	}
	parts = append(parts, helpStyle.Render(help))

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderFilters() string {
	counts := m.ctrl.Counts()
	current := m.ctrl.Filter()
	labels := map[viewstate.Filter]int{
		viewstate.All:       counts.All,
		viewstate.Completed: counts.Completed,
		viewstate.Pending:   counts.Pending,
	}
	var tabs []string
	for _, f := range viewstate.Filters {
		label := fmt.Sprintf("%s (%d)", f, labels[f])
		if f == current {
			tabs = append(tabs, filterOnStyle.Render(label))
		} else {
			tabs = append(tabs, filterStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderRows() string {
	rows := m.ctrl.Rows()
	if len(rows) == 0 {
		if len(m.ctrl.Tasks()) == 0 {
			return mutedStyle.Render(noTasksText)
		}
		return mutedStyle.Render(noMatchesText)
	}

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("❯ ")
		}
		var line string
		switch r := row.(type) {
		case viewstate.Editing:
			line = editStyle.Render(m.editInput.View())
		case viewstate.Viewing:
			line = renderTask(r.Task)
		}
		lines = append(lines, prefix+line)
	}
	return strings.Join(lines, "\n")
}

func renderTask(t service.Task) string {
	if t.Completed {
		return "[x] " + doneStyle.Render(t.Title)
	}
	return "[ ] " + t.Title
}
