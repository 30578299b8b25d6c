// Package viewstate owns the in-memory mirror of the remote task list and all
// UI-only state, and mediates every mutation through a service.Service.
package viewstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"tasklist/internal/prefs"
	"tasklist/internal/service"
)

// ErrUnknownTask is returned when an operation names a task not held locally.
var ErrUnknownTask = errors.New("unknown task")

// ThemeFunc is called with the new value whenever dark mode changes.
type ThemeFunc func(dark bool)

// Counts summarises the local task list.
type Counts struct {
	All       int
	Completed int
	Pending   int
}

type edit struct {
	id   service.ID
	text string
}

// Controller holds the view state. It is safe for use from multiple
// goroutines; the lock is never held across a backend call, so overlapping
// operations complete in whatever order the store answers.
type Controller struct {
	svc   service.Service
	prefs prefs.Store
	log   *slog.Logger
	theme ThemeFunc

	mu      sync.Mutex
	tasks   []service.Task
	filter  Filter
	editing *edit
	draft   string
	saving  bool
	dark    bool
	err     error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used to report failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithThemeHook registers the render layer's theme callback.
// It is invoked once from New with the stored preference.
func WithThemeHook(fn ThemeFunc) Option {
	return func(c *Controller) { c.theme = fn }
}

// New creates a controller. The dark-mode flag is read once from store;
// a nil store disables persistence.
func New(svc service.Service, store prefs.Store, opts ...Option) *Controller {
	c := &Controller{
		svc:   svc,
		prefs: store,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if store != nil {
		dark, err := prefs.LoadDarkMode(store)
		if err != nil {
			c.log.Warn("read theme preference", "err", err)
		}
		c.dark = dark
	}
	if c.theme != nil {
		c.theme(c.dark)
	}
	return c
}

// Load replaces the task list with the store's collection.
// On failure the list is left as it was, which is empty at startup.
func (c *Controller) Load(ctx context.Context) error {
	tasks, err := c.svc.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.failLocked("fetch tasks", err)
	}
	c.tasks = slices.Clone(tasks)
	c.err = nil
	return nil
}

// Add creates a task from text. Blank text is a no-op. The text is sent
// untrimmed, and the task only appears once the store has confirmed it.
func (c *Controller) Add(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	task, err := c.svc.Create(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.failLocked("add task", err)
	}
	c.tasks = append(c.tasks, task)
	c.draft = ""
	c.err = nil
	return nil
}

// ToggleComplete flips the completion flag of id. The local list is not
// touched until the store answers; then the task is replaced by the server's.
func (c *Controller) ToggleComplete(ctx context.Context, id service.ID) error {
	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}
	completed := c.tasks[i].Completed
	c.mu.Unlock()

	updated, err := c.svc.Update(ctx, id, service.CompletedPatch(!completed))

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.failLocked("update completion", err)
	}
	c.replaceLocked(id, updated)
	c.err = nil
	return nil
}

// Delete removes id immediately and then asks the store to delete it.
// If the store call fails, the task is put back next to its old neighbours;
// changes made to other tasks in the meantime are kept.
func (c *Controller) Delete(ctx context.Context, id service.ID) error {
	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}
	removed := c.tasks[i]
	var prevID, nextID service.ID
	if i > 0 {
		prevID = c.tasks[i-1].ID
	}
	if i+1 < len(c.tasks) {
		nextID = c.tasks[i+1].ID
	}
	c.tasks = slices.Delete(slices.Clone(c.tasks), i, i+1)
	c.mu.Unlock()

	err := c.svc.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.restoreLocked(removed, i, prevID, nextID)
		return c.failLocked("delete task", err)
	}
	c.err = nil
	return nil
}

// restoreLocked re-inserts t before its old successor, else after its old
// predecessor, else at its old index clamped to the list.
func (c *Controller) restoreLocked(t service.Task, idx int, prevID, nextID service.ID) {
	if c.indexLocked(t.ID) >= 0 {
		return
	}
	pos := -1
	if nextID != "" {
		pos = c.indexLocked(nextID)
	}
	if pos < 0 && prevID != "" {
		if p := c.indexLocked(prevID); p >= 0 {
			pos = p + 1
		}
	}
	if pos < 0 {
		pos = min(idx, len(c.tasks))
	}
	c.tasks = slices.Insert(c.tasks, pos, t)
}

// BeginEdit enters edit mode for id with title as the working text.
func (c *Controller) BeginEdit(id service.ID, title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = &edit{id: id, text: title}
}

// SetEditText replaces the working text of the current edit.
func (c *Controller) SetEditText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing != nil {
		c.editing.text = text
	}
}

// CancelEdit leaves edit mode without saving.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = nil
}

// SaveEdit sends the working text as the new title. Blank text, or no edit
// in progress, is a no-op. On failure the edit stays open for a retry.
// The saving flag is set for the duration of the call and always released.
func (c *Controller) SaveEdit(ctx context.Context) error {
	c.mu.Lock()
	if c.editing == nil || strings.TrimSpace(c.editing.text) == "" {
		c.mu.Unlock()
		return nil
	}
	id, text := c.editing.id, c.editing.text
	c.saving = true
	c.mu.Unlock()

	updated, err := c.svc.Update(ctx, id, service.TitlePatch(text))

	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.saving = false }()
	if err != nil {
		return c.failLocked("save edit", err)
	}
	c.replaceLocked(id, updated)
	if c.editing != nil && c.editing.id == id {
		c.editing = nil
	}
	c.err = nil
	return nil
}

// SetFilter selects the visible subset. It never calls the store.
func (c *Controller) SetFilter(f Filter) error {
	if !f.Valid() {
		return fmt.Errorf("invalid filter: %d", int(f))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
	return nil
}

// SetDraft records the add-input buffer.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// ToggleDarkMode flips the theme flag, persists it and notifies the render layer.
func (c *Controller) ToggleDarkMode() error {
	c.mu.Lock()
	dark := !c.dark
	c.mu.Unlock()
	return c.SetDarkMode(dark)
}

// SetDarkMode sets the theme flag, persists it and notifies the render layer.
// A persistence failure is reported but the new value stays in effect.
func (c *Controller) SetDarkMode(dark bool) error {
	c.mu.Lock()
	c.dark = dark
	var err error
	if c.prefs != nil {
		if perr := prefs.SaveDarkMode(c.prefs, dark); perr != nil {
			err = c.failLocked("save theme preference", perr)
		}
	}
	hook := c.theme
	c.mu.Unlock()

	if hook != nil {
		hook(dark)
	}
	return err
}

// Tasks returns a copy of the local task list in store order.
func (c *Controller) Tasks() []service.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.tasks)
}

// VisibleTasks returns the tasks matching the current filter.
func (c *Controller) VisibleTasks() []service.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Visible(c.tasks, c.filter)
}

// Rows returns the visible tasks as rows, marking the one under edit.
func (c *Controller) Rows() []Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	visible := Visible(c.tasks, c.filter)
	rows := make([]Row, len(visible))
	for i, t := range visible {
		if c.editing != nil && c.editing.id == t.ID {
			rows[i] = Editing{Task: t, Buffer: c.editing.text}
		} else {
			rows[i] = Viewing{Task: t}
		}
	}
	return rows
}

// Counts returns totals over the whole list, ignoring the filter.
func (c *Controller) Counts() Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := Counts{All: len(c.tasks)}
	for _, t := range c.tasks {
		if t.Completed {
			n.Completed++
		}
	}
	n.Pending = n.All - n.Completed
	return n
}

func (c *Controller) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Editing returns the id under edit, if any.
func (c *Controller) Editing() (service.ID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return "", false
	}
	return c.editing.id, true
}

func (c *Controller) EditText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return ""
	}
	return c.editing.text
}

func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) IsSaving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

func (c *Controller) DarkMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dark
}

// Err returns the most recent failure, cleared by the next success.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// ClearErr dismisses the current failure.
func (c *Controller) ClearErr() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = nil
}

// Find returns the local task with id.
func (c *Controller) Find(id service.ID) (service.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexLocked(id); i >= 0 {
		return c.tasks[i], true
	}
	return service.Task{}, false
}

func (c *Controller) indexLocked(id service.ID) int {
	return slices.IndexFunc(c.tasks, func(t service.Task) bool { return t.ID == id })
}

func (c *Controller) replaceLocked(id service.ID, t service.Task) {
	if i := c.indexLocked(id); i >= 0 {
		c.tasks = slices.Clone(c.tasks)
		c.tasks[i] = t
	}
}

func (c *Controller) failLocked(action string, err error) error {
	c.log.Warn(action+" failed", "err", err)
	err = fmt.Errorf("%s: %w", action, err)
	c.err = err
	return err
}
