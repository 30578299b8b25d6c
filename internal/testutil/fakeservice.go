// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"

	"tasklist/internal/service"
)

// Operation names passed to FakeService.OnCall and CallCount.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ErrNotFound is returned when a task is not found.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int
	calls  map[string]int

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// OnCall runs at the start of every operation, before any state change
	// or injected error. Tests use it to observe the caller mid-flight.
	OnCall func(op string)
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		calls:  make(map[string]int),
	}
}

// AddTask seeds a task.
func (f *FakeService) AddTask(id, title string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: service.ID(id), Title: title, Completed: completed})
}

// Tasks returns the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.tasks)
}

// CallCount returns how many times op was invoked.
func (f *FakeService) CallCount(op string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[op]
}

// TotalCalls returns the number of operations invoked.
func (f *FakeService) TotalCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *FakeService) begin(op string) {
	f.mu.Lock()
	f.calls[op]++
	hook := f.OnCall
	f.mu.Unlock()
	if hook != nil {
		hook(op)
	}
}

// List implements service.Service.
func (f *FakeService) List(ctx context.Context) ([]service.Task, error) {
	f.begin(OpList)
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.tasks), nil
}

// Create implements service.Service.
func (f *FakeService) Create(ctx context.Context, title string) (service.Task, error) {
	f.begin(OpCreate)
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	// Generate a simple ID
	id := "new-" + strconv.Itoa(f.nextID)
	f.nextID++
	t := service.Task{ID: service.ID(id), Title: title}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// Update implements service.Service.
func (f *FakeService) Update(ctx context.Context, id service.ID, p service.Patch) (service.Task, error) {
	f.begin(OpUpdate)
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			if p.Title != nil {
				t.Title = *p.Title
			}
			if p.Completed != nil {
				t.Completed = *p.Completed
			}
			f.tasks[i] = t
			return t, nil
		}
	}
	return service.Task{}, ErrNotFound
}

// Delete implements service.Service.
func (f *FakeService) Delete(ctx context.Context, id service.ID) error {
	f.begin(OpDelete)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = slices.Delete(f.tasks, i, i+1)
			return nil
		}
	}
	return ErrNotFound
}
