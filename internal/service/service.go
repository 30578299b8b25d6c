// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// Service defines the interface for the remote task store.
// All HTTP calls go through this interface.
// The controller and commands never import a backend directly.
type Service interface {
	// List returns the full task collection in store order.
	List(ctx context.Context) ([]Task, error)

	// Create submits a new, not completed task and returns it with its store-assigned ID.
	// The title is not validated.
	Create(ctx context.Context, title string) (Task, error)

	// Update submits only the fields set in p and returns the resulting task.
	// A non-success status fails with ErrUpdateFailed even when a body is present.
	Update(ctx context.Context, id ID, p Patch) (Task, error)

	// Delete requests removal of a task.
	Delete(ctx context.Context, id ID) error
}

// Error kinds reported by backends. Callers treat all of them alike.
var (
	// ErrTransport indicates the request never produced a response.
	ErrTransport = errors.New("transport error")

	// ErrStatus indicates the store answered with a non-success status.
	ErrStatus = errors.New("unexpected status")

	// ErrDecode indicates a response body could not be decoded.
	ErrDecode = errors.New("decode error")

	// ErrUpdateFailed is returned by Update when the store rejects the patch.
	ErrUpdateFailed = errors.New("failed to update task")
)
