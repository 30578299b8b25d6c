package viewstate

import "tasklist/internal/service"

// Row is one entry of the rendered list: either Viewing or Editing.
type Row interface {
	// Item returns the task shown by the row.
	Item() service.Task
	isRow()
}

// Viewing is a row showing a task as-is.
type Viewing struct {
	Task service.Task
}

// Editing is the row for the task under edit, with its working buffer.
type Editing struct {
	Task   service.Task
	Buffer string
}

func (r Viewing) Item() service.Task { return r.Task }
func (r Editing) Item() service.Task { return r.Task }

func (Viewing) isRow() {}
func (Editing) isRow() {}
