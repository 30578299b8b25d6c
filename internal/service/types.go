// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque, store-assigned task identifier.
// On the wire it may be a JSON string or a JSON number.
type ID string

// UnmarshalJSON accepts both string and numeric identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid task id %s", data)
	}
	*id = ID(n.String())
	return nil
}

// Task represents a single task item.
type Task struct {
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Patch is a partial update. Nil fields are left out of the request.
type Patch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// TitlePatch returns a patch that only changes the title.
func TitlePatch(title string) Patch {
	return Patch{Title: &title}
}

// CompletedPatch returns a patch that only changes the completion flag.
func CompletedPatch(completed bool) Patch {
	return Patch{Completed: &completed}
}
