package model

import (
	"time"

	"github.com/rs/xid"
)

type ListID string

// TaskList is a named, insertion-ordered collection of tasks. The slice
// order is the canonical order; it is what gets persisted and listed.
type TaskList struct {
	ID          ListID    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Tasks       []Task    `json:"tasks"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewListID() ListID {
	return ListID("list_" + xid.New().String())
}
