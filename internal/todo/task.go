package todo

import (
	"fmt"
	"strings"
	"time"

	"github.com/gf-haseeb/advanced-todo-system/internal/model"
)

// NewTask builds a pending task with a fresh ID and both timestamps set.
// An empty priority defaults to medium.
func NewTask(title, description string, priority model.Priority) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return model.Task{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, priority)
	}

	now := time.Now().UTC()
	return model.Task{
		ID:          model.NewTaskID(),
		Title:       title,
		Description: description,
		Status:      model.StatusPending,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// TaskPatch is a partial update. nil pointer => "no change".
// Fields outside this set are rejected at the decoding boundary.
type TaskPatch struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Status      *model.Status   `json:"status,omitempty"`
	Priority    *model.Priority `json:"priority,omitempty"`
}

func (p TaskPatch) isZero() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Priority == nil
}

// applyTaskPatch validates every field of the patch before touching the
// task, so a rejected patch never leaves a partially applied task behind.
func applyTaskPatch(t *model.Task, p TaskPatch) error {
	if p.isZero() {
		return fmt.Errorf("%w: no updatable fields given", ErrValidation)
	}
	var title string
	if p.Title != nil {
		title = strings.TrimSpace(*p.Title)
		if title == "" {
			return fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, *p.Priority)
	}

	if p.Title != nil {
		t.Title = title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	t.Touch()
	return nil
}
