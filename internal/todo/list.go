package todo

import (
	"fmt"
	"strings"
	"time"

	"github.com/gf-haseeb/advanced-todo-system/internal/model"
)

// NewTaskList builds an empty list with a fresh ID.
func NewTaskList(name, description string) (model.TaskList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.TaskList{}, fmt.Errorf("%w: list name must not be empty", ErrValidation)
	}
	return model.TaskList{
		ID:          model.NewListID(),
		Name:        name,
		Description: description,
		Tasks:       []model.Task{},
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// ListPatch is a partial metadata update for a list. nil => "no change".
type ListPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func applyListPatch(l *model.TaskList, p ListPatch) error {
	if p.Name == nil && p.Description == nil {
		return fmt.Errorf("%w: no updatable fields given", ErrValidation)
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return fmt.Errorf("%w: list name must not be empty", ErrValidation)
		}
		l.Name = name
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	return nil
}

// addTask appends a task to the list, keeping insertion order.
func addTask(l *model.TaskList, t model.Task) error {
	for i := range l.Tasks {
		if l.Tasks[i].ID == t.ID {
			return fmt.Errorf("%w: task %s already in list %s", ErrDuplicate, t.ID, l.ID)
		}
	}
	l.Tasks = append(l.Tasks, t)
	return nil
}

// removeTask removes and returns the task with the given ID.
func removeTask(l *model.TaskList, id model.TaskID) (model.Task, error) {
	for i := range l.Tasks {
		if l.Tasks[i].ID == id {
			t := l.Tasks[i]
			l.Tasks = append(l.Tasks[:i], l.Tasks[i+1:]...)
			return t, nil
		}
	}
	return model.Task{}, fmt.Errorf("%w: task %s in list %s", ErrNotFound, id, l.ID)
}

// taskIndex returns the position of the task with the given ID.
func taskIndex(l *model.TaskList, id model.TaskID) (int, error) {
	for i := range l.Tasks {
		if l.Tasks[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: task %s in list %s", ErrNotFound, id, l.ID)
}
