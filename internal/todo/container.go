package todo

import (
	"fmt"

	"github.com/gf-haseeb/advanced-todo-system/internal/model"
)

// Container holds every list of one manager instance. Lists are kept in
// insertion order so listings and the persisted snapshot are deterministic.
type Container struct {
	Lists []model.TaskList `json:"lists"`
}

func NewContainer() *Container {
	return &Container{Lists: []model.TaskList{}}
}

func (c *Container) AddList(l model.TaskList) error {
	for i := range c.Lists {
		if c.Lists[i].ID == l.ID {
			return fmt.Errorf("%w: list %s", ErrDuplicate, l.ID)
		}
	}
	c.Lists = append(c.Lists, l)
	return nil
}

// RemoveList deletes a list. A non-empty list is rejected with
// ErrListNotEmpty unless cascade is set, in which case its tasks go with it.
func (c *Container) RemoveList(id model.ListID, cascade bool) error {
	for i := range c.Lists {
		if c.Lists[i].ID != id {
			continue
		}
		if len(c.Lists[i].Tasks) > 0 && !cascade {
			return fmt.Errorf("%w: list %s has %d tasks", ErrListNotEmpty, id, len(c.Lists[i].Tasks))
		}
		c.Lists = append(c.Lists[:i], c.Lists[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: list %s", ErrNotFound, id)
}

func (c *Container) GetList(id model.ListID) (*model.TaskList, error) {
	for i := range c.Lists {
		if c.Lists[i].ID == id {
			return &c.Lists[i], nil
		}
	}
	return nil, fmt.Errorf("%w: list %s", ErrNotFound, id)
}

// FindTask searches every list and reports which one owns the task.
func (c *Container) FindTask(id model.TaskID) (model.ListID, *model.Task, error) {
	for i := range c.Lists {
		for j := range c.Lists[i].Tasks {
			if c.Lists[i].Tasks[j].ID == id {
				return c.Lists[i].ID, &c.Lists[i].Tasks[j], nil
			}
		}
	}
	return "", nil, fmt.Errorf("%w: task %s", ErrNotFound, id)
}

// TaskCount is the number of tasks across all lists.
func (c *Container) TaskCount() int {
	n := 0
	for i := range c.Lists {
		n += len(c.Lists[i].Tasks)
	}
	return n
}
