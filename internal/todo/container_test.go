package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gf-haseeb/advanced-todo-system/internal/model"
)

func mustList(t *testing.T, name string) model.TaskList {
	t.Helper()
	l, err := NewTaskList(name, "")
	require.NoError(t, err)
	return l
}

func mustTask(t *testing.T, title string) model.Task {
	t.Helper()
	task, err := NewTask(title, "", model.PriorityMedium)
	require.NoError(t, err)
	return task
}

func TestContainer_AddGetRemoveList(t *testing.T) {
	c := NewContainer()
	work := mustList(t, "Work")

	require.NoError(t, c.AddList(work))
	assert.ErrorIs(t, c.AddList(work), ErrDuplicate)

	got, err := c.GetList(work.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Name)

	_, err = c.GetList("list_missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.RemoveList(work.ID, false))
	assert.ErrorIs(t, c.RemoveList(work.ID, false), ErrNotFound)
}

func TestContainer_RemoveNonEmptyList(t *testing.T) {
	c := NewContainer()
	work := mustList(t, "Work")
	require.NoError(t, c.AddList(work))

	l, err := c.GetList(work.ID)
	require.NoError(t, err)
	task := mustTask(t, "Report")
	require.NoError(t, addTask(l, task))

	// Reject policy: list and tasks stay untouched.
	err = c.RemoveList(work.ID, false)
	assert.ErrorIs(t, err, ErrListNotEmpty)

	l, err = c.GetList(work.ID)
	require.NoError(t, err)
	require.Len(t, l.Tasks, 1)
	assert.Equal(t, task.ID, l.Tasks[0].ID)

	// Cascade deletes the tasks with the list.
	require.NoError(t, c.RemoveList(work.ID, true))
	_, _, err = c.FindTask(task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContainer_FindTask(t *testing.T) {
	c := NewContainer()
	a := mustList(t, "A")
	b := mustList(t, "B")
	require.NoError(t, c.AddList(a))
	require.NoError(t, c.AddList(b))

	lb, err := c.GetList(b.ID)
	require.NoError(t, err)
	task := mustTask(t, "In B")
	require.NoError(t, addTask(lb, task))

	listID, found, err := c.FindTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, listID)
	assert.Equal(t, task.ID, found.ID)

	_, _, err = c.FindTask("task_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_TasksKeepInsertionOrder(t *testing.T) {
	l := mustList(t, "Ordered")

	first := mustTask(t, "first")
	second := mustTask(t, "second")
	third := mustTask(t, "third")
	require.NoError(t, addTask(&l, first))
	require.NoError(t, addTask(&l, second))
	require.NoError(t, addTask(&l, third))

	assert.ErrorIs(t, addTask(&l, second), ErrDuplicate)

	removed, err := removeTask(&l, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", removed.Title)

	require.Len(t, l.Tasks, 2)
	assert.Equal(t, first.ID, l.Tasks[0].ID)
	assert.Equal(t, third.ID, l.Tasks[1].ID)

	_, err = removeTask(&l, second.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplyListPatch(t *testing.T) {
	l := mustList(t, "Old")

	name := "New"
	desc := "renamed"
	require.NoError(t, applyListPatch(&l, ListPatch{Name: &name, Description: &desc}))
	assert.Equal(t, "New", l.Name)
	assert.Equal(t, "renamed", l.Description)

	empty := ""
	assert.ErrorIs(t, applyListPatch(&l, ListPatch{Name: &empty}), ErrValidation)
	assert.ErrorIs(t, applyListPatch(&l, ListPatch{}), ErrValidation)
}
