package todo

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gf-haseeb/advanced-todo-system/internal/model"
)

// Manager is the sole entry point for callers (REST layer, CLI). It owns
// one container and one storage handle, and serializes every operation
// with a single mutex: the in-memory container plus the snapshot file form
// one shared resource with no other isolation.
//
// Every mutation follows the same two-phase contract: mutate in memory,
// then persist the full snapshot. When the save fails the in-memory
// mutation stays applied and the storage error is surfaced; Resave retries
// the persist without redoing the logical change.
type Manager struct {
	mu        sync.Mutex
	container *Container
	storage   *Storage
	log       zerolog.Logger
}

// NewManager loads the snapshot at path, or starts empty on first run.
func NewManager(path string, logger zerolog.Logger) (*Manager, error) {
	storage := NewStorage(path)
	container, err := storage.Load()
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("path", path).
		Int("lists", len(container.Lists)).
		Int("tasks", container.TaskCount()).
		Msg("snapshot loaded")
	return &Manager{
		container: container,
		storage:   storage,
		log:       logger,
	}, nil
}

func (m *Manager) persist() error {
	if err := m.storage.Save(m.container); err != nil {
		m.log.Error().Err(err).Msg("snapshot save failed; in-memory state is ahead of disk")
		return err
	}
	return nil
}

// cloneList detaches a list from the container's backing arrays so
// callers never observe later in-place mutations.
func cloneList(l model.TaskList) model.TaskList {
	out := l
	out.Tasks = make([]model.Task, len(l.Tasks))
	copy(out.Tasks, l.Tasks)
	return out
}

// Resave retries persisting the current in-memory state after a failed save.
func (m *Manager) Resave() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persist()
}

// CreateList adds a new empty list.
func (m *Manager) CreateList(name, description string) (model.TaskList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := NewTaskList(name, description)
	if err != nil {
		return model.TaskList{}, err
	}
	if err := m.container.AddList(l); err != nil {
		return model.TaskList{}, err
	}
	if err := m.persist(); err != nil {
		return model.TaskList{}, err
	}
	m.log.Info().Str("list_id", string(l.ID)).Str("name", l.Name).Msg("list created")
	return l, nil
}

// EnsureList returns the first list with the given name, creating it when
// absent. Used by the CLI so "todo tasks add" works on a fresh store.
func (m *Manager) EnsureList(name, description string) (model.TaskList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.container.Lists {
		if m.container.Lists[i].Name == name {
			return cloneList(m.container.Lists[i]), nil
		}
	}
	l, err := NewTaskList(name, description)
	if err != nil {
		return model.TaskList{}, err
	}
	if err := m.container.AddList(l); err != nil {
		return model.TaskList{}, err
	}
	if err := m.persist(); err != nil {
		return model.TaskList{}, err
	}
	return l, nil
}

// Lists returns every list in insertion order.
func (m *Manager) Lists() []model.TaskList {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.TaskList, len(m.container.Lists))
	for i := range m.container.Lists {
		out[i] = cloneList(m.container.Lists[i])
	}
	return out
}

func (m *Manager) GetList(id model.ListID) (model.TaskList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.container.GetList(id)
	if err != nil {
		return model.TaskList{}, err
	}
	return cloneList(*l), nil
}

func (m *Manager) UpdateList(id model.ListID, p ListPatch) (model.TaskList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.container.GetList(id)
	if err != nil {
		return model.TaskList{}, err
	}
	if err := applyListPatch(l, p); err != nil {
		return model.TaskList{}, err
	}
	if err := m.persist(); err != nil {
		return model.TaskList{}, err
	}
	return cloneList(*l), nil
}

// DeleteList removes a list. Non-empty lists are rejected unless cascade
// is set, in which case their tasks are deleted too.
func (m *Manager) DeleteList(id model.ListID, cascade bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.container.RemoveList(id, cascade); err != nil {
		return err
	}
	if err := m.persist(); err != nil {
		return err
	}
	m.log.Info().Str("list_id", string(id)).Bool("cascade", cascade).Msg("list deleted")
	return nil
}

// CreateTask creates a task inside the given list.
func (m *Manager) CreateTask(listID model.ListID, title, description string, priority model.Priority) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.container.GetList(listID)
	if err != nil {
		return model.Task{}, err
	}
	t, err := NewTask(title, description, priority)
	if err != nil {
		return model.Task{}, err
	}
	if err := addTask(l, t); err != nil {
		return model.Task{}, err
	}
	if err := m.persist(); err != nil {
		return model.Task{}, err
	}
	m.log.Info().Str("task_id", string(t.ID)).Str("list_id", string(listID)).Msg("task created")
	return t, nil
}

// GetTask looks the task up across all lists and reports its owner.
func (m *Manager) GetTask(id model.TaskID) (model.ListID, model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	listID, t, err := m.container.FindTask(id)
	if err != nil {
		return "", model.Task{}, err
	}
	return listID, *t, nil
}

// TasksIn returns one list's tasks in insertion order.
func (m *Manager) TasksIn(listID model.ListID) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.container.GetList(listID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, len(l.Tasks))
	copy(out, l.Tasks)
	return out, nil
}

// AllTasks returns every task across all lists, list by list in order.
func (m *Manager) AllTasks() []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Task, 0, m.container.TaskCount())
	for i := range m.container.Lists {
		out = append(out, m.container.Lists[i].Tasks...)
	}
	return out
}

func (m *Manager) UpdateTask(id model.TaskID, p TaskPatch) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, t, err := m.container.FindTask(id)
	if err != nil {
		return model.Task{}, err
	}
	if err := applyTaskPatch(t, p); err != nil {
		return model.Task{}, err
	}
	if err := m.persist(); err != nil {
		return model.Task{}, err
	}
	return *t, nil
}

func (m *Manager) DeleteTask(id model.TaskID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	listID, _, err := m.container.FindTask(id)
	if err != nil {
		return err
	}
	l, err := m.container.GetList(listID)
	if err != nil {
		return err
	}
	if _, err := removeTask(l, id); err != nil {
		return err
	}
	if err := m.persist(); err != nil {
		return err
	}
	m.log.Info().Str("task_id", string(id)).Str("list_id", string(listID)).Msg("task deleted")
	return nil
}

// MoveTaskToList moves one task between two lists. The removal and the
// insertion happen as a single in-memory step before the single save, so a
// save failure leaves the task in the target list in memory and never
// detached from both lists.
func (m *Manager) MoveTaskToList(sourceID model.ListID, taskID model.TaskID, targetID model.ListID) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sourceID == targetID {
		return model.Task{}, fmt.Errorf("%w: source and target list are the same (%s)", ErrValidation, sourceID)
	}

	source, err := m.container.GetList(sourceID)
	if err != nil {
		return model.Task{}, err
	}
	idx, err := taskIndex(source, taskID)
	if err != nil {
		return model.Task{}, err
	}
	target, err := m.container.GetList(targetID)
	if err != nil {
		return model.Task{}, err
	}

	orig := source.Tasks[idx]
	source.Tasks = append(source.Tasks[:idx], source.Tasks[idx+1:]...)
	t := orig
	t.Touch()
	if err := addTask(target, t); err != nil {
		// Put the task back at its old position, untouched; the move must
		// never leave it detached.
		source.Tasks = append(source.Tasks, model.Task{})
		copy(source.Tasks[idx+1:], source.Tasks[idx:])
		source.Tasks[idx] = orig
		return model.Task{}, err
	}

	if err := m.persist(); err != nil {
		return model.Task{}, err
	}
	m.log.Info().
		Str("task_id", string(taskID)).
		Str("source", string(sourceID)).
		Str("target", string(targetID)).
		Msg("task moved")
	return t, nil
}
