package todo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gf-haseeb/advanced-todo-system/internal/model"
)

const snapshotVersion = 1

// snapshot is the on-disk shape of a container. Lists (and the tasks
// inside them) are arrays, so save -> load -> save is byte-identical.
type snapshot struct {
	Version int              `json:"version"`
	Lists   []model.TaskList `json:"lists"`
}

// Storage persists full container snapshots as pretty-printed JSON.
// Before each overwrite the current primary file is copied to a sibling
// backup; the write itself goes through a temp file plus rename.
type Storage struct {
	path       string
	backupPath string
}

func NewStorage(path string) *Storage {
	return &Storage{
		path:       path,
		backupPath: path + ".bak",
	}
}

func (s *Storage) Path() string { return s.path }

func (s *Storage) Save(c *Container) error {
	data, err := json.MarshalIndent(snapshot{Version: snapshotVersion, Lists: c.Lists}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode snapshot: %v", ErrStorage, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: create data dir: %v", ErrStorage, err)
	}

	// Keep the previous snapshot around before touching the primary.
	// If the copy fails the save is aborted and the primary stays intact.
	if prev, err := os.ReadFile(s.path); err == nil {
		if err := os.WriteFile(s.backupPath, prev, 0o644); err != nil {
			return fmt.Errorf("%w: write backup: %v", ErrStorage, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: read primary for backup: %v", ErrStorage, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrStorage, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: write temp file: %v", ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: close temp file: %v", ErrStorage, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: chmod temp file: %v", ErrStorage, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: replace primary: %v", ErrStorage, err)
	}
	return nil
}

// Load reads the primary snapshot. A missing file is a first run and
// yields an empty container. A corrupt primary falls back to the backup
// once; if that also fails the load fails.
func (s *Storage) Load() (*Container, error) {
	c, err := s.loadFile(s.path)
	if err == nil {
		return c, nil
	}
	if os.IsNotExist(err) {
		return NewContainer(), nil
	}

	fallback, backupErr := s.loadFile(s.backupPath)
	if backupErr == nil {
		return fallback, nil
	}
	return nil, fmt.Errorf("%w: load snapshot %s: %v (backup: %v)", ErrStorage, s.path, err, backupErr)
}

func (s *Storage) loadFile(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse %s: %v", path, err)
	}
	if err := validateSnapshot(&snap); err != nil {
		return nil, fmt.Errorf("validate %s: %v", path, err)
	}
	c := &Container{Lists: snap.Lists}
	if c.Lists == nil {
		c.Lists = []model.TaskList{}
	}
	for i := range c.Lists {
		if c.Lists[i].Tasks == nil {
			c.Lists[i].Tasks = []model.Task{}
		}
	}
	return c, nil
}

// validateSnapshot treats a structurally broken file as corruption rather
// than silently repairing it.
func validateSnapshot(snap *snapshot) error {
	if snap.Version != snapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	seenLists := map[model.ListID]bool{}
	seenTasks := map[model.TaskID]bool{}
	for _, l := range snap.Lists {
		if l.ID == "" || l.Name == "" {
			return fmt.Errorf("list missing id or name")
		}
		if seenLists[l.ID] {
			return fmt.Errorf("duplicate list id %s", l.ID)
		}
		seenLists[l.ID] = true
		for _, t := range l.Tasks {
			if t.ID == "" || t.Title == "" {
				return fmt.Errorf("task missing id or title in list %s", l.ID)
			}
			if seenTasks[t.ID] {
				return fmt.Errorf("duplicate task id %s", t.ID)
			}
			seenTasks[t.ID] = true
			if !t.Status.Valid() {
				return fmt.Errorf("task %s has unknown status %q", t.ID, t.Status)
			}
			if !t.Priority.Valid() {
				return fmt.Errorf("task %s has unknown priority %q", t.ID, t.Priority)
			}
		}
	}
	return nil
}
