package web

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// TaskStatus tracks where a background run is in its lifecycle.
type TaskStatus string

const (
	StatusPending TaskStatus = "pending"
	StatusRunning TaskStatus = "running"
	StatusDone    TaskStatus = "done"
	StatusFailed  TaskStatus = "failed"
)

// Task is one background pipeline run as polling clients see it.
// Files holds output basenames servable through /api/files.
type Task struct {
	ID      string     `json:"id"`
	Kind    string     `json:"kind"`
	Status  TaskStatus `json:"status"`
	Stage   string     `json:"stage,omitempty"`
	Percent int        `json:"percent"`
	Error   string     `json:"error,omitempty"`
	Files   []string   `json:"files,omitempty"`
	Created time.Time  `json:"created"`
}

// TaskManager hands out ids and keeps task records for polling. All
// methods are safe for concurrent use.
type TaskManager struct {
	mu    sync.Mutex
	tasks map[string]*Task
}

func NewTaskManager() *TaskManager {
	return &TaskManager{tasks: make(map[string]*Task)}
}

// Create registers a new pending task and returns its id.
func (m *TaskManager) Create(kind string) string {
	id := newTaskID()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[id] = &Task{
		ID:      id,
		Kind:    kind,
		Status:  StatusPending,
		Created: time.Now(),
	}
	return id
}

// Get returns a snapshot of the task. Updates after the call are not
// reflected in the returned value.
func (m *TaskManager) Get(id string) (Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return Task{}, false
	}
	snapshot := *task
	snapshot.Files = append([]string(nil), task.Files...)
	return snapshot, true
}

// Start moves a task to running. Unknown ids are ignored.
func (m *TaskManager) Start(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task, ok := m.tasks[id]; ok {
		task.Status = StatusRunning
	}
}

// SetProgress records the current stage. Unknown ids are ignored.
func (m *TaskManager) SetProgress(id, stage string, percent int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task, ok := m.tasks[id]; ok {
		task.Stage = stage
		task.Percent = percent
	}
}

// Finish marks a task done and attaches its output files.
func (m *TaskManager) Finish(id string, files []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task, ok := m.tasks[id]; ok {
		task.Status = StatusDone
		task.Percent = 100
		task.Files = files
	}
}

// Fail marks a task failed with the error text clients display.
func (m *TaskManager) Fail(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task, ok := m.tasks[id]; ok {
		task.Status = StatusFailed
		task.Error = err.Error()
	}
}

func newTaskID() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
