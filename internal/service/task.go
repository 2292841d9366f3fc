package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todolist/internal/model"
)

var (
	ErrValidation = errors.New("validation error")
)

// Sink receives a copy of the full list after every mutation.
type Sink interface {
	Submit(tasks []model.Task)
}

// TaskStore is the only owner of the task list. Mutations are applied one at a
// time and each one hands a fresh snapshot to the sink.
type TaskStore struct {
	mu     sync.Mutex
	tasks  []model.Task
	sink   Sink
	logger *zap.Logger
	newID  func() string
}

type Option func(*TaskStore)

// WithIDGenerator replaces the default UUIDv7 ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *TaskStore) { s.newID = gen }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *TaskStore) { s.logger = logger }
}

func NewTaskStore(initial []model.Task, sink Sink, opts ...Option) *TaskStore {
	s := &TaskStore{
		tasks:  append([]model.Task(nil), initial...),
		sink:   sink,
		logger: zap.NewNop(),
		newID:  newUUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *TaskStore) Add(text string) (model.Task, error) {
	if strings.TrimSpace(text) == "" {
		return model.Task{}, fmt.Errorf("%w: task cannot be empty", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.Task{ID: s.freshID(), Text: text}
	s.tasks = append(s.tasks, t)
	s.persist()
	return t, nil
}

func (s *TaskStore) Edit(id, text string) (model.Task, bool) {
	return s.update("edit", id, func(t *model.Task) { t.Text = text })
}

func (s *TaskStore) Toggle(id string) (model.Task, bool) {
	return s.update("toggle", id, func(t *model.Task) { t.Completed = !t.Completed })
}

func (s *TaskStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug("Ignoring delete of unknown task", zap.String("id", id))
		return false
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.persist()
	return true
}

func (s *TaskStore) Get(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// List returns a new slice with the tasks matching filter, in insertion order.
func (s *TaskStore) List(filter model.FilterMode) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *TaskStore) update(op, id string, apply func(*model.Task)) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug("Ignoring "+op+" of unknown task", zap.String("id", id))
		return model.Task{}, false
	}
	apply(&s.tasks[i])
	s.persist()
	return s.tasks[i], true
}

func (s *TaskStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) freshID() string {
	for {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

// persist must be called with mu held.
func (s *TaskStore) persist() {
	if s.sink == nil {
		return
	}
	s.sink.Submit(append([]model.Task(nil), s.tasks...))
}
