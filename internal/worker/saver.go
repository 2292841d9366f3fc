package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todolist/internal/model"
)

// Persister writes a full task list snapshot.
type Persister interface {
	Save(ctx context.Context, tasks []model.Task) error
}

// Saver writes snapshots in the background, one at a time.
// It holds at most one pending snapshot: a Submit while a write is in
// flight replaces whatever was waiting, so only the newest list gets written next.
type Saver struct {
	persister Persister
	logger    *zap.Logger

	mu         sync.Mutex
	pending    []model.Task
	hasPending bool

	writeMu  sync.Mutex
	wake     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewSaver(p Persister, logger *zap.Logger) *Saver {
	return &Saver{
		persister: p,
		logger:    logger,
		wake:      make(chan struct{}, 1),
		stop:      make(chan struct{}),
	}
}

func (s *Saver) Start(ctx context.Context) {
	s.logger.Info("Starting saver")

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop halts the background goroutine and writes the last pending snapshot, if any.
func (s *Saver) Stop() {
	s.logger.Info("Stopping saver...")
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()

	s.Flush(context.Background())
	s.logger.Info("Saver stopped")
}

// Submit queues tasks for writing and returns immediately.
// The slice must not be modified afterwards.
func (s *Saver) Submit(tasks []model.Task) {
	s.mu.Lock()
	s.pending = tasks
	s.hasPending = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Flush synchronously writes the pending snapshot. It returns nil when nothing was pending.
func (s *Saver) Flush(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	tasks, ok := s.pending, s.hasPending
	s.pending, s.hasPending = nil, false
	s.mu.Unlock()

	if !ok {
		return nil
	}

	if err := s.persister.Save(ctx, tasks); err != nil {
		s.logger.Error("Failed to save tasks", zap.Int("count", len(tasks)), zap.Error(err))
		return err
	}
	s.logger.Debug("Tasks saved", zap.Int("count", len(tasks)))
	return nil
}

func (s *Saver) run(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-s.wake:
			s.Flush(ctx)
		}
	}
}
