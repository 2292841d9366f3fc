// Package testutil holds fakes shared by package tests.
package testutil

import (
	"context"
	"sync"

	"github.com/BuzzLyutic/todolist/internal/model"
)

// RecordingPersister keeps every snapshot it is asked to save.
// When Gate is set, each Save signals Started and then blocks until Gate yields.
type RecordingPersister struct {
	Err     error
	Gate    chan struct{}
	Started chan struct{}

	mu    sync.Mutex
	saves [][]model.Task
}

func (p *RecordingPersister) Save(ctx context.Context, tasks []model.Task) error {
	if p.Gate != nil {
		if p.Started != nil {
			p.Started <- struct{}{}
		}
		select {
		case <-p.Gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves = append(p.saves, append([]model.Task(nil), tasks...))
	return p.Err
}

// Saves returns a copy of the recorded snapshots in call order.
func (p *RecordingPersister) Saves() [][]model.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]model.Task(nil), p.saves...)
}

// Last returns the most recent snapshot, or nil.
func (p *RecordingPersister) Last() []model.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saves) == 0 {
		return nil
	}
	return p.saves[len(p.saves)-1]
}

// SinkFunc adapts a function to the store's snapshot sink.
type SinkFunc func(tasks []model.Task)

func (f SinkFunc) Submit(tasks []model.Task) { f(tasks) }
