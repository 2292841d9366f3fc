package repo

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todolist/internal/model"
)

// Gateway stores the whole task list as one JSON blob under a single key.
// Load never fails: anything unreadable is logged and treated as an empty list.
type Gateway struct {
	slot   Slot
	key    string
	logger *zap.Logger
}

func NewGateway(slot Slot, key string, logger *zap.Logger) *Gateway {
	if key == "" {
		key = DefaultKey
	}
	return &Gateway{
		slot:   slot,
		key:    key,
		logger: logger,
	}
}

func (g *Gateway) Load(ctx context.Context) []model.Task {
	blob, ok, err := g.slot.Get(ctx, g.key)
	if err != nil {
		g.logger.Error("Failed to load tasks", zap.String("key", g.key), zap.Error(persistErr("read", err)))
		return []model.Task{}
	}
	if !ok {
		return []model.Task{}
	}

	var stored []model.Task
	if err := json.Unmarshal(blob, &stored); err != nil {
		g.logger.Error("Failed to parse stored tasks", zap.String("key", g.key), zap.Error(persistErr("decode", err)))
		return []model.Task{}
	}

	tasks := make([]model.Task, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, t := range stored {
		if _, dup := seen[t.ID]; dup {
			g.logger.Warn("Dropping task with duplicate id", zap.String("id", t.ID))
			continue
		}
		seen[t.ID] = struct{}{}
		tasks = append(tasks, t)
	}

	g.logger.Info("Tasks loaded", zap.String("key", g.key), zap.Int("count", len(tasks)))
	return tasks
}

// Save overwrites the slot with the full list.
func (g *Gateway) Save(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	blob, err := json.Marshal(tasks)
	if err != nil {
		return persistErr("encode", err)
	}
	if err := g.slot.Put(ctx, g.key, blob); err != nil {
		return persistErr("write", err)
	}
	return nil
}
