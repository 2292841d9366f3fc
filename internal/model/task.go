package model

import (
	"errors"
	"strings"
)

var ErrUnknownFilter = errors.New("unknown filter")

// Task is a single to-do entry. ID never changes after creation.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// FilterMode selects which tasks a view shows. It is never persisted.
type FilterMode int

const (
	FilterAll FilterMode = iota
	FilterCompleted
	FilterPending
)

func (f FilterMode) String() string {
	switch f {
	case FilterCompleted:
		return "completed"
	case FilterPending:
		return "pending"
	default:
		return "all"
	}
}

// Match reports whether t belongs to the view selected by f.
func (f FilterMode) Match(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	default:
		return true
	}
}

// ParseFilter maps "", "all", "completed" and "pending" (any case) to a FilterMode.
func ParseFilter(s string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "completed":
		return FilterCompleted, nil
	case "pending":
		return FilterPending, nil
	}
	return FilterAll, ErrUnknownFilter
}
