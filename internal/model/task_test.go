package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    FilterMode
		wantErr bool
	}{
		{name: "empty defaults to all", in: "", want: FilterAll},
		{name: "all", in: "all", want: FilterAll},
		{name: "completed mixed case", in: "Completed", want: FilterCompleted},
		{name: "pending with spaces", in: "  pending ", want: FilterPending},
		{name: "unknown", in: "done", want: FilterAll, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilter(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFilter)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterMode_Match(t *testing.T) {
	done := Task{ID: "1", Text: "a", Completed: true}
	open := Task{ID: "2", Text: "b"}

	assert.True(t, FilterAll.Match(done))
	assert.True(t, FilterAll.Match(open))
	assert.True(t, FilterCompleted.Match(done))
	assert.False(t, FilterCompleted.Match(open))
	assert.False(t, FilterPending.Match(done))
	assert.True(t, FilterPending.Match(open))
}

func TestFilterMode_String(t *testing.T) {
	for _, f := range []FilterMode{FilterAll, FilterCompleted, FilterPending} {
		got, err := ParseFilter(f.String())
		assert.NoError(t, err)
		assert.Equal(t, f, got)
	}
}
