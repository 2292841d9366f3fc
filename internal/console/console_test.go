package console

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todolist/internal/model"
	"github.com/BuzzLyutic/todolist/internal/service"
)

type fakePrompter struct {
	lines   []string
	end     error
	history []string
}

func (p *fakePrompter) Prompt(string) (string, error) {
	if len(p.lines) == 0 {
		return "", p.end
	}
	line := p.lines[0]
	p.lines = p.lines[1:]
	return line, nil
}

func (p *fakePrompter) AppendHistory(item string) {
	p.history = append(p.history, item)
}

func setupConsole(initial ...model.Task) (*Console, *service.TaskStore, *bytes.Buffer) {
	store := service.NewTaskStore(initial, nil)
	out := &bytes.Buffer{}
	return New(store, out, zap.NewNop()), store, out
}

func texts(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Text)
	}
	return out
}

func TestConsole_Scenario(t *testing.T) {
	c, store, out := setupConsole()
	p := &fakePrompter{
		lines: []string{
			"add buy milk",
			"add walk dog",
			"toggle 1",
			"filter pending",
			"quit",
			"add never reached",
		},
	}

	require.NoError(t, c.Run(p))

	assert.Equal(t, []string{"walk dog"}, texts(store.List(model.FilterPending)))
	assert.Equal(t, []string{"buy milk"}, texts(store.List(model.FilterCompleted)))
	assert.Equal(t, model.FilterPending, c.filter)
	assert.Len(t, p.history, 5)
	assert.Contains(t, out.String(), "[pending] 1 task(s)")
	assert.Contains(t, out.String(), "Bye!")
}

func TestConsole_RunEnds(t *testing.T) {
	tests := []struct {
		name    string
		end     error
		wantErr bool
	}{
		{name: "eof", end: io.EOF},
		{name: "ctrl-c", end: liner.ErrPromptAborted},
		{name: "terminal error", end: errors.New("tty gone"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := setupConsole()
			err := c.Run(&fakePrompter{end: tt.end})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConsole_AddEmptyShowsNotice(t *testing.T) {
	c, store, out := setupConsole()

	assert.False(t, c.Exec("add"))
	assert.False(t, c.Exec("add    "))

	assert.Empty(t, store.List(model.FilterAll))
	assert.Contains(t, out.String(), "Error: Task cannot be empty")
}

func TestConsole_EditByIDAndPosition(t *testing.T) {
	c, store, _ := setupConsole(
		model.Task{ID: "a1", Text: "one"},
		model.Task{ID: "b2", Text: "two", Completed: true},
	)

	c.Exec("edit a1 first task")
	c.Exec("edit 2 second   task")
	c.Exec("edit 9 ignored")

	assert.Equal(t, []model.Task{
		{ID: "a1", Text: "first task"},
		{ID: "b2", Text: "second   task", Completed: true},
	}, store.List(model.FilterAll))
}

func TestConsole_PositionFollowsFilter(t *testing.T) {
	c, store, _ := setupConsole(
		model.Task{ID: "a", Text: "one", Completed: true},
		model.Task{ID: "b", Text: "two"},
	)

	c.Exec("filter pending")
	c.Exec("rm 1")

	assert.Equal(t, []model.Task{{ID: "a", Text: "one", Completed: true}}, store.List(model.FilterAll))
}

func TestConsole_UnknownInput(t *testing.T) {
	c, store, out := setupConsole(model.Task{ID: "a", Text: "one"})

	c.Exec("frobnicate")
	c.Exec("filter urgent")
	c.Exec("toggle zzz")

	assert.Contains(t, out.String(), "Unknown command: frobnicate")
	assert.Contains(t, out.String(), `unknown filter "urgent"`)
	assert.Equal(t, model.FilterAll, c.filter)
	assert.Equal(t, []model.Task{{ID: "a", Text: "one"}}, store.List(model.FilterAll))
}

func TestConsole_Help(t *testing.T) {
	c, _, out := setupConsole()

	c.Exec("help")

	assert.Contains(t, out.String(), "toggle <n|id>")
}
