// Package console is an interactive terminal view over a TaskStore.
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todolist/internal/model"
	"github.com/BuzzLyutic/todolist/internal/service"
)

// Prompter reads one line of user input. *liner.State satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type Console struct {
	store  *service.TaskStore
	out    io.Writer
	logger *zap.Logger
	filter model.FilterMode
}

func New(store *service.TaskStore, out io.Writer, logger *zap.Logger) *Console {
	return &Console{
		store:  store,
		out:    out,
		logger: logger,
	}
}

// Run reads commands until quit, EOF or Ctrl-C.
func (c *Console) Run(p Prompter) error {
	fmt.Fprintln(c.out, "Todo List. Type 'help' for available commands.")
	c.render()

	for {
		line, err := p.Prompt("todo> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(c.out, "Bye!")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p.AppendHistory(line)

		if quit := c.Exec(line); quit {
			fmt.Fprintln(c.out, "Bye!")
			return nil
		}
	}
}

// Exec runs one command line and reports whether the user asked to quit.
func (c *Console) Exec(line string) bool {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "quit", "exit", "q":
		return true

	case "help", "?":
		c.printHelp()
		return false

	case "ls", "list":
		// view only

	case "add", "a":
		if _, err := c.store.Add(rest); err != nil {
			if errors.Is(err, service.ErrValidation) {
				fmt.Fprintln(c.out, "Error: Task cannot be empty")
				return false
			}
			c.logger.Error("add failed", zap.Error(err))
			return false
		}

	case "edit", "e":
		ref, text, _ := strings.Cut(rest, " ")
		c.store.Edit(c.resolve(ref), text)

	case "toggle", "t", "done":
		c.store.Toggle(c.resolve(rest))

	case "rm", "delete", "del":
		c.store.Delete(c.resolve(rest))

	case "filter", "f":
		filter, err := model.ParseFilter(rest)
		if err != nil {
			fmt.Fprintf(c.out, "Error: unknown filter %q (all, completed, pending)\n", rest)
			return false
		}
		c.filter = filter

	default:
		fmt.Fprintf(c.out, "Unknown command: %s. Type 'help' for available commands.\n", cmd)
		return false
	}

	c.render()
	return false
}

// resolve accepts a task id or a 1-based position in the current view.
func (c *Console) resolve(ref string) string {
	if _, ok := c.store.Get(ref); ok {
		return ref
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return ref
	}
	view := c.store.List(c.filter)
	if n < 1 || n > len(view) {
		return ref
	}
	return view[n-1].ID
}

func (c *Console) render() {
	tasks := c.store.List(c.filter)

	fmt.Fprintf(c.out, "\n[%s] %d task(s)\n", c.filter, len(tasks))
	for i, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(c.out, "%3d. [%s] %s  (%s)\n", i+1, mark, t.Text, t.ID)
	}
	fmt.Fprintln(c.out)
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `Commands:
  add <text>          add a task
  edit <n|id> <text>  replace the text of a task
  toggle <n|id>       mark a task completed or pending
  rm <n|id>           delete a task
  ls                  show tasks
  filter <mode>       show all, completed or pending tasks
  help                show this help
  quit                leave
`)
}
