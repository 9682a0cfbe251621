// Package console implements the interactive, line-oriented menu that drives
// a task registry from standard input and output.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Iron-Ham/tasker/internal/errors"
	"github.com/Iron-Ham/tasker/internal/logging"
	"github.com/Iron-Ham/tasker/internal/registry"
	"github.com/Iron-Ham/tasker/internal/styles"
	"github.com/Iron-Ham/tasker/internal/task"
)

// ErrQuit is returned by Execute when the user asks to leave.
var ErrQuit = errors.New("quit requested")

// MsgInvalidCommand is printed for input that names no command.
const MsgInvalidCommand = "Invalid command"

// maxInputFailures is how many consecutive unreadable command prompts Run
// tolerates.
const maxInputFailures = 3

// Fallback field values used when a task field cannot be read.
const (
	fallbackName        = "task"
	fallbackDescription = "description"
)

// Options configures a Console.
type Options struct {
	// Styles renders output; nil means plain text.
	Styles *styles.Styles
	// Logger records command outcomes; nil discards them.
	Logger *logging.Logger
	// ShowMenuAfterCommand reprints the menu after every command.
	ShowMenuAfterCommand bool
}

// Console reads commands and field values line by line and applies them to
// a registry it is given. It holds no task state of its own.
type Console struct {
	registry *registry.Registry
	in       *bufio.Reader
	out      io.Writer
	styles   *styles.Styles
	logger   *logging.Logger
	showMenu bool

	// pending carries the result of a line read that is still in flight.
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// New creates a Console over reg reading from in and writing to out.
func New(reg *registry.Registry, in io.Reader, out io.Writer, opts Options) *Console {
	st := opts.Styles
	if st == nil {
		st = styles.Plain()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Console{
		registry: reg,
		in:       bufio.NewReader(in),
		out:      out,
		styles:   st,
		logger:   logger,
		showMenu: opts.ShowMenuAfterCommand,
	}
}

// Run prints the menu and processes commands until the user quits, input
// ends, or ctx is canceled. All three return nil; canceling ctx interrupts a
// pending prompt. Run fails only if the command prompt cannot be read
// maxInputFailures times in a row.
func (c *Console) Run(ctx context.Context) error {
	c.PrintMenu()
	c.logger.Info("console session started")

	failures := 0
	for {
		if err := ctx.Err(); err != nil {
			return c.end(ctx, err)
		}

		err := c.ProcessCommand(ctx)
		switch {
		case err == nil:
			failures = 0
		case errors.Is(err, ErrQuit), endsSession(err):
			return c.end(ctx, err)
		case errors.Is(err, errors.ErrInputUnavailable):
			failures++
			if failures >= maxInputFailures {
				c.logger.Error("giving up on unreadable input", "error", err.Error())
				return err
			}
		default:
			return err
		}

		fmt.Fprintln(c.out)
		if c.showMenu {
			c.PrintMenu()
		}
	}
}

func (c *Console) end(ctx context.Context, reason error) error {
	if ctx.Err() != nil {
		// Leave the terminal on a fresh line after an interrupted prompt.
		fmt.Fprintln(c.out)
	}
	c.logger.Info("console session ended", "reason", reason.Error())
	return nil
}

// endsSession reports whether err means no further input will be read.
func endsSession(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// PrintMenu writes the numbered command list.
func (c *Console) PrintMenu() {
	for i, cmd := range MenuCommands() {
		index := c.styles.MenuIndex.Render(fmt.Sprintf("%d.", i+1))
		fmt.Fprintf(c.out, "%s %s\n", index, c.styles.MenuLabel.Render(cmd.Label()))
	}
	fmt.Fprintln(c.out, c.styles.Prompt.Render("Type h to show this menu, q to quit"))
}

// Input prints "<query>: " and returns the next line with surrounding
// whitespace removed. A final line without a trailing newline is still
// returned; an exhausted input yields an error matching io.EOF. If ctx is
// canceled while waiting, its error is returned.
func (c *Console) Input(ctx context.Context, query string) (string, error) {
	fmt.Fprint(c.out, c.styles.Prompt.Render(query+": "))

	line, err := c.readLine(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		if !errors.Is(err, io.EOF) || line == "" {
			return "", errors.NewInputError(query, err)
		}
	}
	return strings.TrimSpace(line), nil
}

// readLine waits for the next line or for ctx to be done. The read itself
// runs on its own goroutine; if ctx ends first the read stays pending and
// its line is returned by the next call.
func (c *Console) readLine(ctx context.Context) (string, error) {
	if c.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := c.in.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
		c.pending = ch
	}

	select {
	case res := <-c.pending:
		c.pending = nil
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ProcessCommand reads one command line and executes it. If the line cannot
// be read the failure is reported and returned.
func (c *Console) ProcessCommand(ctx context.Context) error {
	raw, err := c.Input(ctx, "Enter command index")
	if err != nil {
		if !endsSession(err) {
			c.report(CommandInvalid, "", err)
		}
		return err
	}
	return c.Execute(ctx, ParseCommand(raw))
}

// Execute runs a single command. Operation failures are printed and logged,
// never returned; the only errors are ErrQuit and those that end the session
// mid-command (end of input or ctx being done).
func (c *Console) Execute(ctx context.Context, cmd Command) error {
	switch cmd {
	case CommandAdd:
		t, err := c.ReadTask(ctx)
		if err != nil {
			return err
		}
		c.registry.Add(t)
		c.logger.WithCommand(cmd.String()).Info("task added", "task", t.Name(), "priority", t.Priority().String())
		return nil

	case CommandFind:
		name, ok, err := c.readValue(ctx, cmd, "Enter task name to find")
		if !ok {
			return err
		}
		c.find(name)
		return nil

	case CommandEdit:
		name, ok, err := c.readValue(ctx, cmd, "Enter task name to edit")
		if !ok {
			return err
		}
		replacement, err := c.ReadTask(ctx)
		if err != nil {
			return err
		}
		msg, err := c.registry.Edit(name, replacement)
		c.report(cmd, msg, err)
		return nil

	case CommandRemove:
		name, ok, err := c.readValue(ctx, cmd, "Enter task name to remove")
		if !ok {
			return err
		}
		msg, err := c.registry.Remove(name)
		c.report(cmd, msg, err)
		return nil

	case CommandList:
		if err := c.registry.List(c.out); err != nil {
			c.logger.WithCommand(cmd.String()).Error("failed to print tasks", "error", err.Error())
		}
		return nil

	case CommandSave:
		filename, ok, err := c.readValue(ctx, cmd, "Enter file name")
		if !ok {
			return err
		}
		msg, err := c.registry.Save(filename)
		c.report(cmd, msg, err)
		return nil

	case CommandLoad:
		filename, ok, err := c.readValue(ctx, cmd, "Enter file name")
		if !ok {
			return err
		}
		msg, err := c.registry.Load(filename)
		c.report(cmd, msg, err)
		return nil

	case CommandMenu:
		c.PrintMenu()
		return nil

	case CommandQuit:
		return ErrQuit

	default:
		c.report(cmd, "", errors.NewValidationError(MsgInvalidCommand))
		return nil
	}
}

// readValue prompts for a single value. ok is false when the command must
// be aborted: a read failure is reported here and err is nil, unless the
// session is ending, in which case err says why.
func (c *Console) readValue(ctx context.Context, cmd Command, query string) (value string, ok bool, err error) {
	value, err = c.Input(ctx, query)
	if err != nil {
		if endsSession(err) {
			return "", false, err
		}
		c.report(cmd, "", err)
		return "", false, nil
	}
	return value, true, nil
}

// ReadTask prompts for a new task's name, description and priority. A field
// that cannot be read falls back to a placeholder (Low for priority) after a
// notice; running out of input or a done ctx returns an error and no task.
func (c *Console) ReadTask(ctx context.Context) (task.Task, error) {
	name, err := c.readField(ctx, "Enter new task name", fallbackName)
	if err != nil {
		return task.Task{}, err
	}
	description, err := c.readField(ctx, "Enter new task description", fallbackDescription)
	if err != nil {
		return task.Task{}, err
	}
	priority, err := c.readField(ctx, "Enter new task priority", string(task.PriorityLow))
	if err != nil {
		return task.Task{}, err
	}
	return task.New(name, description, task.ParsePriority(priority)), nil
}

func (c *Console) readField(ctx context.Context, query, fallback string) (string, error) {
	value, err := c.Input(ctx, query)
	if err == nil {
		return value, nil
	}
	if endsSession(err) {
		return "", err
	}
	notice := fmt.Sprintf("%s, using %q", err.Error(), fallback)
	fmt.Fprintln(c.out, c.styles.Notice.Render(notice))
	c.logger.Warn("input fallback", "prompt", query, "error", err.Error())
	return fallback, nil
}

func (c *Console) find(name string) {
	log := c.logger.WithCommand(CommandFind.String())

	i, ok := c.registry.Find(name)
	if !ok {
		c.report(CommandFind, "", errors.NewTaskNotFoundError(name))
		return
	}
	t, _ := c.registry.Get(i)
	fmt.Fprintln(c.out, c.styles.Success.Render(fmt.Sprintf("Task \"%s\" found", name)))
	fmt.Fprint(c.out, t.Describe())
	log.Info("task found", "task", name, "position", i)
}

// report prints the message an outcome carries, whichever way it went, and
// logs it.
func (c *Console) report(cmd Command, msg string, err error) {
	text := msg
	if err != nil {
		text = err.Error()
	}
	fmt.Fprintln(c.out, c.styles.Outcome(text, err))

	log := c.logger.WithCommand(cmd.String())
	switch {
	case err == nil:
		log.Info("command succeeded", "message", text)
	case errors.IsUserFacing(err):
		log.Warn("command failed", "error", text, "severity", errors.GetSeverity(err).String())
	default:
		log.Error("command failed unexpectedly", "error", text)
	}
}
