package console

import "strings"

// Command is a console operation parsed from raw user input.
type Command int

const (
	// CommandInvalid is any input that names no command.
	CommandInvalid Command = iota
	CommandAdd
	CommandFind
	CommandEdit
	CommandRemove
	CommandList
	CommandSave
	CommandLoad
	// CommandMenu reprints the menu.
	CommandMenu
	// CommandQuit ends the session.
	CommandQuit
)

// MenuCommands returns the numbered commands in menu order. A command's
// index in this slice plus one is the number the user types.
func MenuCommands() []Command {
	return []Command{
		CommandAdd,
		CommandFind,
		CommandEdit,
		CommandRemove,
		CommandList,
		CommandSave,
		CommandLoad,
	}
}

// ParseCommand maps one line of input to a Command. Surrounding whitespace
// is ignored; word aliases are case-insensitive.
func ParseCommand(raw string) Command {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1":
		return CommandAdd
	case "2":
		return CommandFind
	case "3":
		return CommandEdit
	case "4":
		return CommandRemove
	case "5":
		return CommandList
	case "6":
		return CommandSave
	case "7":
		return CommandLoad
	case "h", "help", "?":
		return CommandMenu
	case "0", "q", "quit", "exit":
		return CommandQuit
	default:
		return CommandInvalid
	}
}

// String returns a short identifier used in logs.
func (c Command) String() string {
	switch c {
	case CommandAdd:
		return "add"
	case CommandFind:
		return "find"
	case CommandEdit:
		return "edit"
	case CommandRemove:
		return "remove"
	case CommandList:
		return "list"
	case CommandSave:
		return "save"
	case CommandLoad:
		return "load"
	case CommandMenu:
		return "menu"
	case CommandQuit:
		return "quit"
	default:
		return "invalid"
	}
}

// Label returns the menu text for the command.
func (c Command) Label() string {
	switch c {
	case CommandAdd:
		return "Add task"
	case CommandFind:
		return "Find task"
	case CommandEdit:
		return "Edit task"
	case CommandRemove:
		return "Remove task"
	case CommandList:
		return "Print tasks"
	case CommandSave:
		return "Store tasks to file"
	case CommandLoad:
		return "Load tasks from file"
	case CommandMenu:
		return "Show menu"
	case CommandQuit:
		return "Quit"
	default:
		return ""
	}
}
