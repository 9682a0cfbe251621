package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// timeLayout renders creation time as DD.MM.YYYY at HH:MM:SS.
const timeLayout = "02.01.2006 at 15:04:05"

// Task is a single named record with a description, a priority and the time
// it was created.
type Task struct {
	name        string
	description string
	priority    Priority
	createdAt   time.Time
}

// New creates a Task stamped with the current local time. Name and
// description are not validated; empty strings are accepted.
func New(name, description string, priority Priority) Task {
	return NewAt(name, description, priority, time.Now())
}

// NewAt creates a Task with an explicit creation time.
func NewAt(name, description string, priority Priority, createdAt time.Time) Task {
	return Task{
		name:        name,
		description: description,
		priority:    priority,
		createdAt:   createdAt,
	}
}

// Name returns the lookup key of the task.
func (t Task) Name() string { return t.name }

// Description returns the free-form description.
func (t Task) Description() string { return t.description }

// Priority returns the priority level.
func (t Task) Priority() Priority { return t.priority }

// CreatedAt returns the time the task was constructed.
func (t Task) CreatedAt() time.Time { return t.createdAt }

// Describe renders the task for display:
//
//	Name: <name> | Priority: <label> | Added: DD.MM.YYYY at HH:MM:SS
//	Description: <description>
//
// The timestamp is shown in local time.
func (t Task) Describe() string {
	return fmt.Sprintf("Name: %s | Priority: %s | Added: %s\nDescription: %s\n",
		t.name,
		t.priority,
		t.createdAt.Local().Format(timeLayout),
		t.description,
	)
}

// Equal reports whether two tasks carry the same fields. Creation times are
// compared as instants, so a task decoded from disk equals the one encoded.
func (t Task) Equal(other Task) bool {
	return t.name == other.name &&
		t.description == other.description &&
		t.priority == other.priority &&
		t.createdAt.Equal(other.createdAt)
}

// taskJSON is the persisted form of a Task. The add_time key matches files
// produced by earlier versions of the tool.
type taskJSON struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	AddTime     time.Time `json:"add_time"`
}

// MarshalJSON implements json.Marshaler.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskJSON{
		Name:        t.name,
		Description: t.description,
		Priority:    t.priority,
		AddTime:     t.createdAt,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.Priority.IsValid() {
		return fmt.Errorf("task %q: missing priority", raw.Name)
	}
	if raw.AddTime.IsZero() {
		return fmt.Errorf("task %q: missing add_time", raw.Name)
	}
	*t = NewAt(raw.Name, raw.Description, raw.Priority, raw.AddTime)
	return nil
}
