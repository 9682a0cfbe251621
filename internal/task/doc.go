// Package task defines the Task record managed by tasker and its Priority
// classification.
//
// A Task is a value: its fields are unexported and there are no setters, so
// once constructed it never changes. "Editing" a task means building a new
// Task and substituting it for the old one in a registry.
//
// Usage:
//
//	t := task.New("Buy milk", "2%", task.ParsePriority("low"))
//	fmt.Print(t.Describe())
package task
