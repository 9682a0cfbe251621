package task

import (
	"fmt"
	"strings"
)

// Priority is the closed set of importance levels a task can carry.
type Priority string

const (
	// PriorityLow is the default for anything that is not Medium or High.
	PriorityLow Priority = "Low"
	// PriorityMedium marks a task of ordinary importance.
	PriorityMedium Priority = "Medium"
	// PriorityHigh marks an urgent task.
	PriorityHigh Priority = "High"
)

// Priorities returns every priority in ascending order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParsePriority converts user input to a Priority. Matching is
// case-insensitive and ignores surrounding whitespace; anything
// unrecognized, including the empty string, yields PriorityLow.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "medium":
		return PriorityMedium
	case "high":
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// String returns the human-readable label.
func (p Priority) String() string {
	return string(p)
}

// IsValid reports whether p is one of the three defined levels.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// MarshalText encodes the priority as its tag.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("invalid priority %q", string(p))
	}
	return []byte(p), nil
}

// UnmarshalText decodes a tag written by MarshalText. Unlike ParsePriority it
// is strict: a persisted file carrying an unknown tag is corrupt.
func (p *Priority) UnmarshalText(text []byte) error {
	v := Priority(text)
	if !v.IsValid() {
		return fmt.Errorf("unknown priority %q", string(text))
	}
	*p = v
	return nil
}
