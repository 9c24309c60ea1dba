// Package warn accumulates recoverable problems found while resolving data.
//
// A List is owned by exactly one resolution pass. Order of insertion is kept,
// which in practice follows file-processing order.
package warn

import "fmt"

// List is an ordered collection of warning messages. The zero value is ready
// to use.
type List struct {
	items []string
}

// Add appends a warning. Adding to a nil List discards the message.
func (l *List) Add(msg string) {
	if l == nil {
		return
	}
	l.items = append(l.items, msg)
}

// Addf appends a formatted warning.
func (l *List) Addf(format string, args ...any) {
	if l == nil {
		return
	}
	l.items = append(l.items, fmt.Sprintf(format, args...))
}

// Len returns the number of warnings collected so far.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// All returns a copy of the collected warnings.
func (l *List) All() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}
