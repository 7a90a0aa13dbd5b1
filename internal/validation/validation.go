// Package validation collects per-field validation failures so a request
// can report every bad parameter at once.
package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error maps request fields to what is wrong with them. It wraps every
// underlying cause, so errors.Is matches any of them.
type Error struct {
	Fields map[string]string
	causes []error
}

// Add records a failure for field.
func (e *Error) Add(field string, err error) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = err.Error()
	e.causes = append(e.causes, err)
}

// Err returns e when at least one field failed and nil otherwise.
func (e *Error) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}

// Unwrap returns the recorded causes.
func (e *Error) Unwrap() []error {
	return e.causes
}
