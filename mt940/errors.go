package mt940

import (
	"fmt"
	"strings"
)

// SyntaxError is returned when text appears before the first field.
type SyntaxError struct {
	Line int
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: expected a field, got %q", e.Line, e.Text)
}

type UnknownTagError struct {
	Tag string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown tag: %q", e.Tag)
}

type RequiredTagNotFoundError struct {
	Tag string
}

func (e *RequiredTagNotFoundError) Error() string {
	return fmt.Sprintf("required tag %q not found", e.Tag)
}

// UnexpectedTagError is returned when a tag follows a tag it must never
// follow. The input is assumed to be faulty in that case.
type UnexpectedTagError struct {
	Current  string
	Last     string
	Expected []string
}

func (e *UnexpectedTagError) Error() string {
	return fmt.Sprintf(
		"unexpected tag %q found, expected one of %s, the tag before this one was %q",
		e.Current, strings.Join(e.Expected, ","), e.Last,
	)
}

type DateParseError struct {
	Year  string
	Month string
	Day   string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("date out of range: %s-%s-%s", e.Year, e.Month, e.Day)
}

type AmountParseError struct {
	Amount string
	Reason string
}

func (e *AmountParseError) Error() string {
	return fmt.Sprintf("bad amount %q: %s", e.Amount, e.Reason)
}

// FieldError is returned when the value of a known tag is malformed.
type FieldError struct {
	Tag    string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("tag %s: %s: %q", e.Tag, e.Reason, e.Value)
}

func fieldErr(f Field, reason string) error {
	return &FieldError{Tag: f.Tag, Value: f.Value, Reason: reason}
}
