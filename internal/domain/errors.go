package domain

import "fmt"

// ValidationError reports a malformed or missing required field in an input
// row. The field name and the raw value are carried so the offending row can
// be located in the source file. A ValidationError aborts the whole ingestion;
// there is no skip-and-continue for partially valid input.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for field %s", e.Value, e.Field)
}

// DivisionByZeroError reports a holding whose derived metrics cannot be
// computed: a zero purchase price or a purchase made on the evaluation date
// (zero elapsed holding days).
type DivisionByZeroError struct {
	Reason string
}

func (e *DivisionByZeroError) Error() string {
	return "division by zero: " + e.Reason
}

// FormatError reports an unparseable date or close price at join time. It
// aborts the join rather than dropping the row, since it signals schema drift
// in the upstream market feed.
type FormatError struct {
	Field string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed %s value %q in market history", e.Field, e.Value)
}

// StoreError reports a failure to open, write, or query the persistent store.
// Store errors are reported at the boundary and the run continues with the
// in-memory data; the store may be left partially written, so a failed run
// should be repeated from a clean state.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
