package parser

type resultState uint8

const (
	resultUnset resultState = iota
	resultInvalid
	resultValid
)

// Result is the outcome of a grammar production. The value is only reachable
// through Get, so an invalid or unset result cannot be read by accident.
type Result[T any] struct {
	val   T
	state resultState
}

func Ok[T any](v T) Result[T]       { return Result[T]{val: v, state: resultValid} }
func Invalid[T any]() Result[T]     { return Result[T]{state: resultInvalid} }
func (r Result[T]) Get() (T, bool)  { return r.val, r.state == resultValid }
func (r Result[T]) IsInvalid() bool { return r.state == resultInvalid }
func (r Result[T]) IsUnset() bool   { return r.state == resultUnset }
func (r Result[T]) IsUsable() bool  { return r.state == resultValid }

// Status summarises a production that yields no value.
type Status struct {
	err        bool
	completion bool
}

func StatusOK() Status         { return Status{} }
func StatusError() Status      { return Status{err: true} }
func StatusCompletion() Status { return Status{completion: true} }

func (s Status) IsSuccess() bool         { return !s.err && !s.completion }
func (s Status) IsError() bool           { return s.err }
func (s Status) HasCodeCompletion() bool { return s.completion }

// Merge folds other into s.
func (s Status) Merge(other Status) Status {
	return Status{err: s.err || other.err, completion: s.completion || other.completion}
}
