package league

import (
	"errors"
	"fmt"
)

// Sentinel errors for result validation.
var (
	ErrInvalidResult = errors.New("invalid result")
	ErrInvalidScore  = errors.New("invalid score")
)

// ErrorKind is a coarse-grained categorization for validation errors.
type ErrorKind string

const (
	KindInvalidResult ErrorKind = "invalid_result"
	KindInvalidScore  ErrorKind = "invalid_score"
)

// ResultError reports why a single result was rejected.
type ResultError struct {
	Index  int // position in the batch, -1 when applied on its own
	Result Result
	Kind   ErrorKind
	Err    error
}

func (e *ResultError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := e.Result.ScoreLine()
	if e.Index >= 0 {
		base = fmt.Sprintf("result %d (%s)", e.Index+1, base)
	}
	return fmt.Sprintf("%s: %v", base, e.Err)
}

func (e *ResultError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf classifies err, returning "" when it is not a validation error.
func KindOf(err error) ErrorKind {
	var re *ResultError
	if errors.As(err, &re) {
		return re.Kind
	}
	switch {
	case errors.Is(err, ErrInvalidResult):
		return KindInvalidResult
	case errors.Is(err, ErrInvalidScore):
		return KindInvalidScore
	}
	return ""
}

func invalidResult(r Result, format string, args ...any) *ResultError {
	return &ResultError{
		Index:  -1,
		Result: r,
		Kind:   KindInvalidResult,
		Err:    fmt.Errorf("%w: %s", ErrInvalidResult, fmt.Sprintf(format, args...)),
	}
}

func invalidScore(r Result, format string, args ...any) *ResultError {
	return &ResultError{
		Index:  -1,
		Result: r,
		Kind:   KindInvalidScore,
		Err:    fmt.Errorf("%w: %s", ErrInvalidScore, fmt.Sprintf(format, args...)),
	}
}
