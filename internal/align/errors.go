// Package align implements the core alignment pipeline: loading a Kaldi
// edit-segmented CTM alongside its segments and text files, matching
// transcript statements onto CTM index ranges, propagating speaker and
// language labels onto segments, and writing the filtered kept/dropped
// output.
package align

import "fmt"

// Kind distinguishes the error categories the driver reacts to differently:
// InvariantViolation and IOError abort the whole session, the rest are
// caught per-statement or per-segment and only increment a failure counter.
type Kind int

const (
	// InvariantViolation means a structural assumption about the input
	// files themselves was violated (missing segment, segment-count
	// mismatch). Fatal: the session cannot be processed at all.
	InvariantViolation Kind = iota
	// AlignmentNotFound means a statement's text could not be located
	// anywhere in the CTM's sliding-window search.
	AlignmentNotFound
	// EndNotFound means a start index was found but no plausible end
	// index followed it.
	EndNotFound
	// ZeroLength means the matched range collapsed to nothing after
	// boundary adjustment.
	ZeroLength
	// NormalizationFailed means the text normalizer rejected a
	// statement's text before matching was attempted.
	NormalizationFailed
	// IOError means a file could not be read or written. Fatal.
	IOError
)

func (k Kind) String() string {
	switch k {
	case InvariantViolation:
		return "invariant_violation"
	case AlignmentNotFound:
		return "alignment_not_found"
	case EndNotFound:
		return "end_not_found"
	case ZeroLength:
		return "zero_length"
	case NormalizationFailed:
		return "normalization_failed"
	case IOError:
		return "io_error"
	default:
		return "unknown"
	}
}

// Error is the typed error all align operations return, letting callers
// branch on Kind via errors.As without parsing messages.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Fatal reports whether an error of this kind should abort the whole
// session rather than just being counted and skipped.
func (e *Error) Fatal() bool {
	return e.Kind == InvariantViolation || e.Kind == IOError
}

func newErr(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// WrapIOError wraps err as a fatal IOError, for callers outside this
// package that read or write the session's input/output files.
func WrapIOError(op string, err error) error {
	return newErr(IOError, op, err)
}

// WrapNormalizationFailed wraps err as a non-fatal NormalizationFailed
// error, for callers outside this package whose text normalizer rejected
// a statement.
func WrapNormalizationFailed(err error) error {
	return newErr(NormalizationFailed, "normalize", err)
}
