package types

import "fmt"

// ErrorKind classifies the failures the core surfaces to callers. The
// FUSE bridge (an external collaborator, not built here) maps each kind
// to a POSIX errno.
type ErrorKind int

const (
	// KindIO covers device read failures and short reads.
	KindIO ErrorKind = iota
	// KindNotHFS means the volume header signature didn't match H+/HX
	// and no embedded HFS wrapper was found either.
	KindNotHFS
	// KindCorrupt means a structural on-disk invariant was violated:
	// a malformed B-tree node, an impossible extent, a dangling thread.
	KindCorrupt
	// KindNotFound means a catalog key lookup found nothing.
	KindNotFound
	// KindNotADirectory means an intermediate path element resolved to
	// a non-folder record.
	KindNotADirectory
	// KindInvalidName means a name could not be decoded: an unpaired
	// UTF-16 surrogate, or non-decodable input.
	KindInvalidName
	// KindReadOnly means the caller requested a mutation.
	KindReadOnly
	// KindNoMemory means an allocation failed.
	KindNoMemory
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindNotHFS:
		return "not_hfs"
	case KindCorrupt:
		return "corrupt"
	case KindNotFound:
		return "not_found"
	case KindNotADirectory:
		return "not_a_directory"
	case KindInvalidName:
		return "invalid_name"
	case KindReadOnly:
		return "read_only"
	case KindNoMemory:
		return "no_memory"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every package in this
// module. Op names the failing operation (e.g. "volume.Open",
// "catalog.FindByKey") so a caller building an error message doesn't
// need to re-derive it from a call stack.
type Error struct {
	Kind ErrorKind
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

// NewError constructs an *Error, wrapping err (which may be nil).
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err carries the given kind.
func Is(err error, kind ErrorKind) bool {
	var e *Error
	for err != nil {
		if he, ok := err.(*Error); ok {
			e = he
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
