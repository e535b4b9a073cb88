package cm

import "fmt"

// ErrorKind discriminates the classes of programming error the core can
// raise, per the five kinds the model distinguishes: violated use
// invariants, violated type construction constraints, an unresolved
// forward reference, a duplicate-insertion conflict, and a layout
// precondition failure.
type ErrorKind int

const (
	// UseInvariant covers use-set violations: removing an entity with
	// live uses, removing a use that isn't registered, destroying an
	// entity whose use set is non-empty.
	UseInvariant ErrorKind = iota
	// TypeConstraint covers type-construction rule violations:
	// reference-to-reference, pointer-to-reference, a function
	// returning a function, or an invalid bitfield on a non-integral
	// type.
	TypeConstraint
	// LookupMiss covers an unresolved forward reference: a typeref id
	// with no real type set by build time.
	LookupMiss
	// DuplicateInsertion covers key collisions: a substitution key
	// already present in a template's substitution map, a nested
	// namespace name collision, a duplicate base.
	DuplicateInsertion
	// LayoutPrecondition covers missing size information or a union
	// declared with bases.
	LayoutPrecondition
)

func (k ErrorKind) String() string {
	switch k {
	case UseInvariant:
		return "UseInvariant"
	case TypeConstraint:
		return "TypeConstraint"
	case LookupMiss:
		return "LookupMiss"
	case DuplicateInsertion:
		return "DuplicateInsertion"
	case LayoutPrecondition:
		return "LayoutPrecondition"
	default:
		return "Unknown"
	}
}

// Error is the core's single programming-error type: every class of
// invariant violation, from a reference-to-reference construction
// attempt to a non-empty use set at removal, fails fast at the point of
// detection. Functions that can also fail for an expected reason (e.g.
// GetOrCreate* rejecting a malformed request) return *Error so callers
// can inspect Kind without unwinding; functions whose precondition
// violation is always a caller bug (removeUse, checkNoUses) panic with
// *Error instead, since there is no reasonable local recovery.
type Error struct {
	Kind   ErrorKind
	Op     string // operation that detected the violation, e.g. "remove_entity"
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("cm: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("cm: %s: %s: %s", e.Op, e.Kind, e.Detail)
}

func newError(kind ErrorKind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

// IsErrorKind reports whether err is a *Error of the given kind.
func IsErrorKind(err error, kind ErrorKind) bool {
	var e *Error
	if ce, ok := err.(*Error); ok {
		e = ce
	} else {
		return false
	}
	return e.Kind == kind
}
