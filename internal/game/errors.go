package game

import (
	"errors"

	"github.com/samdwyer/otherside/internal/combat"
	"github.com/samdwyer/otherside/internal/entity"
	"github.com/samdwyer/otherside/internal/world"
)

// Code is a machine-readable error class.
type Code string

const (
	// CodeInvalidInput marks input that could not be parsed or is out of
	// range. The caller re-prompts.
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeInvalidOperation marks a well-formed request the current state
	// does not allow.
	CodeInvalidOperation Code = "INVALID_OPERATION"
	// CodeAllocationFailure marks an exhausted zone store.
	CodeAllocationFailure Code = "ALLOCATION_FAILURE"
)

// Error is the domain error reported to consoles.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Code sentinels for errors.Is.
var (
	ErrInvalidInput      = &Error{Code: CodeInvalidInput, Message: "invalid input"}
	ErrInvalidOperation  = &Error{Code: CodeInvalidOperation, Message: "invalid operation"}
	ErrAllocationFailure = &Error{Code: CodeAllocationFailure, Message: "allocation failure"}
)

// Rule violations raised by the scheduler itself.
var (
	ErrNotConfigured  = errors.New("game is not set up")
	ErrAlreadyMoved   = errors.New("already moved this turn")
	ErrMustFight      = errors.New("an enemy bars the way")
	ErrJustArrived    = errors.New("just arrived, fight next turn")
	ErrNoEnemy        = errors.New("no enemy here")
	ErrNothingHere    = errors.New("nothing to pick up")
	ErrUnderworldBare = errors.New("the Underworld holds no items")
	ErrEnemyGuards    = errors.New("an enemy guards the zone")
	ErrUniqueBuild    = errors.New("build already taken")
	ErrUnknownBuild   = errors.New("unknown build")
)

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Classify wraps err in an *Error whose code follows from the sentinel at
// its root. An err that already carries a code is returned unchanged.
func Classify(message string, err error) error {
	if err == nil {
		return nil
	}
	var ge *Error
	if errors.As(err, &ge) {
		return err
	}
	return Wrap(codeFor(err), message, err)
}

// CodeOf returns the code carried by err, or "" when it has none.
func CodeOf(err error) Code {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ""
}

func codeFor(err error) Code {
	switch {
	case errors.Is(err, world.ErrCapacity):
		return CodeAllocationFailure
	case errors.Is(err, world.ErrInvalidCount),
		errors.Is(err, world.ErrInvalidPosition),
		errors.Is(err, world.ErrInvalidKind),
		errors.Is(err, world.ErrInvalidEnemy),
		errors.Is(err, world.ErrInvalidItem),
		errors.Is(err, entity.ErrInvalidSlot),
		errors.Is(err, entity.ErrInvalidItem),
		errors.Is(err, combat.ErrInvalidAction):
		return CodeInvalidInput
	default:
		return CodeInvalidOperation
	}
}

func invalidInput(message string) *Error {
	return Wrap(CodeInvalidInput, message, nil)
}

func invalidOperation(message string, cause error) *Error {
	return Wrap(CodeInvalidOperation, message, cause)
}
