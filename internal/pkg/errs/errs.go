package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as Unwrap targets for errors.Is checks.
var (
	ErrValueIsRequired    = errors.New("value is required")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrObjectNotFound     = errors.New("object not found")
	ErrIllegalTransition  = errors.New("illegal transition")
	ErrTerminalState      = errors.New("state is terminal")
	ErrUnauthorizedAction = errors.New("action is not authorized")
	ErrAlreadyAssigned    = errors.New("courier is already assigned")
	ErrNoPosition         = errors.New("no position reported")
)

// sanitize flattens a value into a single log-safe line.
func sanitize(v any) string {
	s := fmt.Sprintf("%s", v)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the named parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error { return ErrValueIsRequired }

// ValueIsInvalidError indicates that a value is malformed or violates a business rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the named parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error { return ErrValueIsInvalid }

// ValueIsOutOfRangeError indicates that a value lies outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError with the offending value and its bounds.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, sanitize(e.ParamName), e.Min, e.Max)
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s (cause: %s)", msg, e.Cause))
	}
	return sanitize(msg)
}

func (e *ValueIsOutOfRangeError) Unwrap() error { return ErrValueIsOutOfRange }

// ObjectNotFoundError indicates that no object exists for the given identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the named parameter and id.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, sanitize(e.ParamName), sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error { return ErrObjectNotFound }

// IllegalTransitionError indicates that the requested status or trip-state
// edge does not exist in the mission state machine.
type IllegalTransitionError struct {
	From  string
	To    string
	Cause error
}

// NewIllegalTransitionError creates an IllegalTransitionError for the rejected edge.
func NewIllegalTransitionError(from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to}
}

// NewIllegalTransitionErrorWithCause creates an IllegalTransitionError wrapping an underlying cause.
func NewIllegalTransitionErrorWithCause(from, to string, cause error) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to, Cause: cause}
}

func (e *IllegalTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s -> %s (cause: %s)", ErrIllegalTransition, sanitize(e.From), sanitize(e.To), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, sanitize(e.From), sanitize(e.To))
}

func (e *IllegalTransitionError) Unwrap() error { return ErrIllegalTransition }

// TerminalStateError indicates that a mission already reached a final status
// and accepts no further transitions.
type TerminalStateError struct {
	State string
}

// NewTerminalStateError creates a TerminalStateError for the current final status.
func NewTerminalStateError(state string) *TerminalStateError {
	return &TerminalStateError{State: state}
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTerminalState, sanitize(e.State))
}

func (e *TerminalStateError) Unwrap() error { return ErrTerminalState }

// UnauthorizedActionError indicates that the acting party lacks the
// capability required for the requested operation.
type UnauthorizedActionError struct {
	Actor  string
	Action string
}

// NewUnauthorizedActionError creates an UnauthorizedActionError for the actor and action.
func NewUnauthorizedActionError(actor, action string) *UnauthorizedActionError {
	return &UnauthorizedActionError{Actor: actor, Action: action}
}

func (e *UnauthorizedActionError) Error() string {
	return fmt.Sprintf("%s: %s cannot %s", ErrUnauthorizedAction, sanitize(e.Actor), sanitize(e.Action))
}

func (e *UnauthorizedActionError) Unwrap() error { return ErrUnauthorizedAction }

// AlreadyAssignedError indicates that the mission already has a courier.
// The dispatcher treats it as the benign lost side of an assignment race.
type AlreadyAssignedError struct {
	MissionID string
	CourierID string
}

// NewAlreadyAssignedError creates an AlreadyAssignedError naming the winning courier.
func NewAlreadyAssignedError(missionID, courierID string) *AlreadyAssignedError {
	return &AlreadyAssignedError{MissionID: missionID, CourierID: courierID}
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("%s: mission is: %s, courier is: %s", ErrAlreadyAssigned, sanitize(e.MissionID), sanitize(e.CourierID))
}

func (e *AlreadyAssignedError) Unwrap() error { return ErrAlreadyAssigned }

// NoPositionError indicates that no position report was ever ingested for the mission.
type NoPositionError struct {
	MissionID string
}

// NewNoPositionError creates a NoPositionError for the mission.
func NewNoPositionError(missionID string) *NoPositionError {
	return &NoPositionError{MissionID: missionID}
}

func (e *NoPositionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNoPosition, sanitize(e.MissionID))
}

func (e *NoPositionError) Unwrap() error { return ErrNoPosition }
