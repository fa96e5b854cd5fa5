// Package errs provides standardized error types for the mission engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// General-purpose types:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed
//   - ValueIsOutOfRangeError: a value is outside its allowed bounds
//   - ObjectNotFoundError: an object with the given id does not exist
//
// Lifecycle-specific types:
//   - IllegalTransitionError: the requested status/trip-state edge does not exist
//   - TerminalStateError: the mission already reached a final status
//   - UnauthorizedActionError: the actor lacks the capability for the action
//   - AlreadyAssignedError: a different courier already won the assignment
//   - NoPositionError: a distance query arrived before any position report
//
// Each error type follows the same pattern: a sentinel error variable, a
// struct with the error details, constructor functions with and without a
// cause, an Error() method, and an Unwrap() method so errors.Is can match
// the sentinel.
package errs
