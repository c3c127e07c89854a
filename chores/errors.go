/*
errors.go - Error types for the household service layer

PURPOSE:
  The recurrence engine never fails; these errors belong to the layer
  that loads, validates and persists records around it.

ERROR CATEGORIES:
  1. Not found  - a referenced task does not exist
  2. Validation - the caller sent a record or action the household rejects

USAGE:
    if chores.IsNotFound(err) {
        // 404
    }

SEE ALSO:
  - service.go: returns these errors
  - api/handlers.go: maps them to HTTP status codes
*/
package chores

import "errors"

var (
	// ErrTaskNotFound is returned when a task id is not in the schedule.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTask is returned when a task record or action on it is rejected.
	ErrInvalidTask = errors.New("invalid task")

	// ErrInvalidUser is returned when the household user list is malformed.
	ErrInvalidUser = errors.New("invalid user")

	// ErrUnknownUser is returned when a completion names a user not in the household.
	ErrUnknownUser = errors.New("unknown user")
)

// IsNotFound returns true if the error indicates a missing task.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidTask) ||
		errors.Is(err, ErrInvalidUser) ||
		errors.Is(err, ErrUnknownUser)
}
