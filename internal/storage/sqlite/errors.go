package sqlite

import "errors"

// ErrNotFound signals that a resource does not exist. A resource owned by a
// different user is reported with the same error, so callers can never tell
// "not yours" apart from "not there".
var ErrNotFound = errors.New("resource not found")

// ErrValidation marks input that fails a business rule. Concrete messages
// wrap it, e.g. a blank title or a due date that is not in the future.
var ErrValidation = errors.New("validation failed")
