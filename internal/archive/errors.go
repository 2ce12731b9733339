package archive

import "errors"

// ErrNotFound is returned when no archived interview or report exists for
// the given id.
var ErrNotFound = errors.New("not found")
