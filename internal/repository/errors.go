// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as handlers to distinguish between failure scenarios without
// inspecting driver errors.  Entity-specific not-found sentinels live
// next to their repository.
package repository

import "errors"

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as deleting a transporter that
// still operates buses or editing a pathway option that is in use.
// Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
