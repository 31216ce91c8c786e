// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver-specific error strings.
package repository

import "errors"

// ErrEmailExists is returned when an admin provisioning call uses an email
// that is already registered.  The UNIQUE key on admins.email is the sole
// arbiter, so two concurrent provisioning calls with the same email cannot
// both succeed.  Handlers translate this into an HTTP 400 response.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a lookup, update or delete targets a record
// that does not exist.  Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")
