// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver errors directly.
package repository

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a lookup or update matches no document.
// Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicateAccount is returned when an insert or update violates the
// unique index on users.account.
var ErrDuplicateAccount = errors.New("account already registered")

// ErrDuplicateEmail is returned when an insert or update violates the
// unique index on users.email.
var ErrDuplicateEmail = errors.New("email already registered")

// mapDuplicateKey translates a mongo duplicate key error into the sentinel
// for the violated index.  Other errors pass through untouched.
func mapDuplicateKey(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "account_1"):
		return ErrDuplicateAccount
	case strings.Contains(msg, "email_1"):
		return ErrDuplicateEmail
	}
	return err
}
