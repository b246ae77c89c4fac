package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// NewUserID returns a ULID for a new account. ULIDs sort by creation time and
// are safe to use as DynamoDB partition keys.
func NewUserID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// IsUserID reports whether s is a well-formed ULID.
func IsUserID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
