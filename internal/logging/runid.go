package logging

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// GenerateRunID returns a new ULID identifying one invocation.
func GenerateRunID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
