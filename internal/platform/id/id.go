package id

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator creates opaque, time-sortable identifiers.
type Generator interface {
	New(at time.Time) string
}

type ULID struct{}

func (ULID) New(at time.Time) string {
	return ulid.MustNew(ulid.Timestamp(at), rand.Reader).String()
}
