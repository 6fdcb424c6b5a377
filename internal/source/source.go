// Package source reads edit events from OSM full-history files.
package source

import (
	"errors"
	"time"
)

// ErrMalformedEvent indicates an event without a usable editor id or
// timestamp. The aggregation has no defined behavior for such events, so the
// whole run aborts.
var ErrMalformedEvent = errors.New("event is missing a usable editor id or timestamp")

// Event is a single edit event from the history stream.
type Event struct {
	Timestamp time.Time
	Username  string
	UID       int64
}

// Source yields edit events one at a time. Next returns io.EOF once the
// stream is exhausted. Implementations must be safe to call from a single
// goroutine only; fan-out to workers happens downstream.
type Source interface {
	Next() (Event, error)
}
