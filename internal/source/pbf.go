package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

// PBFSource decodes edit events from an OSM PBF history file. Every object
// version in the file (node, way or relation) is one edit event.
type PBFSource struct {
	file    *os.File
	counter *CountingReader
	scanner *osmpbf.Scanner
	size    int64
}

// OpenPBF opens the history file at path. The decoder uses procs goroutines
// internally; procs <= 0 selects the CPU count.
func OpenPBF(ctx context.Context, path string, procs int) (*PBFSource, error) {
	if procs <= 0 {
		procs = runtime.NumCPU()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()

		return nil, fmt.Errorf("stat history file: %w", err)
	}

	counter := NewCountingReader(file)

	return &PBFSource{
		file:    file,
		counter: counter,
		scanner: osmpbf.New(ctx, counter, procs),
		size:    info.Size(),
	}, nil
}

// Next returns the next edit event, or io.EOF once the file is exhausted.
func (p *PBFSource) Next() (Event, error) {
	for p.scanner.Scan() {
		obj := p.scanner.Object()

		switch v := obj.(type) {
		case *osm.Node:
			return makeEvent(int64(v.UserID), v.User, v.Timestamp)
		case *osm.Way:
			return makeEvent(int64(v.UserID), v.User, v.Timestamp)
		case *osm.Relation:
			return makeEvent(int64(v.UserID), v.User, v.Timestamp)
		default:
			// Changesets and notes carry no edit-day information.
			continue
		}
	}

	err := p.scanner.Err()
	if err != nil {
		return Event{}, fmt.Errorf("scan history file: %w", err)
	}

	return Event{}, io.EOF
}

// Progress reports bytes read so far and the total file size.
func (p *PBFSource) Progress() (read, total int64) {
	return p.counter.Count(), p.size
}

// Close releases the decoder and the underlying file.
func (p *PBFSource) Close() error {
	scanErr := p.scanner.Close()

	err := p.file.Close()
	if err != nil {
		return fmt.Errorf("close history file: %w", err)
	}

	if scanErr != nil {
		return fmt.Errorf("close scanner: %w", scanErr)
	}

	return nil
}

func makeEvent(uid int64, username string, timestamp time.Time) (Event, error) {
	if uid < 0 {
		return Event{}, fmt.Errorf("%w: editor id %d", ErrMalformedEvent, uid)
	}

	if timestamp.IsZero() {
		return Event{}, fmt.Errorf("%w: zero timestamp for editor %d", ErrMalformedEvent, uid)
	}

	return Event{
		UID:       uid,
		Username:  username,
		Timestamp: timestamp,
	}, nil
}
