package stats

import "errors"

var (
	// ErrUnreadable means the host interface could not be read at all
	// (missing source, permission denied).
	ErrUnreadable = errors.New("stats: source unreadable")

	// ErrUnparseable means the host interface was read but its counters
	// did not parse.
	ErrUnparseable = errors.New("stats: source unparseable")

	// ErrUnsupported means no sampler backend exists for this platform.
	ErrUnsupported = errors.New("stats: unsupported platform")
)
