package svn

import (
	"errors"
)

var (
	// ErrMalformedInput is returned when a listing entry is missing a
	// required field, or a document cannot be decoded at all.
	ErrMalformedInput = errors.New("malformed input")

	// ErrSourceUnavailable is returned when an xml source cannot be opened
	// or mapped.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNoHistory is returned by Summary when neither an entry nor any of
	// its descendants has a revision attached.
	ErrNoHistory = errors.New("no history")

	ErrUnknownNodeKind   = errors.New("unknown node kind")
	ErrUnknownNodeAction = errors.New("unknown node action")
)
