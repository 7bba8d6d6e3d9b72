package database

import "errors"

var (
	// ErrEmptyInterval is returned by ClosestProbe on an interval without probes
	ErrEmptyInterval = errors.New("interval has no probes")

	// ErrNotImplemented marks operations that are permanently unsupported
	ErrNotImplemented = errors.New("not implemented")

	// ErrMalformedTimestamp is returned when a probe directory name is not
	// a 6-character HHMMSS time.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrMalformedDate is returned when an interval directory name is not
	// an 8-digit YYYYMMDD date.
	ErrMalformedDate = errors.New("malformed interval date")

	// ErrInvalidTimeOfDay is returned for queries outside 00:00:00-23:59:59
	ErrInvalidTimeOfDay = errors.New("invalid time of day")

	// ErrNoDecoder is returned when no environment-map decoder was supplied
	ErrNoDecoder = errors.New("no environment map decoder")
)
