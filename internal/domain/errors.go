package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means every lookup succeeded but no matching player exists.
	ErrNotFound = errors.New("player not found")

	// ErrRankingUnavailable means a leaderboard page could not be fetched.
	ErrRankingUnavailable = errors.New("ranking unavailable")
)

// TransportError wraps a network, HTTP status or payload failure of an
// upstream call. It is never used for a successful empty lookup.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// IsTransport reports whether err carries a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// RankingUnavailableError reports a failed leaderboard fetch. It matches
// ErrRankingUnavailable with errors.Is.
type RankingUnavailableError struct {
	Region Region
	Err    error
}

func (e *RankingUnavailableError) Error() string {
	return fmt.Sprintf("ranking unavailable for region %s: %v", e.Region, e.Err)
}

func (e *RankingUnavailableError) Unwrap() []error {
	return []error{ErrRankingUnavailable, e.Err}
}
