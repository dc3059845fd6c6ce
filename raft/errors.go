package raft

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks a programmer-error condition raised by the
// caller supplying an argument the protocol never allows: a fetch from the
// leader's own id, an acknowledgement from a non-voter, or a replica-key
// refinement that contradicts an already-known directory id.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidState marks a programmer-error condition arising from the
// caller violating a sequencing invariant: a non-monotonic local end-offset
// update, a remote replica id colliding with the local leader id, or a
// leader-change emission that requires bootstrap voter-set replication
// under a KRaft version that does not support reconfiguration.
var ErrInvalidState = errors.New("invalid state")

func invalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func invalidStatef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}
