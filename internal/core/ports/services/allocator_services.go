package services

import "context"

// AllocatorSvc issues sequential, never-reused account codes.
type AllocatorSvc interface {
	// NextCode advances the persisted cursor and returns the issued code.
	// The new state is durable before the code is returned, so a crash after
	// return cannot reissue it.
	NextCode(ctx context.Context) (string, error)

	// PeekNext reports the code the next NextCode call would issue, without
	// advancing; used by status displays.
	PeekNext(ctx context.Context) (string, error)
}
