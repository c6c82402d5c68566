// Package combatsession provides persistence for live combat sessions
package combatsession

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
)

// Repository defines the interface for combat session persistence.
// Sessions are keyed by actor, so an actor has at most one.
type Repository interface {
	// Create starts a session for an actor
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists (reason session_already_active) if the actor has a session;
	// the existing session is left untouched
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// GetByActor retrieves the actor's session
	// Returns errors.InvalidArgument for empty actor IDs
	// Returns errors.NotFound if the actor is not in combat
	// Returns errors.Internal for storage failures
	GetByActor(ctx context.Context, input GetByActorInput) (*GetByActorOutput, error)

	// Update replaces the session's round state if Version still matches the stored one.
	// The stored Version is bumped and LastActionTime refreshed.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the session no longer exists
	// Returns errors.Aborted (reason stale_session) if another write got there first
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete ends the actor's session. Deleting an absent session is not an error.
	// Returns errors.InvalidArgument for empty actor IDs
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// AcquireRoundLock serializes rounds for one actor
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Aborted (reason round_in_progress) if a round is already running
	// Returns errors.Internal for storage failures
	AcquireRoundLock(ctx context.Context, input AcquireRoundLockInput) (*AcquireRoundLockOutput, error)
}

// RoundLock is held for the duration of one round
type RoundLock interface {
	// Release frees the lock if it is still ours. Releasing an expired lock is a no-op.
	Release(ctx context.Context) error
}

// CreateInput defines the input for creating a session
type CreateInput struct {
	ActorID         string
	EnemyTemplateID int64
	NodeID          int64
	EnemyHealth     int
}

// CreateOutput defines the output for creating a session
type CreateOutput struct {
	Session *entities.CombatSession
}

// GetByActorInput defines the input for getting a session
type GetByActorInput struct {
	ActorID string
}

// GetByActorOutput defines the output for getting a session
type GetByActorOutput struct {
	Session *entities.CombatSession
}

// UpdateInput defines the input for updating a session
type UpdateInput struct {
	Session *entities.CombatSession
}

// UpdateOutput defines the output for updating a session
type UpdateOutput struct {
	Session *entities.CombatSession
}

// DeleteInput defines the input for deleting a session
type DeleteInput struct {
	ActorID string
}

// DeleteOutput defines the output for deleting a session
type DeleteOutput struct {
	Deleted bool
}

// AcquireRoundLockInput defines the input for locking a round
type AcquireRoundLockInput struct {
	ActorID string
	TTL     time.Duration
}

// AcquireRoundLockOutput defines the output for locking a round
type AcquireRoundLockOutput struct {
	Lock RoundLock
}
