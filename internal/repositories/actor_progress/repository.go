// Package actorprogress provides persistence for actor identity and
// per-playthrough progress
package actorprogress

import (
	"context"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
)

// Leveling constants
const (
	// XPPerLevel times the current level is the xp needed for the next level
	XPPerLevel = 100
	// SkillPerLevel is added to skill on each level up
	SkillPerLevel = 1
	// StaminaPerLevel is added to stamina on each level up
	StaminaPerLevel = 2
)

// Repository defines the interface for actor progress persistence
type Repository interface {
	// Create stores a new actor with starting progress
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if the actor exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// GetSnapshot reads identity and progress, including inventory and learned abilities
	// Returns errors.InvalidArgument for empty actor IDs
	// Returns errors.NotFound if the actor doesn't exist
	// Returns errors.Internal for storage failures
	GetSnapshot(ctx context.Context, input GetSnapshotInput) (*GetSnapshotOutput, error)

	// ApplyDelta sets the given stats, leaving the rest untouched
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the actor doesn't exist
	// Returns errors.Aborted if the progress changed mid-update
	// Returns errors.Internal for storage failures
	ApplyDelta(ctx context.Context, input ApplyDeltaInput) (*ApplyDeltaOutput, error)

	// HasItem reports whether the actor holds the item
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	HasItem(ctx context.Context, input HasItemInput) (*HasItemOutput, error)

	// RemoveItem atomically decrements the item's quantity
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.FailedPrecondition (reason item_not_owned) if the actor holds fewer than Quantity
	// Returns errors.Internal for storage failures
	RemoveItem(ctx context.Context, input RemoveItemInput) (*RemoveItemOutput, error)

	// AddItem increments the item's quantity
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the actor doesn't exist
	// Returns errors.Internal for storage failures
	AddItem(ctx context.Context, input AddItemInput) (*AddItemOutput, error)

	// HasLearnedAbility reports whether the actor learned the ability
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	HasLearnedAbility(ctx context.Context, input HasLearnedAbilityInput) (*HasLearnedAbilityOutput, error)

	// GrantXP adds xp and applies any level ups it triggers
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the actor doesn't exist
	// Returns errors.Aborted if the progress changed mid-update
	// Returns errors.Internal for storage failures
	GrantXP(ctx context.Context, input GrantXPInput) (*GrantXPOutput, error)

	// AdvanceToNode moves the actor's story position
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the actor doesn't exist
	// Returns errors.Aborted if the progress changed mid-update
	// Returns errors.Internal for storage failures
	AdvanceToNode(ctx context.Context, input AdvanceToNodeInput) (*AdvanceToNodeOutput, error)
}

// CreateInput defines the input for creating an actor
type CreateInput struct {
	Identity entities.ActorIdentity
	Progress entities.ActorProgress
}

// CreateOutput defines the output for creating an actor
type CreateOutput struct{}

// GetSnapshotInput defines the input for reading an actor
type GetSnapshotInput struct {
	ActorID string
}

// GetSnapshotOutput defines the output for reading an actor
type GetSnapshotOutput struct {
	Identity entities.ActorIdentity
	Progress entities.ActorProgress
}

// ProgressDelta is a partial update. Nil fields are left unchanged.
type ProgressDelta struct {
	Health  *int
	Skill   *int
	Luck    *int
	Stamina *int
	Defense *int
}

// ApplyDeltaInput defines the input for updating stats
type ApplyDeltaInput struct {
	ActorID string
	Delta   ProgressDelta
}

// ApplyDeltaOutput defines the output for updating stats
type ApplyDeltaOutput struct{}

// HasItemInput defines the input for checking an item
type HasItemInput struct {
	ActorID string
	ItemID  int64
}

// HasItemOutput defines the output for checking an item
type HasItemOutput struct {
	Has      bool
	Quantity int
}

// RemoveItemInput defines the input for removing an item
type RemoveItemInput struct {
	ActorID  string
	ItemID   int64
	Quantity int
}

// RemoveItemOutput defines the output for removing an item
type RemoveItemOutput struct {
	Remaining int
}

// AddItemInput defines the input for adding an item
type AddItemInput struct {
	ActorID  string
	ItemID   int64
	Quantity int
}

// AddItemOutput defines the output for adding an item
type AddItemOutput struct {
	Quantity int
}

// HasLearnedAbilityInput defines the input for checking an ability
type HasLearnedAbilityInput struct {
	ActorID   string
	AbilityID int64
}

// HasLearnedAbilityOutput defines the output for checking an ability
type HasLearnedAbilityOutput struct {
	Learned bool
}

// GrantXPInput defines the input for granting xp
type GrantXPInput struct {
	ActorID string
	Amount  int
}

// GrantXPOutput defines the output for granting xp
type GrantXPOutput struct {
	LeveledUp bool
	Level     int
	Messages  []string
}

// AdvanceToNodeInput defines the input for moving an actor
type AdvanceToNodeInput struct {
	ActorID string
	NodeID  int64
}

// AdvanceToNodeOutput defines the output for moving an actor
type AdvanceToNodeOutput struct{}
