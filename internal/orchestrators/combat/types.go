package combat

import (
	"github.com/KirkDiggler/rpg-combat/internal/entities"
)

// StartCombatInput defines the request for entering an enemy-bound node
type StartCombatInput struct {
	ActorID string
	NodeID  int64
}

// StartCombatOutput defines the response for starting combat
type StartCombatOutput struct {
	SessionID string
	State     *entities.CombatState
}

// GetCombatStateInput defines the request for reading an ongoing fight
type GetCombatStateInput struct {
	ActorID string
}

// GetCombatStateOutput defines the response for reading an ongoing fight
type GetCombatStateOutput struct {
	State *entities.CombatState
}

// ResolveRoundInput defines the request for resolving one round
type ResolveRoundInput struct {
	ActorID string
	Action  entities.CombatActionRequest
}

// ResolveRoundOutput defines the response for resolving one round
type ResolveRoundOutput struct {
	Outcome *entities.RoundOutcome
}
