package combat

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/logger"
)

// Event types published on the bus
const (
	EventCombatStarted       = "combat.started"
	EventCombatRoundResolved = "combat.round_resolved"
	EventCombatVictory       = "combat.victory"
	EventCombatDefeat        = "combat.defeat"
)

// Event context keys
const (
	EventKeySessionID  = "session_id"
	EventKeyNodeID     = "node_id"
	EventKeyNextNodeID = "next_node_id"
	EventKeyAction     = "action"
	EventKeyActorHP    = "actor_health"
	EventKeyEnemyHP    = "enemy_health"
)

// Entity types for event sources and targets
const (
	EntityTypeActor = "actor"
	EntityTypeEnemy = "enemy"
)

// combatant adapts an actor or enemy to core.Entity
type combatant struct {
	id   string
	kind string
}

func (c combatant) GetID() string   { return c.id }
func (c combatant) GetType() string { return c.kind }

var _ core.Entity = combatant{}

func actorEntity(actorID string) core.Entity {
	return combatant{id: actorID, kind: EntityTypeActor}
}

func enemyEntity(session *entities.CombatSession) core.Entity {
	// Enemy instances live as long as their session
	return combatant{id: session.ID, kind: EntityTypeEnemy}
}

// publish emits an event when a bus is configured. Handler failures are
// logged, never returned: the round is already persisted.
func (o *orchestrator) publish(ctx context.Context, eventType string, source, target core.Entity, data map[string]interface{}) {
	if o.eventBus == nil {
		return
	}

	event := events.NewGameEvent(eventType, source, target)
	for k, v := range data {
		event.Context().Set(k, v)
	}

	if err := o.eventBus.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("event_type", eventType).Warn("event handler failed")
	}
}
