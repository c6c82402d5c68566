package entities

import (
	"time"
)

// CombatSession binds one actor to one enemy instance for the duration of a fight
type CombatSession struct {
	ID                      string    `json:"id"`
	ActorID                 string    `json:"actor_id"` // Owner, at most one session per actor
	EnemyTemplateID         int64     `json:"enemy_template_id"`
	NodeID                  int64     `json:"node_id"` // Enemy-bound story node the fight started from
	EnemyCurrentHealth      int       `json:"enemy_current_health"`
	EnemyChargeTurnsCurrent int       `json:"enemy_charge_turns_current"` // 0 when not charging
	ActorIsDefending        bool      `json:"actor_is_defending"`
	LastActionTime          time.Time `json:"last_action_time"`
	Version                 int64     `json:"version"`
	CreatedAt               time.Time `json:"created_at"`
}

// IsEnemyCharging reports whether the enemy is mid charge-up
func (s *CombatSession) IsEnemyCharging() bool {
	return s.EnemyChargeTurnsCurrent > 0
}
