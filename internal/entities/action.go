package entities

import (
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// ActionType is the kind of action a player submits for a round
type ActionType string

// Player actions
const (
	ActionAttack     ActionType = "attack"
	ActionDefend     ActionType = "defend"
	ActionUseItem    ActionType = "use_item"
	ActionUseAbility ActionType = "use_ability"
)

// Enemy action types recorded in the round log
const (
	ActionEnemyAttack        ActionType = "enemy_attack"
	ActionEnemySpecialAttack ActionType = "special_attack"
	ActionEnemyCharge        ActionType = "charge"
	ActionVictory            ActionType = "victory"
	ActionDefeat             ActionType = "defeat"
	ActionLevelUp            ActionType = "level_up"
	ActionItemDrop           ActionType = "item_drop"
)

// CombatActionRequest is one player action. ItemID is required for
// use_item and AbilityID for use_ability.
type CombatActionRequest struct {
	Action    ActionType `json:"action"`
	ItemID    *int64     `json:"itemId,omitempty"`
	AbilityID *int64     `json:"abilityId,omitempty"`
}

// Validate checks the request shape
func (r *CombatActionRequest) Validate() error {
	vb := errors.NewValidationBuilder()

	switch r.Action {
	case ActionAttack, ActionDefend:
	case ActionUseItem:
		errors.ValidatePositive("itemId", r.ItemID, vb)
	case ActionUseAbility:
		errors.ValidatePositive("abilityId", r.AbilityID, vb)
	case "":
		vb.RequiredField("action")
	default:
		errors.ValidateEnum("action", string(r.Action), []string{
			string(ActionAttack),
			string(ActionDefend),
			string(ActionUseItem),
			string(ActionUseAbility),
		}, vb)
	}

	return vb.Build()
}

// Combatant identifies a side of the fight
type Combatant string

// Combatants
const (
	CombatantPlayer Combatant = "player"
	CombatantEnemy  Combatant = "enemy"
)

// Outcome tags a single log entry
type Outcome string

// Outcomes
const (
	OutcomeHit               Outcome = "hit"
	OutcomeMiss              Outcome = "miss"
	OutcomeDefending         Outcome = "defending"
	OutcomeHealed            Outcome = "healed"
	OutcomeNoEffect          Outcome = "no_effect"
	OutcomeItemUseFailed     Outcome = "item_use_failed"
	OutcomeChargingBegan     Outcome = "charging_began"
	OutcomeChargingContinues Outcome = "charging_continues"
	OutcomeSpecialAttack     Outcome = "special_attack"
	OutcomeVictory           Outcome = "victory"
	OutcomeDefeat            Outcome = "defeat"
	OutcomeLevelUp           Outcome = "level_up"
	OutcomeItemDropped       Outcome = "item_dropped"
)

// RollDetails records both sides of an opposed roll
type RollDetails struct {
	AttackerSkill int `json:"attackerSkill"`
	DefenderSkill int `json:"defenderSkill"`
	AttackerDie   int `json:"attackerDie"`
	DefenderDie   int `json:"defenderDie"`
	AttackerTotal int `json:"attackerTotal"`
	DefenderTotal int `json:"defenderTotal"`
}

// CombatActionResult is one entry in a round's log
type CombatActionResult struct {
	Actor               Combatant    `json:"actor"`
	ActionType          ActionType   `json:"actionType"`
	Description         string       `json:"description"`
	Roll                *RollDetails `json:"roll,omitempty"`
	Outcome             Outcome      `json:"outcome"`
	DamageDealt         *int         `json:"damageDealt,omitempty"`
	HealthHealed        *int         `json:"healthHealed,omitempty"`
	TargetActor         *Combatant   `json:"targetActor,omitempty"`
	TargetCurrentHP     *int         `json:"targetCurrentHp,omitempty"`
	TargetMaxHP         *int         `json:"targetMaxHp,omitempty"`
	ItemID              *int64       `json:"itemId,omitempty"`
	AbilityID           *int64       `json:"abilityId,omitempty"`
	ChargeTurnsCurrent  *int         `json:"chargeTurnsCurrent,omitempty"`
	ChargeTurnsRequired *int         `json:"chargeTurnsRequired,omitempty"`
}

// EnemySnapshot is the live view of the enemy while combat continues
type EnemySnapshot struct {
	ID                         int64   `json:"id"`
	Name                       string  `json:"name"`
	Health                     int     `json:"health"`
	CurrentHealth              int     `json:"currentHealth"`
	Skill                      int     `json:"skill"`
	IsChargingSpecial          bool    `json:"isChargingSpecial"`
	CurrentChargeTurns         int     `json:"currentChargeTurns"`
	MaxChargeTurns             int     `json:"maxChargeTurns"`
	SpecialAttackTelegraphText *string `json:"specialAttackTelegraphText,omitempty"`
}

// NewEnemySnapshot builds the snapshot for a template and its session
func NewEnemySnapshot(template *EnemyTemplate, session *CombatSession) *EnemySnapshot {
	snap := &EnemySnapshot{
		ID:                 template.ID,
		Name:               template.Name,
		Health:             template.BaseHealth,
		CurrentHealth:      session.EnemyCurrentHealth,
		Skill:              template.Skill,
		IsChargingSpecial:  session.IsEnemyCharging(),
		CurrentChargeTurns: session.EnemyChargeTurnsCurrent,
		MaxChargeTurns:     template.ChargeTurnsRequired(),
	}
	if template.HasSpecialAttack() && snap.IsChargingSpecial {
		text := template.SpecialAttack.TelegraphText
		snap.SpecialAttackTelegraphText = &text
	}
	return snap
}

// RoundOutcome is the result of resolving one round
type RoundOutcome struct {
	RoundActions []CombatActionResult `json:"roundActions"`
	Character    ActorCombatView      `json:"character"`
	Enemy        *EnemySnapshot       `json:"enemy,omitempty"` // Omitted once combat ends
	IsCombatOver bool                 `json:"isCombatOver"`
	NextNodeID   *int64               `json:"nextNodeId,omitempty"`
}

// CombatState is the read-only view of an ongoing fight
type CombatState struct {
	Character ActorCombatView `json:"character"`
	Enemy     *EnemySnapshot  `json:"enemy"`
}
