package engine

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

const (
	// ChargeInitiationChance is the percent chance an idle enemy with a
	// special attack starts charging instead of attacking
	ChargeInitiationChance = 40

	percentileDie = 100
)

// EnemyActionKind is what the enemy does this round
type EnemyActionKind string

// Enemy action kinds
const (
	EnemyExecuteSpecial   EnemyActionKind = "execute_special"
	EnemyContinueCharging EnemyActionKind = "continue_charging"
	EnemyBeginCharging    EnemyActionKind = "begin_charging"
	EnemyNormalAttack     EnemyActionKind = "normal_attack"
)

// EnemyDecision is the enemy's action and the charge counter to persist
// after it. NextCharge never exceeds the template's ChargeTurnsRequired.
type EnemyDecision struct {
	Kind       EnemyActionKind
	NextCharge int
	ChanceRoll int // d100 roll when charge initiation was attempted, 0 otherwise
}

// DecideEnemyAction picks the enemy's action from its template and current
// charge counter. Only an idle enemy with a special attack rolls the dice.
func DecideEnemyAction(template *entities.EnemyTemplate, currentCharge int, roller dice.Roller) (EnemyDecision, error) {
	if template == nil {
		return EnemyDecision{}, errors.InvalidArgument("enemy template is required")
	}

	if !template.HasSpecialAttack() {
		return EnemyDecision{Kind: EnemyNormalAttack}, nil
	}

	required := template.SpecialAttack.ChargeTurnsRequired
	switch {
	case currentCharge >= required:
		return EnemyDecision{Kind: EnemyExecuteSpecial}, nil
	case currentCharge > 0:
		return EnemyDecision{Kind: EnemyContinueCharging, NextCharge: currentCharge + 1}, nil
	}

	if roller == nil {
		return EnemyDecision{}, errors.InvalidArgument("dice roller is required")
	}
	chance, err := roller.Roll(percentileDie)
	if err != nil {
		return EnemyDecision{}, errors.Wrap(err, "failed to roll charge initiation")
	}
	if chance <= ChargeInitiationChance {
		return EnemyDecision{Kind: EnemyBeginCharging, NextCharge: 1, ChanceRoll: chance}, nil
	}
	return EnemyDecision{Kind: EnemyNormalAttack, ChanceRoll: chance}, nil
}
