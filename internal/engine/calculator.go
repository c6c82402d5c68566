// Package engine holds the pure combat math: opposed rolls, damage,
// mitigation and healing, plus the enemy charge-state machine.
//
// Nothing here touches storage. Dice come in through a dice.Roller so
// callers and tests control randomness.
package engine

import (
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-combat/internal/effects"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// Balance constants
const (
	// DieSides is the size of the die each side adds to skill on an opposed roll
	DieSides = 6

	// UnarmedDamage is the base damage without a damage+N weapon
	UnarmedDamage = 1

	// SkillDamageDivisor converts skill into bonus damage
	SkillDamageDivisor = 5

	// SpecialAttackDefendPercent is the share of special attack damage that
	// gets through a defend stance
	SpecialAttackDefendPercent = 25
)

// AttackRoll is the result of an opposed roll
type AttackRoll struct {
	AttackerSkill int
	DefenderSkill int
	AttackerDie   int
	DefenderDie   int
	AttackerTotal int
	DefenderTotal int
	Hit           bool
}

// Mitigation is damage after defense
type Mitigation struct {
	Damage         int
	DefenseReduced bool // The defend stance reduced the damage
}

// HealResult is the outcome of a heal
type HealResult struct {
	NewHealth int
	Healed    int
}

// ResolveAttackRoll rolls one die for each side. Ties go to the defender.
func ResolveAttackRoll(roller dice.Roller, attackerSkill, defenderSkill int) (AttackRoll, error) {
	if roller == nil {
		return AttackRoll{}, errors.InvalidArgument("dice roller is required")
	}

	attackerDie, err := roller.Roll(DieSides)
	if err != nil {
		return AttackRoll{}, errors.Wrap(err, "failed to roll attacker die")
	}
	defenderDie, err := roller.Roll(DieSides)
	if err != nil {
		return AttackRoll{}, errors.Wrap(err, "failed to roll defender die")
	}

	roll := AttackRoll{
		AttackerSkill: attackerSkill,
		DefenderSkill: defenderSkill,
		AttackerDie:   attackerDie,
		DefenderDie:   defenderDie,
		AttackerTotal: attackerSkill + attackerDie,
		DefenderTotal: defenderSkill + defenderDie,
	}
	roll.Hit = roll.AttackerTotal > roll.DefenderTotal

	return roll, nil
}

// DefendingSkill is the skill a defender rolls with. The defend stance
// doubles it for the enemy's normal attack roll.
func DefendingSkill(skill int, defending bool) int {
	if defending {
		return skill * 2
	}
	return skill
}

// ComputeWeaponDamage is the weapon's damage+N (or UnarmedDamage) plus skill/5
func ComputeWeaponDamage(weapon []effects.Effect, skill int) int {
	base := UnarmedDamage
	if dmg, ok := effects.First[effects.Damage](weapon); ok {
		base = dmg.Amount
	}
	return base + max(skill, 0)/SkillDamageDivisor
}

// ComputeAbilityDamage scales weapon damage by an ability's multiplier
func ComputeAbilityDamage(weapon []effects.Effect, skill int, multiplier float64) int {
	return floorNonNegative(float64(ComputeWeaponDamage(weapon, skill)) * multiplier)
}

// ComputeMitigatedDamage subtracts passive defense, then halves the result
// when the defender is in a defend stance.
func ComputeMitigatedDamage(raw, defense int, defending bool) Mitigation {
	damage := max(raw-max(defense, 0), 0)
	if !defending {
		return Mitigation{Damage: damage}
	}
	return Mitigation{Damage: damage / 2, DefenseReduced: true}
}

// ComputeSpecialAttackMitigation applies to special attacks. A defend stance
// lets SpecialAttackDefendPercent of the raw damage through and ignores
// passive defense; otherwise passive defense is subtracted.
func ComputeSpecialAttackMitigation(raw, defense int, defending bool) Mitigation {
	raw = max(raw, 0)
	if defending {
		return Mitigation{Damage: raw * SpecialAttackDefendPercent / 100, DefenseReduced: true}
	}
	return Mitigation{Damage: max(raw-max(defense, 0), 0)}
}

// ComputeSpecialAttackDamage is floor(skill * multiplier)
func ComputeSpecialAttackDamage(skill int, multiplier float64) int {
	return floorNonNegative(float64(skill) * multiplier)
}

// ComputeEnemyDamage is the raw damage of an enemy's normal attack
func ComputeEnemyDamage(skill int) int {
	return max(1, skill/2)
}

// ApplyHeal restores up to amount without going over maxHealth
func ApplyHeal(current, maxHealth, amount int) HealResult {
	if amount <= 0 || current >= maxHealth {
		return HealResult{NewHealth: current}
	}
	next := min(current+amount, maxHealth)
	return HealResult{NewHealth: next, Healed: next - current}
}

func floorNonNegative(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Floor(v))
}
