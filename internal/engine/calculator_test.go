package engine_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat/internal/effects"
	"github.com/KirkDiggler/rpg-combat/internal/engine"
	"github.com/KirkDiggler/rpg-combat/internal/testutils"
)

type CalculatorTestSuite struct {
	suite.Suite
}

func (s *CalculatorTestSuite) TestResolveAttackRoll() {
	testCases := []struct {
		name          string
		attackerSkill int
		defenderSkill int
		dice          []int
		wantAttacker  int
		wantDefender  int
		wantHit       bool
	}{
		{name: "attacker wins", attackerSkill: 10, defenderSkill: 8, dice: []int{5, 3}, wantAttacker: 15, wantDefender: 11, wantHit: true},
		{name: "tie favors defender", attackerSkill: 8, defenderSkill: 8, dice: []int{4, 4}, wantAttacker: 12, wantDefender: 12},
		{name: "die swings it", attackerSkill: 5, defenderSkill: 9, dice: []int{6, 1}, wantAttacker: 11, wantDefender: 10, wantHit: true},
		{name: "defender wins outright", attackerSkill: 2, defenderSkill: 9, dice: []int{6, 1}, wantAttacker: 8, wantDefender: 10},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			roller := testutils.NewScriptedRoller(tc.dice...)
			roll, err := engine.ResolveAttackRoll(roller, tc.attackerSkill, tc.defenderSkill)
			s.Require().NoError(err)
			s.Equal(tc.wantAttacker, roll.AttackerTotal)
			s.Equal(tc.wantDefender, roll.DefenderTotal)
			s.Equal(tc.dice[0], roll.AttackerDie)
			s.Equal(tc.dice[1], roll.DefenderDie)
			s.Equal(tc.wantHit, roll.Hit)
			s.Equal([]int{engine.DieSides, engine.DieSides}, roller.Sizes())
		})
	}
}

func (s *CalculatorTestSuite) TestResolveAttackRollHitRequiresStrictlyGreater() {
	for attacker := 1; attacker <= engine.DieSides; attacker++ {
		for defender := 1; defender <= engine.DieSides; defender++ {
			roll, err := engine.ResolveAttackRoll(testutils.NewScriptedRoller(attacker, defender), 7, 7)
			s.Require().NoError(err)
			s.Equal(roll.AttackerTotal > roll.DefenderTotal, roll.Hit)
			if attacker == defender {
				s.False(roll.Hit)
			}
		}
	}
}

func (s *CalculatorTestSuite) TestResolveAttackRollPropagatesRollerErrors() {
	_, err := engine.ResolveAttackRoll(testutils.NewScriptedRoller(3), 1, 1)
	s.Error(err)

	_, err = engine.ResolveAttackRoll(nil, 1, 1)
	s.Error(err)
}

func (s *CalculatorTestSuite) TestComputeWeaponDamage() {
	s.Equal(5, engine.ComputeWeaponDamage(effects.Parse("damage+3", nil), 10))
	s.Equal(3, engine.ComputeWeaponDamage(nil, 10))
	s.Equal(1, engine.ComputeWeaponDamage(nil, 4))
	s.Equal(2, engine.ComputeWeaponDamage(effects.Parse("skill+1;damage+2", nil), 0))
	s.Equal(0, engine.ComputeWeaponDamage(effects.Parse("damage+0", nil), 3))
	s.Equal(2, engine.ComputeWeaponDamage(effects.Parse("damage+0", nil), 10))
}

func (s *CalculatorTestSuite) TestComputeAbilityDamage() {
	// (3 + 10/5) * 1.5 = 7.5
	s.Equal(7, engine.ComputeAbilityDamage(effects.Parse("damage+3", nil), 10, 1.5))
	s.Equal(2, engine.ComputeAbilityDamage(nil, 5, 1))
	s.Equal(0, engine.ComputeAbilityDamage(nil, 5, 0))
}

func (s *CalculatorTestSuite) TestComputeMitigatedDamage() {
	s.Equal(engine.Mitigation{Damage: 4}, engine.ComputeMitigatedDamage(5, 1, false))
	s.Equal(engine.Mitigation{Damage: 2, DefenseReduced: true}, engine.ComputeMitigatedDamage(5, 1, true))
	s.Equal(engine.Mitigation{Damage: 0}, engine.ComputeMitigatedDamage(3, 10, false))
	s.Equal(engine.Mitigation{Damage: 5}, engine.ComputeMitigatedDamage(5, 0, false))
}

func (s *CalculatorTestSuite) TestComputeMitigatedDamageIsMonotonic() {
	for raw := 0; raw <= 20; raw++ {
		prev := engine.ComputeMitigatedDamage(raw, 0, false).Damage
		for defense := 0; defense <= 20; defense++ {
			open := engine.ComputeMitigatedDamage(raw, defense, false).Damage
			guarded := engine.ComputeMitigatedDamage(raw, defense, true).Damage
			s.LessOrEqual(guarded, open)
			s.LessOrEqual(open, prev)
			s.GreaterOrEqual(guarded, 0)
			prev = open
		}
	}
}

func (s *CalculatorTestSuite) TestComputeSpecialAttackMitigation() {
	s.Equal(engine.Mitigation{Damage: 5, DefenseReduced: true}, engine.ComputeSpecialAttackMitigation(20, 3, true))
	s.Equal(engine.Mitigation{Damage: 17}, engine.ComputeSpecialAttackMitigation(20, 3, false))
	s.Equal(engine.Mitigation{Damage: 0, DefenseReduced: true}, engine.ComputeSpecialAttackMitigation(3, 0, true))
	s.Equal(engine.Mitigation{Damage: 0}, engine.ComputeSpecialAttackMitigation(2, 5, false))
}

func (s *CalculatorTestSuite) TestComputeSpecialAttackDamage() {
	s.Equal(16, engine.ComputeSpecialAttackDamage(8, 2))
	s.Equal(12, engine.ComputeSpecialAttackDamage(5, 2.5))
	s.Equal(0, engine.ComputeSpecialAttackDamage(5, -1))
}

func (s *CalculatorTestSuite) TestComputeEnemyDamage() {
	s.Equal(5, engine.ComputeEnemyDamage(10))
	s.Equal(4, engine.ComputeEnemyDamage(8))
	s.Equal(1, engine.ComputeEnemyDamage(1))
	s.Equal(1, engine.ComputeEnemyDamage(0))
}

func (s *CalculatorTestSuite) TestApplyHeal() {
	s.Equal(engine.HealResult{NewHealth: 15, Healed: 5}, engine.ApplyHeal(10, 20, 5))
	s.Equal(engine.HealResult{NewHealth: 20, Healed: 2}, engine.ApplyHeal(18, 20, 5))
	s.Equal(engine.HealResult{NewHealth: 20}, engine.ApplyHeal(20, 20, 5))
	s.Equal(engine.HealResult{NewHealth: 10}, engine.ApplyHeal(10, 20, 0))
}

func (s *CalculatorTestSuite) TestApplyHealNeverExceedsMax() {
	for current := 0; current <= 12; current++ {
		for amount := 0; amount <= 15; amount++ {
			result := engine.ApplyHeal(current, 12, amount)
			s.LessOrEqual(result.NewHealth, 12)
			s.Equal(result.NewHealth-current, result.Healed)
		}
	}
}

func (s *CalculatorTestSuite) TestDefendingSkill() {
	s.Equal(16, engine.DefendingSkill(8, true))
	s.Equal(8, engine.DefendingSkill(8, false))
}

func TestCalculatorTestSuite(t *testing.T) {
	suite.Run(t, new(CalculatorTestSuite))
}
