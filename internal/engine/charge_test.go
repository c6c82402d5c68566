package engine_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat/internal/engine"
	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/testutils"
)

type ChargeTestSuite struct {
	suite.Suite
	ogre *entities.EnemyTemplate
	rat  *entities.EnemyTemplate
}

func (s *ChargeTestSuite) SetupTest() {
	s.ogre = &entities.EnemyTemplate{
		ID:    1,
		Name:  "Ogre",
		Skill: 8,
		SpecialAttack: &entities.SpecialAttack{
			Name:                "Club Slam",
			DamageMultiplier:    2,
			ChargeTurnsRequired: 2,
		},
	}
	s.rat = &entities.EnemyTemplate{ID: 2, Name: "Rat", Skill: 2}
}

func (s *ChargeTestSuite) TestDecideEnemyAction() {
	testCases := []struct {
		name     string
		template func() *entities.EnemyTemplate
		charge   int
		dice     []int
		want     engine.EnemyDecision
	}{
		{
			name:     "no special attack always attacks",
			template: func() *entities.EnemyTemplate { return s.rat },
			want:     engine.EnemyDecision{Kind: engine.EnemyNormalAttack},
		},
		{
			name:     "idle enemy begins charging on a low roll",
			template: func() *entities.EnemyTemplate { return s.ogre },
			dice:     []int{engine.ChargeInitiationChance},
			want:     engine.EnemyDecision{Kind: engine.EnemyBeginCharging, NextCharge: 1, ChanceRoll: engine.ChargeInitiationChance},
		},
		{
			name:     "idle enemy attacks on a high roll",
			template: func() *entities.EnemyTemplate { return s.ogre },
			dice:     []int{engine.ChargeInitiationChance + 1},
			want:     engine.EnemyDecision{Kind: engine.EnemyNormalAttack, ChanceRoll: engine.ChargeInitiationChance + 1},
		},
		{
			name:     "charging enemy continues",
			template: func() *entities.EnemyTemplate { return s.ogre },
			charge:   1,
			want:     engine.EnemyDecision{Kind: engine.EnemyContinueCharging, NextCharge: 2},
		},
		{
			name:     "fully charged enemy executes",
			template: func() *entities.EnemyTemplate { return s.ogre },
			charge:   2,
			want:     engine.EnemyDecision{Kind: engine.EnemyExecuteSpecial},
		},
		{
			name:     "overcharged counter still executes and resets",
			template: func() *entities.EnemyTemplate { return s.ogre },
			charge:   5,
			want:     engine.EnemyDecision{Kind: engine.EnemyExecuteSpecial},
		},
		{
			name: "zero charge requirement is no special attack",
			template: func() *entities.EnemyTemplate {
				return &entities.EnemyTemplate{SpecialAttack: &entities.SpecialAttack{DamageMultiplier: 3}}
			},
			want: engine.EnemyDecision{Kind: engine.EnemyNormalAttack},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			roller := testutils.NewScriptedRoller(tc.dice...)
			got, err := engine.DecideEnemyAction(tc.template(), tc.charge, roller)
			s.Require().NoError(err)
			s.Equal(tc.want, got)
			s.Equal(0, roller.Remaining())
		})
	}
}

func (s *ChargeTestSuite) TestChanceRollUsesPercentileDie() {
	roller := testutils.NewScriptedRoller(90)
	_, err := engine.DecideEnemyAction(s.ogre, 0, roller)
	s.Require().NoError(err)
	s.Equal([]int{100}, roller.Sizes())
}

func (s *ChargeTestSuite) TestChargeNeverExceedsRequired() {
	for _, required := range []int{1, 2, 3, 4} {
		s.ogre.SpecialAttack.ChargeTurnsRequired = required
		charge := 0
		executed := 0
		for round := 0; round < 40; round++ {
			// Always begin charging when idle
			decision, err := engine.DecideEnemyAction(s.ogre, charge, testutils.NewScriptedRoller(1))
			s.Require().NoError(err)
			s.LessOrEqual(decision.NextCharge, required)
			if decision.Kind == engine.EnemyExecuteSpecial {
				s.Equal(required, charge)
				s.Equal(0, decision.NextCharge)
				executed++
			}
			charge = decision.NextCharge
		}
		s.Positive(executed)
	}
}

func (s *ChargeTestSuite) TestRejectsMissingInputs() {
	_, err := engine.DecideEnemyAction(nil, 0, testutils.NewScriptedRoller())
	s.Error(err)

	_, err = engine.DecideEnemyAction(s.ogre, 0, nil)
	s.Error(err)
}

func (s *ChargeTestSuite) TestPropagatesRollerErrors() {
	_, err := engine.DecideEnemyAction(s.ogre, 0, testutils.NewScriptedRoller())
	s.Error(err)
}

func TestChargeTestSuite(t *testing.T) {
	suite.Run(t, new(ChargeTestSuite))
}
