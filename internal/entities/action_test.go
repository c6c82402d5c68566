package entities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

type ActionTestSuite struct {
	suite.Suite
}

func (s *ActionTestSuite) TestValidate() {
	five := int64(5)
	zero := int64(0)
	negative := int64(-2)

	testCases := []struct {
		name    string
		request entities.CombatActionRequest
		wantErr string
	}{
		{name: "attack", request: entities.CombatActionRequest{Action: entities.ActionAttack}},
		{name: "defend", request: entities.CombatActionRequest{Action: entities.ActionDefend}},
		{name: "use item", request: entities.CombatActionRequest{Action: entities.ActionUseItem, ItemID: &five}},
		{name: "use ability", request: entities.CombatActionRequest{Action: entities.ActionUseAbility, AbilityID: &five}},
		{
			name:    "missing action",
			request: entities.CombatActionRequest{},
			wantErr: "action",
		},
		{
			name:    "unknown action",
			request: entities.CombatActionRequest{Action: "flee"},
			wantErr: "must be one of",
		},
		{
			name:    "use item without item",
			request: entities.CombatActionRequest{Action: entities.ActionUseItem},
			wantErr: "itemId",
		},
		{
			name:    "use item with zero id",
			request: entities.CombatActionRequest{Action: entities.ActionUseItem, ItemID: &zero},
			wantErr: "positive integer",
		},
		{
			name:    "use ability with negative id",
			request: entities.CombatActionRequest{Action: entities.ActionUseAbility, AbilityID: &negative},
			wantErr: "abilityId",
		},
		{
			name:    "ability id only checked for abilities",
			request: entities.CombatActionRequest{Action: entities.ActionUseItem, ItemID: &five, AbilityID: &negative},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.request.Validate()
			if tc.wantErr == "" {
				s.NoError(err)
				return
			}
			s.Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.wantErr)
		})
	}
}

func (s *ActionTestSuite) TestNewEnemySnapshot() {
	template := &entities.EnemyTemplate{
		ID:         3,
		Name:       "Ogre",
		BaseHealth: 30,
		Skill:      8,
		SpecialAttack: &entities.SpecialAttack{
			Name:                "Club Slam",
			DamageMultiplier:    2,
			ChargeTurnsRequired: 2,
			TelegraphText:       "The ogre raises its club high.",
		},
	}

	s.Run("not charging", func() {
		snap := entities.NewEnemySnapshot(template, &entities.CombatSession{EnemyCurrentHealth: 12})
		s.Equal(int64(3), snap.ID)
		s.Equal(30, snap.Health)
		s.Equal(12, snap.CurrentHealth)
		s.False(snap.IsChargingSpecial)
		s.Equal(2, snap.MaxChargeTurns)
		s.Nil(snap.SpecialAttackTelegraphText)
	})

	s.Run("charging", func() {
		snap := entities.NewEnemySnapshot(template, &entities.CombatSession{EnemyCurrentHealth: 12, EnemyChargeTurnsCurrent: 1})
		s.True(snap.IsChargingSpecial)
		s.Equal(1, snap.CurrentChargeTurns)
		s.Require().NotNil(snap.SpecialAttackTelegraphText)
		s.Equal("The ogre raises its club high.", *snap.SpecialAttackTelegraphText)
	})

	s.Run("no special attack", func() {
		plain := &entities.EnemyTemplate{ID: 4, Name: "Rat", BaseHealth: 4, Skill: 2}
		snap := entities.NewEnemySnapshot(plain, &entities.CombatSession{EnemyCurrentHealth: 4})
		s.Equal(0, snap.MaxChargeTurns)
		s.Nil(snap.SpecialAttackTelegraphText)
	})
}

func TestActionTestSuite(t *testing.T) {
	suite.Run(t, new(ActionTestSuite))
}
