package testutils

import (
	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/repositories/content"
)

// Reference data IDs used by TestCatalog
const (
	ItemSwordID  int64 = 1
	ItemPotionID int64 = 2
	ItemFangID   int64 = 3
	ItemMailID   int64 = 4
	ItemPebbleID int64 = 5
	ItemCharmID  int64 = 6

	AbilityPowerStrikeID int64 = 1
	AbilityMeditateID    int64 = 2
	AbilityToughnessID   int64 = 3
	AbilityFuryID        int64 = 4

	EnemyWolfID int64 = 1
	EnemyOgreID int64 = 2

	NodeStartID   int64 = 1
	NodeWolfID    int64 = 2
	NodeVictoryID int64 = 3
	NodeDefeatID  int64 = 4
	NodeOgreID    int64 = 5

	// TestActorName is the default actor name for test fixtures
	TestActorName = "Wren"
)

// TestCatalog returns a small, valid catalog. The wolf is a plain enemy
// with an item drop; the ogre charges a two-round special attack.
func TestCatalog() *content.Catalog {
	return &content.Catalog{
		Items: []entities.ItemTemplate{
			{ID: ItemSwordID, Name: "Short Sword", Type: entities.ItemTypeWeapon, Effect: "damage+3"},
			{ID: ItemPotionID, Name: "Healing Draught", Type: entities.ItemTypeConsumable, Effect: "heal+10", Usable: true},
			{ID: ItemFangID, Name: "Wolf Fang", Type: entities.ItemTypeMisc},
			{ID: ItemMailID, Name: "Chain Mail", Type: entities.ItemTypeArmor, Effect: "defense+2;skill-1"},
			{ID: ItemPebbleID, Name: "Smooth Pebble", Type: entities.ItemTypeMisc, Usable: true},
			{ID: ItemCharmID, Name: "Lucky Charm", Type: entities.ItemTypeMisc, Effect: "luck+1"},
		},
		Abilities: []entities.AbilityTemplate{
			{ID: AbilityPowerStrikeID, Name: "Power Strike", Type: entities.AbilityTypeCombatAction, Effect: "damage_multiplier:2;stamina_cost:3"},
			{ID: AbilityMeditateID, Name: "Meditate", Type: entities.AbilityTypeCombatAction, Effect: "stamina_cost:1"},
			{ID: AbilityToughnessID, Name: "Toughness", Type: entities.AbilityTypePassive, Effect: "stamina+2"},
			{ID: AbilityFuryID, Name: "Fury", Type: entities.AbilityTypeCombatAction, Effect: "damage_multiplier:3;stamina_cost:50"},
		},
		Enemies: []entities.EnemyTemplate{
			{
				ID:         EnemyWolfID,
				Name:       "Grey Wolf",
				BaseHealth: 10,
				Skill:      8,
				AttackText: "The wolf snaps at you.",
				ItemDropID: Int64Ptr(ItemFangID),
				XPReward:   50,
			},
			{
				ID:         EnemyOgreID,
				Name:       "Cave Ogre",
				BaseHealth: 30,
				Skill:      10,
				AttackText: "The ogre swings its club.",
				XPReward:   150,
				SpecialAttack: &entities.SpecialAttack{
					Name:                "Club Slam",
					DamageMultiplier:    2,
					ChargeTurnsRequired: 2,
					TelegraphText:       "The ogre raises its club high above its head.",
					ExecuteText:         "The club comes crashing down!",
				},
			},
		},
		Nodes: []entities.StoryNode{
			{ID: NodeStartID, Title: "Forest Path"},
			{ID: NodeWolfID, Title: "Wolf Den", EnemyID: Int64Ptr(EnemyWolfID), VictoryNodeID: Int64Ptr(NodeVictoryID), DefeatNodeID: Int64Ptr(NodeDefeatID)},
			{ID: NodeVictoryID, Title: "Clearing"},
			{ID: NodeDefeatID, Title: "Darkness"},
			{ID: NodeOgreID, Title: "Ogre Cave", EnemyID: Int64Ptr(EnemyOgreID), VictoryNodeID: Int64Ptr(NodeVictoryID), DefeatNodeID: Int64Ptr(NodeDefeatID)},
		},
	}
}

// NewActor returns a level 1 actor standing at the start node with a sword
// equipped, two healing draughts and two combat abilities.
func NewActor(actorID string) (entities.ActorIdentity, entities.ActorProgress) {
	identity := entities.ActorIdentity{ID: actorID, Name: TestActorName, StoryID: 1}
	progress := entities.ActorProgress{
		ActorID:          actorID,
		Health:           20,
		Skill:            10,
		Luck:             5,
		Stamina:          20,
		Defense:          0,
		Level:            1,
		XP:               0,
		XPToNextLevel:    100,
		EquippedWeaponID: Int64Ptr(ItemSwordID),
		CurrentNodeID:    NodeStartID,
		Inventory:        map[int64]int{ItemPotionID: 2, ItemSwordID: 1},
		LearnedAbilities: []int64{AbilityPowerStrikeID, AbilityMeditateID},
	}
	return identity, progress
}

// Int64Ptr returns a pointer to v
func Int64Ptr(v int64) *int64 {
	return &v
}
