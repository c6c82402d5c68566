package entities

// ItemType classifies item templates
type ItemType string

// Item types
const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeArmor      ItemType = "armor"
	ItemTypeConsumable ItemType = "consumable"
	ItemTypeMisc       ItemType = "misc"
)

// AbilityType classifies ability templates
type AbilityType string

// Ability types. Only combat actions may be used as a round action.
const (
	AbilityTypeCombatAction AbilityType = "combat_action"
	AbilityTypePassive      AbilityType = "passive"
	AbilityTypeUtility      AbilityType = "utility"
)

// SpecialAttack is an enemy attack that is telegraphed for a number of
// rounds before it lands.
type SpecialAttack struct {
	Name                string  `json:"name"`
	DamageMultiplier    float64 `json:"damage_multiplier"`
	ChargeTurnsRequired int     `json:"charge_turns_required"`
	TelegraphText       string  `json:"telegraph_text"`
	ExecuteText         string  `json:"execute_text"`
}

// EnemyTemplate is immutable reference data for a hostile
type EnemyTemplate struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	BaseHealth    int            `json:"base_health"`
	Skill         int            `json:"skill"`
	AttackText    string         `json:"attack_text"`
	ItemDropID    *int64         `json:"item_drop_id,omitempty"`
	XPReward      int            `json:"xp_reward"`
	SpecialAttack *SpecialAttack `json:"special_attack,omitempty"`
}

// HasSpecialAttack reports whether the template carries a chargeable special attack
func (t *EnemyTemplate) HasSpecialAttack() bool {
	return t.SpecialAttack != nil && t.SpecialAttack.ChargeTurnsRequired > 0
}

// ChargeTurnsRequired returns the special attack's charge length, 0 without one
func (t *EnemyTemplate) ChargeTurnsRequired() int {
	if !t.HasSpecialAttack() {
		return 0
	}
	return t.SpecialAttack.ChargeTurnsRequired
}

// ItemTemplate is immutable reference data for an item
type ItemTemplate struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Type   ItemType `json:"type"`
	Effect string   `json:"effect"` // e.g. "damage+3" or "heal+10" or "skill+1;luck-1"
	Usable bool     `json:"usable"`
}

// AbilityTemplate is immutable reference data for a learnable ability
type AbilityTemplate struct {
	ID     int64       `json:"id"`
	Name   string      `json:"name"`
	Type   AbilityType `json:"type"`
	Effect string      `json:"effect"` // e.g. "damage_multiplier:1.5;stamina_cost:3"
}

// IsCombatUsable reports whether the ability can be spent as a round action
func (a *AbilityTemplate) IsCombatUsable() bool {
	return a.Type == AbilityTypeCombatAction
}

// StoryNode is the slice of the story graph combat needs: which enemy a node
// is bound to and where victory and defeat lead.
type StoryNode struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	EnemyID       *int64 `json:"enemy_id,omitempty"`
	VictoryNodeID *int64 `json:"victory_node_id,omitempty"`
	DefeatNodeID  *int64 `json:"defeat_node_id,omitempty"`
}

// IsEnemyNode reports whether entering the node starts a fight
func (n *StoryNode) IsEnemyNode() bool {
	return n.EnemyID != nil
}
