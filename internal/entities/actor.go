package entities

import (
	"slices"
	"sort"

	"github.com/KirkDiggler/rpg-combat/internal/effects"
)

// ActorIdentity is the immutable half of an actor
type ActorIdentity struct {
	ID      string
	Name    string
	StoryID int64
}

// ActorProgress is the mutable per-playthrough record and the system of
// record for actor state.
type ActorProgress struct {
	ActorID          string
	Health           int
	Skill            int
	Luck             int
	Stamina          int // Doubles as max health
	Defense          int
	Level            int
	XP               int
	XPToNextLevel    int
	EquippedWeaponID *int64
	EquippedArmorID  *int64
	CurrentNodeID    int64
	Inventory        map[int64]int // item ID -> quantity
	LearnedAbilities []int64
}

// HasItem reports whether at least one of the item is held
func (p *ActorProgress) HasItem(itemID int64) bool {
	return p.Inventory[itemID] > 0
}

// HasLearnedAbility reports whether the ability is learned
func (p *ActorProgress) HasLearnedAbility(abilityID int64) bool {
	return slices.Contains(p.LearnedAbilities, abilityID)
}

// EquippedItemIDs returns the equipped weapon and armor IDs that are set
func (p *ActorProgress) EquippedItemIDs() []int64 {
	var ids []int64
	if p.EquippedWeaponID != nil {
		ids = append(ids, *p.EquippedWeaponID)
	}
	if p.EquippedArmorID != nil {
		ids = append(ids, *p.EquippedArmorID)
	}
	return ids
}

// InventoryEntry is one stack in the combat view
type InventoryEntry struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

// ActorCombatView is the combat-ready snapshot of an actor for one round
type ActorCombatView struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Health           int              `json:"health"`
	Skill            int              `json:"skill"`
	Luck             int              `json:"luck"`
	Stamina          int              `json:"stamina"`
	Defense          int              `json:"defense"`
	Level            int              `json:"level"`
	XP               int              `json:"xp"`
	XPToNextLevel    int              `json:"xpToNextLevel"`
	EquippedWeaponID *int64           `json:"equippedWeaponId,omitempty"`
	EquippedArmorID  *int64           `json:"equippedArmorId,omitempty"`
	Inventory        []InventoryEntry `json:"inventory"`
	LearnedAbilities []int64          `json:"learnedAbilities"`
}

// MaxHealth is the health ceiling, which is the effective stamina
func (v *ActorCombatView) MaxHealth() int {
	return v.Stamina
}

// Hydrate merges identity and progress and applies the passive stat
// modifiers of the equipped items in a single pass. Items that are not the
// actor's equipped weapon or armor are ignored. Stats never drop below zero.
func Hydrate(identity ActorIdentity, progress ActorProgress, equipped []ItemTemplate, warn effects.WarnFunc) ActorCombatView {
	view := ActorCombatView{
		ID:               identity.ID,
		Name:             identity.Name,
		Health:           progress.Health,
		Skill:            progress.Skill,
		Luck:             progress.Luck,
		Stamina:          progress.Stamina,
		Defense:          progress.Defense,
		Level:            progress.Level,
		XP:               progress.XP,
		XPToNextLevel:    progress.XPToNextLevel,
		EquippedWeaponID: progress.EquippedWeaponID,
		EquippedArmorID:  progress.EquippedArmorID,
		Inventory:        make([]InventoryEntry, 0, len(progress.Inventory)),
		LearnedAbilities: append([]int64{}, progress.LearnedAbilities...),
	}

	equippedIDs := progress.EquippedItemIDs()
	for _, item := range equipped {
		if !slices.Contains(equippedIDs, item.ID) {
			continue
		}
		for _, mod := range effects.StatModifiers(effects.Parse(item.Effect, warn)) {
			switch mod.Stat {
			case effects.StatSkill:
				view.Skill += mod.Delta
			case effects.StatLuck:
				view.Luck += mod.Delta
			case effects.StatStamina:
				view.Stamina += mod.Delta
			case effects.StatDefense:
				view.Defense += mod.Delta
			}
		}
	}

	view.Skill = max(view.Skill, 0)
	view.Luck = max(view.Luck, 0)
	view.Stamina = max(view.Stamina, 0)
	view.Defense = max(view.Defense, 0)

	for itemID, qty := range progress.Inventory {
		if qty > 0 {
			view.Inventory = append(view.Inventory, InventoryEntry{ItemID: itemID, Quantity: qty})
		}
	}
	sort.Slice(view.Inventory, func(i, j int) bool {
		return view.Inventory[i].ItemID < view.Inventory[j].ItemID
	})

	return view
}
