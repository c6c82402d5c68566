package content

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/KirkDiggler/rpg-combat/internal/effects"
	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// Catalog is a full set of reference data, as loaded from a JSON file
type Catalog struct {
	Enemies   []entities.EnemyTemplate   `json:"enemies"`
	Items     []entities.ItemTemplate    `json:"items"`
	Abilities []entities.AbilityTemplate `json:"abilities"`
	Nodes     []entities.StoryNode       `json:"nodes"`
}

// LoadCatalog decodes a catalog and validates it
func LoadCatalog(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode catalog")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalogFile reads a catalog from disk
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path) // #nosec G304 -- operator supplied path
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open catalog %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadCatalog(f)
}

// Validate checks IDs are unique and positive, references resolve, and
// enemy stats and effect strings are usable. Effect tokens that would be
// ignored at runtime are reported here.
func (c *Catalog) Validate() error {
	vb := errors.NewValidationBuilder()

	items := make(map[int64]bool, len(c.Items))
	for i, item := range c.Items {
		field := fmt.Sprintf("items[%d]", i)
		checkID(vb, field, item.ID, items)
		errors.ValidateRequired(field+".name", item.Name, vb)
		errors.ValidateEnum(field+".type", string(item.Type), []string{
			string(entities.ItemTypeWeapon),
			string(entities.ItemTypeArmor),
			string(entities.ItemTypeConsumable),
			string(entities.ItemTypeMisc),
		}, vb)
		checkEffect(vb, field+".effect", item.Effect)
	}

	abilities := make(map[int64]bool, len(c.Abilities))
	for i, ability := range c.Abilities {
		field := fmt.Sprintf("abilities[%d]", i)
		checkID(vb, field, ability.ID, abilities)
		errors.ValidateRequired(field+".name", ability.Name, vb)
		errors.ValidateRequired(field+".type", string(ability.Type), vb)
		checkEffect(vb, field+".effect", ability.Effect)
	}

	enemies := make(map[int64]bool, len(c.Enemies))
	for i, enemy := range c.Enemies {
		field := fmt.Sprintf("enemies[%d]", i)
		checkID(vb, field, enemy.ID, enemies)
		errors.ValidateRequired(field+".name", enemy.Name, vb)
		if enemy.BaseHealth <= 0 {
			vb.Fieldf(field+".base_health", "must be a positive integer, got %d", enemy.BaseHealth)
		}
		if enemy.Skill < 0 {
			vb.Fieldf(field+".skill", "must not be negative, got %d", enemy.Skill)
		}
		if enemy.XPReward < 0 {
			vb.Fieldf(field+".xp_reward", "must not be negative, got %d", enemy.XPReward)
		}
		if enemy.ItemDropID != nil && !items[*enemy.ItemDropID] {
			vb.Fieldf(field+".item_drop_id", "unknown item %d", *enemy.ItemDropID)
		}
		if sa := enemy.SpecialAttack; sa != nil {
			if sa.ChargeTurnsRequired <= 0 {
				vb.Fieldf(field+".special_attack.charge_turns_required", "must be a positive integer, got %d", sa.ChargeTurnsRequired)
			}
			if sa.DamageMultiplier <= 0 {
				vb.Fieldf(field+".special_attack.damage_multiplier", "must be positive, got %g", sa.DamageMultiplier)
			}
		}
	}

	nodes := make(map[int64]bool, len(c.Nodes))
	for i, node := range c.Nodes {
		checkID(vb, fmt.Sprintf("nodes[%d]", i), node.ID, nodes)
	}
	for i, node := range c.Nodes {
		field := fmt.Sprintf("nodes[%d]", i)
		if node.EnemyID == nil {
			continue
		}
		if !enemies[*node.EnemyID] {
			vb.Fieldf(field+".enemy_id", "unknown enemy %d", *node.EnemyID)
		}
		if node.VictoryNodeID == nil || !nodes[*node.VictoryNodeID] {
			vb.Field(field+".victory_node_id", "enemy nodes need an existing victory node")
		}
		if node.DefeatNodeID == nil || !nodes[*node.DefeatNodeID] {
			vb.Field(field+".defeat_node_id", "enemy nodes need an existing defeat node")
		}
	}

	return vb.Build()
}

func checkID(vb *errors.ValidationBuilder, field string, id int64, seen map[int64]bool) {
	if id <= 0 {
		vb.Fieldf(field+".id", "must be a positive integer, got %d", id)
		return
	}
	if seen[id] {
		vb.Fieldf(field+".id", "duplicate id %d", id)
		return
	}
	seen[id] = true
}

func checkEffect(vb *errors.ValidationBuilder, field, effect string) {
	effects.Parse(effect, func(token, reason string) {
		vb.Fieldf(field, "%q: %s", token, reason)
	})
}
