package actorprogress

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-combat/internal/redis"
)

const (
	// Key pattern: actor:{actor_id}:{part}
	actorKeyPrefix  = "actor:"
	identitySuffix  = ":identity"
	progressSuffix  = ":progress"
	inventorySuffix = ":inventory"
	abilitiesSuffix = ":abilities"

	// Error messages
	errActorIDEmpty    = "actor ID cannot be empty"
	errItemIDInvalid   = "item ID must be a positive integer"
	errQuantityInvalid = "quantity must be a positive integer"
)

// removeItemScript decrements a stack only when enough is held, returning
// the remaining quantity or -1 when it is short
var removeItemScript = redis.NewScript(`
local qty = tonumber(redis.call("HGET", KEYS[1], ARGV[1]) or "0")
local n = tonumber(ARGV[2])
if qty < n then
	return -1
end
local left = redis.call("HINCRBY", KEYS[1], ARGV[1], -n)
if left <= 0 then
	redis.call("HDEL", KEYS[1], ARGV[1])
end
return left
`)

// progressRecord is the stored shape of progress. Inventory and learned
// abilities live in their own keys.
type progressRecord struct {
	Health           int    `json:"health"`
	Skill            int    `json:"skill"`
	Luck             int    `json:"luck"`
	Stamina          int    `json:"stamina"`
	Defense          int    `json:"defense"`
	Level            int    `json:"level"`
	XP               int    `json:"xp"`
	XPToNextLevel    int    `json:"xp_to_next_level"`
	EquippedWeaponID *int64 `json:"equipped_weapon_id,omitempty"`
	EquippedArmorID  *int64 `json:"equipped_armor_id,omitempty"`
	CurrentNodeID    int64  `json:"current_node_id"`
	UpdatedAt        int64  `json:"updated_at"`
}

type identityRecord struct {
	Name    string `json:"name"`
	StoryID int64  `json:"story_id"`
}

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for actor progress
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	// Use real clock if none provided
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	actorID := input.Identity.ID
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Identity.ID", actorID, vb)
	errors.ValidateRequired("Identity.Name", input.Identity.Name, vb)
	if input.Progress.ActorID != "" && input.Progress.ActorID != actorID {
		vb.InvalidField("Progress.ActorID", "must match Identity.ID")
	}
	if input.Progress.Stamina <= 0 {
		vb.Fieldf("Progress.Stamina", "must be a positive integer, got %d", input.Progress.Stamina)
	}
	if input.Progress.Health < 0 || input.Progress.Health > input.Progress.Stamina {
		vb.Fieldf("Progress.Health", "must be between 0 and stamina, got %d", input.Progress.Health)
	}
	for itemID, qty := range input.Progress.Inventory {
		if itemID <= 0 || qty < 0 {
			vb.Fieldf("Progress.Inventory", "invalid stack %d x%d", itemID, qty)
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	identity, err := json.Marshal(identityRecord{Name: input.Identity.Name, StoryID: input.Identity.StoryID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal identity")
	}

	created, err := r.client.SetNX(ctx, key(actorID, identitySuffix), identity, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create actor")
	}
	if !created {
		return nil, errors.AlreadyExistsf("actor %s already exists", actorID)
	}

	p := input.Progress
	record := progressRecord{
		Health:           p.Health,
		Skill:            p.Skill,
		Luck:             p.Luck,
		Stamina:          p.Stamina,
		Defense:          p.Defense,
		Level:            max(p.Level, 1),
		XP:               p.XP,
		XPToNextLevel:    p.XPToNextLevel,
		EquippedWeaponID: p.EquippedWeaponID,
		EquippedArmorID:  p.EquippedArmorID,
		CurrentNodeID:    p.CurrentNodeID,
		UpdatedAt:        r.clock.Now().Unix(),
	}
	if record.XPToNextLevel <= 0 {
		record.XPToNextLevel = XPPerLevel * record.Level
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal progress")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key(actorID, progressSuffix), data, 0)
	for itemID, qty := range p.Inventory {
		if qty > 0 {
			pipe.HSet(ctx, key(actorID, inventorySuffix), formatID(itemID), qty)
		}
	}
	for _, abilityID := range p.LearnedAbilities {
		pipe.SAdd(ctx, key(actorID, abilitiesSuffix), formatID(abilityID))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store progress")
	}

	return &CreateOutput{}, nil
}

func (r *redisRepository) GetSnapshot(ctx context.Context, input GetSnapshotInput) (*GetSnapshotOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	pipe := r.client.Pipeline()
	identityCmd := pipe.Get(ctx, key(input.ActorID, identitySuffix))
	progressCmd := pipe.Get(ctx, key(input.ActorID, progressSuffix))
	inventoryCmd := pipe.HGetAll(ctx, key(input.ActorID, inventorySuffix))
	abilitiesCmd := pipe.SMembers(ctx, key(input.ActorID, abilitiesSuffix))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to read actor")
	}

	identityData, err := identityCmd.Result()
	if err == redis.Nil {
		return nil, errors.NotFoundf("actor %s not found", input.ActorID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read identity")
	}
	var identity identityRecord
	if err := json.Unmarshal([]byte(identityData), &identity); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal identity")
	}

	progressData, err := progressCmd.Result()
	if err == redis.Nil {
		return nil, errors.NotFoundf("progress for actor %s not found", input.ActorID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read progress")
	}
	var record progressRecord
	if err := json.Unmarshal([]byte(progressData), &record); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal progress")
	}

	inventory := make(map[int64]int)
	for field, value := range inventoryCmd.Val() {
		itemID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt inventory entry %q", field)
		}
		qty, err := strconv.Atoi(value)
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt inventory quantity for item %d", itemID)
		}
		if qty > 0 {
			inventory[itemID] = qty
		}
	}

	abilities := make([]int64, 0, len(abilitiesCmd.Val()))
	for _, member := range abilitiesCmd.Val() {
		abilityID, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt ability entry %q", member)
		}
		abilities = append(abilities, abilityID)
	}
	sort.Slice(abilities, func(i, j int) bool { return abilities[i] < abilities[j] })

	return &GetSnapshotOutput{
		Identity: entities.ActorIdentity{
			ID:      input.ActorID,
			Name:    identity.Name,
			StoryID: identity.StoryID,
		},
		Progress: entities.ActorProgress{
			ActorID:          input.ActorID,
			Health:           record.Health,
			Skill:            record.Skill,
			Luck:             record.Luck,
			Stamina:          record.Stamina,
			Defense:          record.Defense,
			Level:            record.Level,
			XP:               record.XP,
			XPToNextLevel:    record.XPToNextLevel,
			EquippedWeaponID: record.EquippedWeaponID,
			EquippedArmorID:  record.EquippedArmorID,
			CurrentNodeID:    record.CurrentNodeID,
			Inventory:        inventory,
			LearnedAbilities: abilities,
		},
	}, nil
}

func (r *redisRepository) ApplyDelta(ctx context.Context, input ApplyDeltaInput) (*ApplyDeltaOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	d := input.Delta
	vb := errors.NewValidationBuilder()
	for field, v := range map[string]*int{
		"Health": d.Health, "Skill": d.Skill, "Luck": d.Luck, "Stamina": d.Stamina, "Defense": d.Defense,
	} {
		if v != nil && *v < 0 {
			vb.Fieldf(field, "must not be negative, got %d", *v)
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	err := r.mutate(ctx, input.ActorID, func(rec *progressRecord) error {
		setIfPresent(&rec.Health, d.Health)
		setIfPresent(&rec.Skill, d.Skill)
		setIfPresent(&rec.Luck, d.Luck)
		setIfPresent(&rec.Stamina, d.Stamina)
		setIfPresent(&rec.Defense, d.Defense)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ApplyDeltaOutput{}, nil
}

func (r *redisRepository) HasItem(ctx context.Context, input HasItemInput) (*HasItemOutput, error) {
	if err := validateItemRef(input.ActorID, input.ItemID); err != nil {
		return nil, err
	}

	qty, err := r.client.HGet(ctx, key(input.ActorID, inventorySuffix), formatID(input.ItemID)).Int()
	if err == redis.Nil {
		return &HasItemOutput{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read inventory")
	}

	return &HasItemOutput{Has: qty > 0, Quantity: qty}, nil
}

func (r *redisRepository) RemoveItem(ctx context.Context, input RemoveItemInput) (*RemoveItemOutput, error) {
	if err := validateItemRef(input.ActorID, input.ItemID); err != nil {
		return nil, err
	}
	if input.Quantity <= 0 {
		return nil, errors.InvalidArgument(errQuantityInvalid)
	}

	left, err := removeItemScript.Run(ctx, r.client,
		[]string{key(input.ActorID, inventorySuffix)},
		formatID(input.ItemID), input.Quantity,
	).Int()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to remove item")
	}
	if left < 0 {
		return nil, errors.FailedPreconditionf("item %d is not in the inventory", input.ItemID).
			WithReason(errors.ReasonItemNotOwned)
	}

	return &RemoveItemOutput{Remaining: left}, nil
}

func (r *redisRepository) AddItem(ctx context.Context, input AddItemInput) (*AddItemOutput, error) {
	if err := validateItemRef(input.ActorID, input.ItemID); err != nil {
		return nil, err
	}
	if input.Quantity <= 0 {
		return nil, errors.InvalidArgument(errQuantityInvalid)
	}

	if err := r.requireActor(ctx, input.ActorID); err != nil {
		return nil, err
	}

	qty, err := r.client.HIncrBy(ctx, key(input.ActorID, inventorySuffix), formatID(input.ItemID), int64(input.Quantity)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to add item")
	}

	return &AddItemOutput{Quantity: int(qty)}, nil
}

func (r *redisRepository) HasLearnedAbility(ctx context.Context, input HasLearnedAbilityInput) (*HasLearnedAbilityOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}
	if input.AbilityID <= 0 {
		return nil, errors.InvalidArgument("ability ID must be a positive integer")
	}

	learned, err := r.client.SIsMember(ctx, key(input.ActorID, abilitiesSuffix), formatID(input.AbilityID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read abilities")
	}

	return &HasLearnedAbilityOutput{Learned: learned}, nil
}

func (r *redisRepository) GrantXP(ctx context.Context, input GrantXPInput) (*GrantXPOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}
	if input.Amount < 0 {
		return nil, errors.InvalidArgumentf("xp amount must not be negative, got %d", input.Amount)
	}

	out := &GrantXPOutput{}
	err := r.mutate(ctx, input.ActorID, func(rec *progressRecord) error {
		next, messages := applyXP(levelState{
			Level:         rec.Level,
			XP:            rec.XP,
			XPToNextLevel: rec.XPToNextLevel,
			Skill:         rec.Skill,
			Stamina:       rec.Stamina,
			Health:        rec.Health,
		}, input.Amount)

		rec.Level = next.Level
		rec.XP = next.XP
		rec.XPToNextLevel = next.XPToNextLevel
		rec.Skill = next.Skill
		rec.Stamina = next.Stamina
		rec.Health = next.Health

		out.LeveledUp = len(messages) > 0
		out.Level = next.Level
		out.Messages = messages
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *redisRepository) AdvanceToNode(ctx context.Context, input AdvanceToNodeInput) (*AdvanceToNodeOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}
	if input.NodeID <= 0 {
		return nil, errors.InvalidArgumentf("node ID must be a positive integer, got %d", input.NodeID)
	}

	err := r.mutate(ctx, input.ActorID, func(rec *progressRecord) error {
		rec.CurrentNodeID = input.NodeID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AdvanceToNodeOutput{}, nil
}

// mutate is an optimistic read-modify-write of the progress record
func (r *redisRepository) mutate(ctx context.Context, actorID string, fn func(*progressRecord) error) error {
	progressKey := key(actorID, progressSuffix)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, progressKey).Result()
		if err == redis.Nil {
			return errors.NotFoundf("actor %s not found", actorID)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to read progress")
		}

		var rec progressRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return errors.Wrapf(err, "failed to unmarshal progress")
		}

		if err := fn(&rec); err != nil {
			return err
		}
		rec.UpdatedAt = r.clock.Now().Unix()

		next, err := json.Marshal(rec)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal progress")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, progressKey, next, 0)
			return nil
		})
		return err
	}, progressKey)

	if err == redis.TxFailedErr {
		return errors.Abortedf("progress for actor %s changed during update", actorID)
	}
	if err != nil {
		var e *errors.Error
		if errors.As(err, &e) {
			return err
		}
		return errors.Wrapf(err, "failed to update progress")
	}
	return nil
}

func (r *redisRepository) requireActor(ctx context.Context, actorID string) error {
	n, err := r.client.Exists(ctx, key(actorID, progressSuffix)).Result()
	if err != nil {
		return errors.Wrapf(err, "failed to check actor")
	}
	if n == 0 {
		return errors.NotFoundf("actor %s not found", actorID)
	}
	return nil
}

func validateItemRef(actorID string, itemID int64) error {
	if actorID == "" {
		return errors.InvalidArgument(errActorIDEmpty)
	}
	if itemID <= 0 {
		return errors.InvalidArgument(errItemIDInvalid)
	}
	return nil
}

func setIfPresent(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func key(actorID, suffix string) string {
	return actorKeyPrefix + actorID + suffix
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
