package combatsession

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-combat/internal/redis"
)

const (
	// Key pattern: combat_session:actor:{actor_id}
	sessionKeyPrefix = "combat_session:actor:"
	// Key pattern: combat_session:lock:{actor_id}
	lockKeyPrefix  = "combat_session:lock:"
	defaultLockTTL = 10 * time.Second

	// Error messages
	errSessionNil     = "session cannot be nil"
	errActorIDEmpty   = "actor ID cannot be empty"
	errSessionIDEmpty = "session ID cannot be empty"
	errNotInCombat    = "not currently in combat"
)

// releaseLockScript deletes the lock only if it still holds our token
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Config holds the configuration for the Redis repository
type Config struct {
	Client      redisclient.Client
	Clock       clock.Clock
	IDGenerator idgen.Generator // Session IDs
	LockTokens  idgen.Generator // Round lock tokens, defaults to UUIDs
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

type redisRepository struct {
	client     redisclient.Client
	clock      clock.Clock
	idGen      idgen.Generator
	lockTokens idgen.Generator
}

// NewRedisRepository creates a new Redis repository for combat sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	tokens := cfg.LockTokens
	if tokens == nil {
		tokens = idgen.NewUUID("")
	}

	return &redisRepository{
		client:     cfg.Client,
		clock:      cfg.Clock,
		idGen:      cfg.IDGenerator,
		lockTokens: tokens,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a new session with SETNX so a concurrent or repeated
// create can never overwrite a live session
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ActorID", input.ActorID, vb)
	if input.EnemyTemplateID <= 0 {
		vb.Fieldf("EnemyTemplateID", "must be a positive integer, got %d", input.EnemyTemplateID)
	}
	if input.EnemyHealth < 0 {
		vb.Fieldf("EnemyHealth", "must not be negative, got %d", input.EnemyHealth)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	session := &entities.CombatSession{
		ID:                      r.idGen.Generate(),
		ActorID:                 input.ActorID,
		EnemyTemplateID:         input.EnemyTemplateID,
		NodeID:                  input.NodeID,
		EnemyCurrentHealth:      input.EnemyHealth,
		EnemyChargeTurnsCurrent: 0,
		ActorIsDefending:        false,
		LastActionTime:          now,
		Version:                 1,
		CreatedAt:               now,
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	created, err := r.client.SetNX(ctx, sessionKey(input.ActorID), data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create session")
	}
	if !created {
		return nil, errors.AlreadyExistsf("actor %s is already in combat", input.ActorID).
			WithReason(errors.ReasonSessionAlreadyActive)
	}

	return &CreateOutput{Session: session}, nil
}

// GetByActor retrieves the actor's session
func (r *redisRepository) GetByActor(ctx context.Context, input GetByActorInput) (*GetByActorOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	session, err := r.load(ctx, r.client, input.ActorID)
	if err != nil {
		return nil, err
	}

	return &GetByActorOutput{Session: session}, nil
}

// Update writes the session under WATCH, comparing versions first
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}
	if input.Session.EnemyCurrentHealth < 0 {
		return nil, errors.InvalidArgumentf("enemy health must not be negative, got %d", input.Session.EnemyCurrentHealth)
	}

	key := sessionKey(input.Session.ActorID)
	var updated *entities.CombatSession

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := r.load(ctx, tx, input.Session.ActorID)
		if err != nil {
			return err
		}
		if current.ID != input.Session.ID || current.Version != input.Session.Version {
			return errors.Abortedf("session %s changed since it was read", input.Session.ID).
				WithReason(errors.ReasonStaleSession)
		}

		next := *input.Session
		next.Version = current.Version + 1
		next.LastActionTime = r.clock.Now()
		next.CreatedAt = current.CreatedAt

		data, err := json.Marshal(&next)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal session")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = &next
		return nil
	}, key)

	if err == redis.TxFailedErr {
		return nil, errors.Abortedf("session %s changed since it was read", input.Session.ID).
			WithReason(errors.ReasonStaleSession)
	}
	if err != nil {
		if _, ok := asError(err); ok {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to update session")
	}

	return &UpdateOutput{Session: updated}, nil
}

// Delete removes the actor's session
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	n, err := r.client.Del(ctx, sessionKey(input.ActorID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session")
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}

// AcquireRoundLock takes the per-actor round lock with SET NX PX
func (r *redisRepository) AcquireRoundLock(ctx context.Context, input AcquireRoundLockInput) (*AcquireRoundLockOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}
	if input.TTL < 0 {
		return nil, errors.InvalidArgumentf("lock TTL must not be negative, got %s", input.TTL)
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = defaultLockTTL
	}

	key := lockKeyPrefix + input.ActorID
	token := r.lockTokens.Generate()

	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to acquire round lock")
	}
	if !ok {
		return nil, errors.Abortedf("a round is already being resolved for actor %s", input.ActorID).
			WithReason(errors.ReasonRoundInProgress)
	}

	return &AcquireRoundLockOutput{Lock: &roundLock{client: r.client, key: key, token: token}}, nil
}

type roundLock struct {
	client redisclient.Client
	key    string
	token  string
}

func (l *roundLock) Release(ctx context.Context) error {
	if err := releaseLockScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return errors.Wrapf(err, "failed to release round lock")
	}
	return nil
}

func (r *redisRepository) load(ctx context.Context, c getter, actorID string) (*entities.CombatSession, error) {
	result, err := c.Get(ctx, sessionKey(actorID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound(errNotInCombat).WithMeta("actor_id", actorID)
		}
		return nil, errors.Wrapf(err, "failed to get session")
	}

	var session entities.CombatSession
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	return &session, nil
}

// getter is satisfied by both the client and a WATCH transaction
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func sessionKey(actorID string) string {
	return sessionKeyPrefix + actorID
}

func asError(err error) (*errors.Error, bool) {
	var e *errors.Error
	ok := errors.As(err, &e)
	return e, ok
}
