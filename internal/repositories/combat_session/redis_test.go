package combatsession_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-combat/internal/redis"
	combatsession "github.com/KirkDiggler/rpg-combat/internal/repositories/combat_session"
	"github.com/KirkDiggler/rpg-combat/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	client  redisclient.Client
	mr      *miniredis.Miniredis
	cleanup func()
	clock   *clock.Fixed
	repo    combatsession.Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client, s.mr, s.cleanup = testutils.CreateTestRedisServer(s.T())
	s.clock = clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	repo, err := combatsession.NewRedisRepository(&combatsession.Config{
		Client:      s.client,
		Clock:       s.clock,
		IDGenerator: idgen.NewSequential("cs"),
		LockTokens:  idgen.NewSequential("lock"),
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) create(actorID string) *entities.CombatSession {
	out, err := s.repo.Create(s.ctx, combatsession.CreateInput{
		ActorID:         actorID,
		EnemyTemplateID: 3,
		NodeID:          12,
		EnemyHealth:     10,
	})
	s.Require().NoError(err)
	return out.Session
}

func (s *RedisRepositoryTestSuite) TestNewRedisRepositoryValidatesConfig() {
	_, err := combatsession.NewRedisRepository(nil)
	s.Error(err)

	_, err = combatsession.NewRedisRepository(&combatsession.Config{Client: s.client})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Clock")
	s.Contains(err.Error(), "IDGenerator")
}

func (s *RedisRepositoryTestSuite) TestCreate() {
	session := s.create("actor-1")

	s.Equal("cs_1", session.ID)
	s.Equal("actor-1", session.ActorID)
	s.Equal(int64(3), session.EnemyTemplateID)
	s.Equal(int64(12), session.NodeID)
	s.Equal(10, session.EnemyCurrentHealth)
	s.Equal(0, session.EnemyChargeTurnsCurrent)
	s.False(session.ActorIsDefending)
	s.Equal(int64(1), session.Version)
	s.Equal(s.clock.Now(), session.CreatedAt)
	s.True(s.mr.Exists("combat_session:actor:actor-1"))
}

func (s *RedisRepositoryTestSuite) TestCreateRejectsSecondSession() {
	first := s.create("actor-1")
	first.EnemyCurrentHealth = 4
	_, err := s.repo.Update(s.ctx, combatsession.UpdateInput{Session: first})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, combatsession.CreateInput{
		ActorID:         "actor-1",
		EnemyTemplateID: 9,
		EnemyHealth:     50,
	})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
	s.True(errors.HasReason(err, errors.ReasonSessionAlreadyActive))

	got, err := s.repo.GetByActor(s.ctx, combatsession.GetByActorInput{ActorID: "actor-1"})
	s.Require().NoError(err)
	s.Equal(first.ID, got.Session.ID)
	s.Equal(int64(3), got.Session.EnemyTemplateID)
	s.Equal(4, got.Session.EnemyCurrentHealth)
}

func (s *RedisRepositoryTestSuite) TestCreateValidation() {
	_, err := s.repo.Create(s.ctx, combatsession.CreateInput{EnemyHealth: -1})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "ActorID")
	s.Contains(err.Error(), "EnemyTemplateID")
	s.Contains(err.Error(), "EnemyHealth")
}

func (s *RedisRepositoryTestSuite) TestGetByActorNotFound() {
	_, err := s.repo.GetByActor(s.ctx, combatsession.GetByActorInput{ActorID: "nobody"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	_, err = s.repo.GetByActor(s.ctx, combatsession.GetByActorInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestUpdateBumpsVersion() {
	session := s.create("actor-1")
	s.clock.Advance(time.Minute)

	session.EnemyCurrentHealth = 6
	session.EnemyChargeTurnsCurrent = 1
	session.ActorIsDefending = true
	out, err := s.repo.Update(s.ctx, combatsession.UpdateInput{Session: session})
	s.Require().NoError(err)

	s.Equal(int64(2), out.Session.Version)
	s.Equal(s.clock.Now(), out.Session.LastActionTime)

	got, err := s.repo.GetByActor(s.ctx, combatsession.GetByActorInput{ActorID: "actor-1"})
	s.Require().NoError(err)
	s.Equal(6, got.Session.EnemyCurrentHealth)
	s.Equal(1, got.Session.EnemyChargeTurnsCurrent)
	s.True(got.Session.ActorIsDefending)
	s.Equal(int64(2), got.Session.Version)
}

func (s *RedisRepositoryTestSuite) TestUpdateRejectsStaleVersion() {
	session := s.create("actor-1")
	stale := *session

	session.EnemyCurrentHealth = 6
	_, err := s.repo.Update(s.ctx, combatsession.UpdateInput{Session: session})
	s.Require().NoError(err)

	stale.EnemyCurrentHealth = 9
	_, err = s.repo.Update(s.ctx, combatsession.UpdateInput{Session: &stale})
	s.Require().Error(err)
	s.True(errors.IsAborted(err))
	s.True(errors.HasReason(err, errors.ReasonStaleSession))

	got, err := s.repo.GetByActor(s.ctx, combatsession.GetByActorInput{ActorID: "actor-1"})
	s.Require().NoError(err)
	s.Equal(6, got.Session.EnemyCurrentHealth)
}

func (s *RedisRepositoryTestSuite) TestUpdateRejectsReplacedSession() {
	session := s.create("actor-1")
	_, err := s.repo.Delete(s.ctx, combatsession.DeleteInput{ActorID: "actor-1"})
	s.Require().NoError(err)
	s.create("actor-1")

	_, err = s.repo.Update(s.ctx, combatsession.UpdateInput{Session: session})
	s.Require().Error(err)
	s.True(errors.IsAborted(err))
}

func (s *RedisRepositoryTestSuite) TestUpdateMissingSession() {
	session := s.create("actor-1")
	_, err := s.repo.Delete(s.ctx, combatsession.DeleteInput{ActorID: "actor-1"})
	s.Require().NoError(err)

	_, err = s.repo.Update(s.ctx, combatsession.UpdateInput{Session: session})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdateValidation() {
	_, err := s.repo.Update(s.ctx, combatsession.UpdateInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Update(s.ctx, combatsession.UpdateInput{Session: &entities.CombatSession{ID: "cs_1", ActorID: "a", EnemyCurrentHealth: -1}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestDeleteIsIdempotent() {
	s.create("actor-1")

	out, err := s.repo.Delete(s.ctx, combatsession.DeleteInput{ActorID: "actor-1"})
	s.Require().NoError(err)
	s.True(out.Deleted)

	out, err = s.repo.Delete(s.ctx, combatsession.DeleteInput{ActorID: "actor-1"})
	s.Require().NoError(err)
	s.False(out.Deleted)
}

func (s *RedisRepositoryTestSuite) TestSessionsAreIsolatedPerActor() {
	s.create("actor-1")
	s.create("actor-2")

	_, err := s.repo.Delete(s.ctx, combatsession.DeleteInput{ActorID: "actor-1"})
	s.Require().NoError(err)

	_, err = s.repo.GetByActor(s.ctx, combatsession.GetByActorInput{ActorID: "actor-2"})
	s.NoError(err)
}

func (s *RedisRepositoryTestSuite) TestRoundLock() {
	out, err := s.repo.AcquireRoundLock(s.ctx, combatsession.AcquireRoundLockInput{ActorID: "actor-1", TTL: time.Second})
	s.Require().NoError(err)

	_, err = s.repo.AcquireRoundLock(s.ctx, combatsession.AcquireRoundLockInput{ActorID: "actor-1", TTL: time.Second})
	s.Require().Error(err)
	s.True(errors.IsAborted(err))
	s.True(errors.HasReason(err, errors.ReasonRoundInProgress))

	// Other actors are unaffected
	other, err := s.repo.AcquireRoundLock(s.ctx, combatsession.AcquireRoundLockInput{ActorID: "actor-2"})
	s.Require().NoError(err)
	s.Require().NoError(other.Lock.Release(s.ctx))

	s.Require().NoError(out.Lock.Release(s.ctx))
	again, err := s.repo.AcquireRoundLock(s.ctx, combatsession.AcquireRoundLockInput{ActorID: "actor-1"})
	s.Require().NoError(err)
	s.Require().NoError(again.Lock.Release(s.ctx))
}

func (s *RedisRepositoryTestSuite) TestExpiredLockIsNotReleasedByOldHolder() {
	first, err := s.repo.AcquireRoundLock(s.ctx, combatsession.AcquireRoundLockInput{ActorID: "actor-1", TTL: time.Second})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Second)

	second, err := s.repo.AcquireRoundLock(s.ctx, combatsession.AcquireRoundLockInput{ActorID: "actor-1", TTL: time.Minute})
	s.Require().NoError(err)

	// The first holder's release must not free the second holder's lock
	s.Require().NoError(first.Lock.Release(s.ctx))
	_, err = s.repo.AcquireRoundLock(s.ctx, combatsession.AcquireRoundLockInput{ActorID: "actor-1"})
	s.True(errors.IsAborted(err))

	s.Require().NoError(second.Lock.Release(s.ctx))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
