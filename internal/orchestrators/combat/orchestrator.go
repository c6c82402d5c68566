// Package combat implements the combat orchestrator: session lifecycle and
// resolution of one round per player action
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/KirkDiggler/rpg-combat/internal/orchestrators/combat Service

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/logger"
	actorprogress "github.com/KirkDiggler/rpg-combat/internal/repositories/actor_progress"
	combatsession "github.com/KirkDiggler/rpg-combat/internal/repositories/combat_session"
	"github.com/KirkDiggler/rpg-combat/internal/repositories/content"
)

// DefaultRoundLockTTL bounds how long a crashed round can block the actor
const DefaultRoundLockTTL = 10 * time.Second

const errNotInCombat = "not currently in combat"

// Service defines the interface for combat operations
type Service interface {
	// StartCombat creates a session for an enemy-bound node and moves the actor there
	StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error)

	// GetCombatState returns the actor and enemy snapshots of an ongoing fight
	GetCombatState(ctx context.Context, input *GetCombatStateInput) (*GetCombatStateOutput, error)

	// ResolveRound applies one player action and, if the turn was consumed
	// and the enemy survived, the enemy's response
	ResolveRound(ctx context.Context, input *ResolveRoundInput) (*ResolveRoundOutput, error)
}

// Config holds the dependencies for the combat orchestrator
type Config struct {
	SessionRepo  combatsession.Repository
	ProgressRepo actorprogress.Repository
	ContentRepo  content.Repository
	DiceRoller   dice.Roller
	EventBus     events.EventBus // Optional
	Logger       *logrus.Logger  // Optional, defaults to the standard logger
	RoundLockTTL time.Duration   // Optional, defaults to DefaultRoundLockTTL
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.ProgressRepo == nil {
		vb.RequiredField("ProgressRepo")
	}
	if c.ContentRepo == nil {
		vb.RequiredField("ContentRepo")
	}
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}
	if c.RoundLockTTL < 0 {
		vb.Fieldf("RoundLockTTL", "must not be negative, got %s", c.RoundLockTTL)
	}

	return vb.Build()
}

type orchestrator struct {
	sessionRepo  combatsession.Repository
	progressRepo actorprogress.Repository
	contentRepo  content.Repository
	roller       dice.Roller
	eventBus     events.EventBus
	log          *logrus.Logger
	lockTTL      time.Duration
}

// NewOrchestrator creates a new combat orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	ttl := cfg.RoundLockTTL
	if ttl == 0 {
		ttl = DefaultRoundLockTTL
	}

	return &orchestrator{
		sessionRepo:  cfg.SessionRepo,
		progressRepo: cfg.ProgressRepo,
		contentRepo:  cfg.ContentRepo,
		roller:       cfg.DiceRoller,
		eventBus:     cfg.EventBus,
		log:          log,
		lockTTL:      ttl,
	}, nil
}

// StartCombat enters an enemy-bound node. An actor already in combat is
// rejected without touching the existing session.
func (o *orchestrator) StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("actorId", input.ActorID, vb)
	errors.ValidatePositive("nodeId", &input.NodeID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	ctx, log := o.withLogger(ctx, logrus.Fields{"actor_id": input.ActorID, "node_id": input.NodeID})

	nodeOut, err := o.contentRepo.GetNode(ctx, content.GetNodeInput{ID: input.NodeID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load node %d", input.NodeID)
	}
	node := nodeOut.Node
	if !node.IsEnemyNode() {
		return nil, errors.FailedPreconditionf("node %d has no enemy", node.ID).
			WithReason(errors.ReasonNotEnemyNode)
	}

	enemyOut, err := o.contentRepo.GetEnemyTemplate(ctx, content.GetEnemyTemplateInput{ID: *node.EnemyID})
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInternal, "node %d references a missing enemy template", node.ID)
	}
	template := enemyOut.Template

	actor, err := o.progressRepo.GetSnapshot(ctx, actorprogress.GetSnapshotInput{ActorID: input.ActorID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load actor %s", input.ActorID)
	}

	created, err := o.sessionRepo.Create(ctx, combatsession.CreateInput{
		ActorID:         input.ActorID,
		EnemyTemplateID: template.ID,
		NodeID:          node.ID,
		EnemyHealth:     template.BaseHealth,
	})
	if err != nil {
		return nil, err
	}
	session := created.Session

	if _, err := o.progressRepo.AdvanceToNode(ctx, actorprogress.AdvanceToNodeInput{
		ActorID: input.ActorID,
		NodeID:  node.ID,
	}); err != nil {
		o.teardown(ctx, input.ActorID)
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to move actor into combat")
	}

	view := o.hydrate(ctx, actor.Identity, actor.Progress)

	log.WithFields(logrus.Fields{"session_id": session.ID, "enemy_id": template.ID}).Info("combat started")
	o.publish(ctx, EventCombatStarted, actorEntity(input.ActorID), enemyEntity(session), map[string]interface{}{
		EventKeySessionID: session.ID,
		EventKeyNodeID:    node.ID,
	})

	return &StartCombatOutput{
		SessionID: session.ID,
		State: &entities.CombatState{
			Character: view,
			Enemy:     entities.NewEnemySnapshot(template, session),
		},
	}, nil
}

// GetCombatState reads the ongoing fight
func (o *orchestrator) GetCombatState(ctx context.Context, input *GetCombatStateInput) (*GetCombatStateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}

	ctx, _ = o.withLogger(ctx, logrus.Fields{"actor_id": input.ActorID})

	session, err := o.activeSession(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	template, err := o.enemyTemplate(ctx, session)
	if err != nil {
		return nil, err
	}

	actor, err := o.progressRepo.GetSnapshot(ctx, actorprogress.GetSnapshotInput{ActorID: input.ActorID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load actor %s", input.ActorID)
	}

	return &GetCombatStateOutput{
		State: &entities.CombatState{
			Character: o.hydrate(ctx, actor.Identity, actor.Progress),
			Enemy:     entities.NewEnemySnapshot(template, session),
		},
	}, nil
}

// ResolveRound resolves one full round under the actor's round lock
func (o *orchestrator) ResolveRound(ctx context.Context, input *ResolveRoundInput) (*ResolveRoundOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ActorID == "" {
		return nil, errors.InvalidArgument("actor ID is required")
	}
	if err := input.Action.Validate(); err != nil {
		return nil, err
	}

	ctx, log := o.withLogger(ctx, logrus.Fields{
		"actor_id": input.ActorID,
		"action":   input.Action.Action,
	})

	lockOut, err := o.sessionRepo.AcquireRoundLock(ctx, combatsession.AcquireRoundLockInput{
		ActorID: input.ActorID,
		TTL:     o.lockTTL,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		// A cancelled request must still free the actor for the next round
		if err := lockOut.Lock.Release(context.WithoutCancel(ctx)); err != nil {
			log.WithError(err).Warn("failed to release round lock")
		}
	}()

	session, err := o.activeSession(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}
	ctx, log = logger.WithFields(ctx, logrus.Fields{"session_id": session.ID})

	template, err := o.enemyTemplate(ctx, session)
	if err != nil {
		return nil, err
	}

	actor, err := o.progressRepo.GetSnapshot(ctx, actorprogress.GetSnapshotInput{ActorID: input.ActorID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load actor %s", input.ActorID)
	}

	equipped := o.equipment(ctx, actor.Progress)
	r := &round{
		o:        o,
		actorID:  input.ActorID,
		session:  session,
		enemy:    template,
		progress: actor.Progress,
		view:     entities.Hydrate(actor.Identity, actor.Progress, equipped, warnEffect(ctx)),
		weapon:   weaponEffects(ctx, actor.Progress, equipped),
	}

	outcome, err := r.resolve(ctx, input.Action)
	if err != nil {
		if r.mutated && !errors.IsInternal(err) {
			err = errors.WrapWithCode(err, errors.CodeInternal, "round failed after state was persisted")
		}
		log.WithError(err).Error("round failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"combat_over":  outcome.IsCombatOver,
		"enemy_health": r.session.EnemyCurrentHealth,
		"actor_health": outcome.Character.Health,
	}).Info("round resolved")

	return &ResolveRoundOutput{Outcome: outcome}, nil
}

// activeSession loads the actor's session, reporting absence as NoActiveSession
func (o *orchestrator) activeSession(ctx context.Context, actorID string) (*entities.CombatSession, error) {
	out, err := o.sessionRepo.GetByActor(ctx, combatsession.GetByActorInput{ActorID: actorID})
	if errors.IsNotFound(err) {
		return nil, errors.WrapWithCode(err, errors.CodeFailedPrecondition, errNotInCombat).
			WithReason(errors.ReasonNoActiveSession)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load session")
	}
	return out.Session, nil
}

// enemyTemplate loads the session's enemy. A session pointing at a deleted
// template is torn down.
func (o *orchestrator) enemyTemplate(ctx context.Context, session *entities.CombatSession) (*entities.EnemyTemplate, error) {
	out, err := o.contentRepo.GetEnemyTemplate(ctx, content.GetEnemyTemplateInput{ID: session.EnemyTemplateID})
	if errors.IsNotFound(err) {
		o.teardown(ctx, session.ActorID)
		return nil, errors.WrapWithCodef(err, errors.CodeInternal,
			"session %s references missing enemy template %d", session.ID, session.EnemyTemplateID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load enemy template %d", session.EnemyTemplateID)
	}
	return out.Template, nil
}

// teardown deletes a session after an integrity failure
func (o *orchestrator) teardown(ctx context.Context, actorID string) {
	log := logger.FromContext(ctx)
	if _, err := o.sessionRepo.Delete(ctx, combatsession.DeleteInput{ActorID: actorID}); err != nil {
		log.WithError(err).Error("failed to tear down corrupt session")
		return
	}
	log.Warn("tore down corrupt session")
}

func (o *orchestrator) withLogger(ctx context.Context, fields logrus.Fields) (context.Context, *logrus.Entry) {
	entry := o.log.WithFields(fields)
	return logger.WithEntry(ctx, entry), entry
}
