package combat

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/rpg-combat/internal/effects"
	"github.com/KirkDiggler/rpg-combat/internal/engine"
	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/logger"
	actorprogress "github.com/KirkDiggler/rpg-combat/internal/repositories/actor_progress"
	combatsession "github.com/KirkDiggler/rpg-combat/internal/repositories/combat_session"
	"github.com/KirkDiggler/rpg-combat/internal/repositories/content"
)

// round carries the state of one resolution cycle. The session and the
// progress record are kept in step with what has been persisted.
type round struct {
	o        *orchestrator
	actorID  string
	session  *entities.CombatSession
	enemy    *entities.EnemyTemplate
	progress entities.ActorProgress
	view     entities.ActorCombatView
	weapon   []effects.Effect

	actions []entities.CombatActionResult

	// mutated is set once any store write for this round has succeeded
	mutated bool
}

func (r *round) resolve(ctx context.Context, action entities.CombatActionRequest) (*entities.RoundOutcome, error) {
	consumed, err := r.playerAction(ctx, action)
	if err != nil {
		return nil, err
	}

	if !consumed {
		return r.continues(ctx, action.Action)
	}

	if r.session.EnemyCurrentHealth <= 0 {
		return r.victory(ctx)
	}

	if err := r.enemyAction(ctx); err != nil {
		return nil, err
	}

	if r.view.Health <= 0 {
		return r.defeat(ctx)
	}

	r.session.ActorIsDefending = false
	if err := r.saveSession(ctx); err != nil {
		return nil, err
	}

	return r.continues(ctx, action.Action)
}

// playerAction applies the player's sub-action and reports whether it
// consumed the turn
func (r *round) playerAction(ctx context.Context, action entities.CombatActionRequest) (bool, error) {
	switch action.Action {
	case entities.ActionAttack:
		return true, r.attack(ctx)
	case entities.ActionDefend:
		return true, r.defend(ctx)
	case entities.ActionUseItem:
		return r.useItem(ctx, *action.ItemID)
	case entities.ActionUseAbility:
		return true, r.useAbility(ctx, *action.AbilityID)
	default:
		return false, errors.InvalidArgumentf("unsupported action %q", action.Action)
	}
}

func (r *round) attack(ctx context.Context) error {
	roll, err := engine.ResolveAttackRoll(r.o.roller, r.view.Skill, r.enemy.Skill)
	if err != nil {
		return errors.Wrap(err, "failed to roll attack")
	}

	if !roll.Hit {
		r.record(entities.CombatActionResult{
			Actor:       entities.CombatantPlayer,
			ActionType:  entities.ActionAttack,
			Description: fmt.Sprintf("You miss the %s.", r.enemy.Name),
			Roll:        rollDetails(roll),
			Outcome:     entities.OutcomeMiss,
		})
		return nil
	}

	damage := engine.ComputeWeaponDamage(r.weapon, r.view.Skill)
	if err := r.damageEnemy(ctx, damage); err != nil {
		return err
	}

	r.record(r.enemyHit(entities.CombatActionResult{
		ActionType:  entities.ActionAttack,
		Description: fmt.Sprintf("You hit the %s for %d damage.", r.enemy.Name, damage),
		Roll:        rollDetails(roll),
	}, damage))
	return nil
}

func (r *round) defend(ctx context.Context) error {
	r.session.ActorIsDefending = true
	if err := r.saveSession(ctx); err != nil {
		return err
	}

	r.record(entities.CombatActionResult{
		Actor:       entities.CombatantPlayer,
		ActionType:  entities.ActionDefend,
		Description: "You raise your guard.",
		Outcome:     entities.OutcomeDefending,
	})
	return nil
}

// useItem returns false only for a heal at full health, which leaves the
// player free to choose again
func (r *round) useItem(ctx context.Context, itemID int64) (bool, error) {
	owned, err := r.o.progressRepo.HasItem(ctx, actorprogress.HasItemInput{ActorID: r.actorID, ItemID: itemID})
	if err != nil {
		return false, errors.Wrap(err, "failed to check inventory")
	}
	if !owned.Has {
		return false, errors.FailedPreconditionf("item %d is not in inventory", itemID).
			WithReason(errors.ReasonItemNotOwned).
			WithMeta("item_id", itemID)
	}

	failed := func(description string) (bool, error) {
		r.record(entities.CombatActionResult{
			Actor:       entities.CombatantPlayer,
			ActionType:  entities.ActionUseItem,
			Description: description,
			Outcome:     entities.OutcomeItemUseFailed,
			ItemID:      &itemID,
		})
		return true, nil
	}

	tmplOut, err := r.o.contentRepo.GetItemTemplate(ctx, content.GetItemTemplateInput{ID: itemID})
	if errors.IsNotFound(err) {
		logger.FromContext(ctx).WithField("item_id", itemID).Warn("owned item has no template")
		return failed("Nothing happens.")
	}
	if err != nil {
		return false, errors.Wrapf(err, "failed to load item %d", itemID)
	}
	item := tmplOut.Template

	if !item.Usable {
		return failed(fmt.Sprintf("The %s cannot be used.", item.Name))
	}
	heal, ok := effects.First[effects.Heal](effects.Parse(item.Effect, warnEffect(ctx)))
	if !ok || heal.Amount == 0 {
		return failed(fmt.Sprintf("You use the %s, but nothing happens.", item.Name))
	}

	result := engine.ApplyHeal(r.view.Health, r.view.MaxHealth(), heal.Amount)
	if result.Healed == 0 {
		r.record(entities.CombatActionResult{
			Actor:       entities.CombatantPlayer,
			ActionType:  entities.ActionUseItem,
			Description: fmt.Sprintf("You are already at full health. The %s is not used.", item.Name),
			Outcome:     entities.OutcomeNoEffect,
			ItemID:      &itemID,
		})
		return false, nil
	}

	// The decrement is the locked check; losing a race leaves nothing mutated
	if _, err := r.o.progressRepo.RemoveItem(ctx, actorprogress.RemoveItemInput{
		ActorID:  r.actorID,
		ItemID:   itemID,
		Quantity: 1,
	}); err != nil {
		return false, err
	}
	r.mutated = true

	if err := r.setHealth(ctx, result.NewHealth); err != nil {
		return false, err
	}

	player := entities.CombatantPlayer
	r.record(entities.CombatActionResult{
		Actor:           entities.CombatantPlayer,
		ActionType:      entities.ActionUseItem,
		Description:     fmt.Sprintf("You use the %s and recover %d health.", item.Name, result.Healed),
		Outcome:         entities.OutcomeHealed,
		HealthHealed:    intPtr(result.Healed),
		TargetActor:     &player,
		TargetCurrentHP: intPtr(result.NewHealth),
		TargetMaxHP:     intPtr(r.view.MaxHealth()),
		ItemID:          &itemID,
	})
	return true, nil
}

func (r *round) useAbility(ctx context.Context, abilityID int64) error {
	learned, err := r.o.progressRepo.HasLearnedAbility(ctx, actorprogress.HasLearnedAbilityInput{
		ActorID:   r.actorID,
		AbilityID: abilityID,
	})
	if err != nil {
		return errors.Wrap(err, "failed to check abilities")
	}
	if !learned.Learned {
		return errors.FailedPreconditionf("ability %d has not been learned", abilityID).
			WithReason(errors.ReasonAbilityNotLearned).
			WithMeta("ability_id", abilityID)
	}

	tmplOut, err := r.o.contentRepo.GetAbilityTemplate(ctx, content.GetAbilityTemplateInput{ID: abilityID})
	if errors.IsNotFound(err) {
		return errors.WrapWithCodef(err, errors.CodeInternal, "learned ability %d has no template", abilityID)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to load ability %d", abilityID)
	}
	ability := tmplOut.Template

	if !ability.IsCombatUsable() {
		return errors.FailedPreconditionf("%s cannot be used in combat", ability.Name).
			WithReason(errors.ReasonAbilityNotCombatUsable).
			WithMeta("ability_id", abilityID)
	}

	parsed := effects.Parse(ability.Effect, warnEffect(ctx))
	cost, _ := effects.First[effects.StaminaCost](parsed)
	// Equipment raises the stamina ceiling but only base stamina can be spent
	if r.progress.Stamina < cost.Amount {
		return errors.FailedPreconditionf("%s needs %d stamina, have %d", ability.Name, cost.Amount, r.progress.Stamina).
			WithReason(errors.ReasonInsufficientStamina).
			WithMeta("ability_id", abilityID)
	}

	multiplier, ok := effects.First[effects.DamageMultiplier](parsed)
	if !ok {
		r.record(entities.CombatActionResult{
			Actor:       entities.CombatantPlayer,
			ActionType:  entities.ActionUseAbility,
			Description: fmt.Sprintf("You use %s, but nothing happens.", ability.Name),
			Outcome:     entities.OutcomeNoEffect,
			AbilityID:   &abilityID,
		})
		return nil
	}

	if cost.Amount > 0 {
		if err := r.spendStamina(ctx, cost.Amount); err != nil {
			return err
		}
	}

	roll, err := engine.ResolveAttackRoll(r.o.roller, r.view.Skill, r.enemy.Skill)
	if err != nil {
		return errors.Wrap(err, "failed to roll ability attack")
	}

	if !roll.Hit {
		r.record(entities.CombatActionResult{
			Actor:       entities.CombatantPlayer,
			ActionType:  entities.ActionUseAbility,
			Description: fmt.Sprintf("Your %s misses the %s.", ability.Name, r.enemy.Name),
			Roll:        rollDetails(roll),
			Outcome:     entities.OutcomeMiss,
			AbilityID:   &abilityID,
		})
		return nil
	}

	damage := engine.ComputeAbilityDamage(r.weapon, r.view.Skill, multiplier.Factor)
	if err := r.damageEnemy(ctx, damage); err != nil {
		return err
	}

	r.record(r.enemyHit(entities.CombatActionResult{
		ActionType:  entities.ActionUseAbility,
		Description: fmt.Sprintf("Your %s hits the %s for %d damage.", ability.Name, r.enemy.Name, damage),
		Roll:        rollDetails(roll),
		AbilityID:   &abilityID,
	}, damage))
	return nil
}

// enemyAction runs the charge-state machine and applies its decision
func (r *round) enemyAction(ctx context.Context) error {
	decision, err := engine.DecideEnemyAction(r.enemy, r.session.EnemyChargeTurnsCurrent, r.o.roller)
	if err != nil {
		return errors.Wrap(err, "failed to decide enemy action")
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"enemy_action": decision.Kind,
		"charge":       decision.NextCharge,
	}).Debug("enemy acts")

	switch decision.Kind {
	case engine.EnemyExecuteSpecial:
		err = r.executeSpecial(ctx)
	case engine.EnemyContinueCharging:
		r.recordCharge(entities.OutcomeChargingContinues, decision.NextCharge)
	case engine.EnemyBeginCharging:
		r.recordCharge(entities.OutcomeChargingBegan, decision.NextCharge)
	default:
		err = r.enemyAttack(ctx)
	}
	if err != nil {
		return err
	}

	r.session.EnemyChargeTurnsCurrent = decision.NextCharge
	return nil
}

func (r *round) executeSpecial(ctx context.Context) error {
	special := r.enemy.SpecialAttack
	raw := engine.ComputeSpecialAttackDamage(r.enemy.Skill, special.DamageMultiplier)
	mitigation := engine.ComputeSpecialAttackMitigation(raw, r.view.Defense, r.session.ActorIsDefending)

	if err := r.damageActor(ctx, mitigation.Damage); err != nil {
		return err
	}

	description := fmt.Sprintf("%s %s hits you for %d damage.", special.ExecuteText, special.Name, mitigation.Damage)
	if mitigation.DefenseReduced {
		description += " Your guard absorbs most of the blow."
	}

	r.record(r.actorHit(entities.CombatActionResult{
		ActionType:  entities.ActionEnemySpecialAttack,
		Description: description,
		Outcome:     entities.OutcomeSpecialAttack,
	}, mitigation.Damage))
	return nil
}

func (r *round) enemyAttack(ctx context.Context) error {
	defenderSkill := engine.DefendingSkill(r.view.Skill, r.session.ActorIsDefending)
	roll, err := engine.ResolveAttackRoll(r.o.roller, r.enemy.Skill, defenderSkill)
	if err != nil {
		return errors.Wrap(err, "failed to roll enemy attack")
	}

	if !roll.Hit {
		r.record(entities.CombatActionResult{
			Actor:       entities.CombatantEnemy,
			ActionType:  entities.ActionEnemyAttack,
			Description: fmt.Sprintf("%s It misses.", r.enemy.AttackText),
			Roll:        rollDetails(roll),
			Outcome:     entities.OutcomeMiss,
		})
		return nil
	}

	raw := engine.ComputeEnemyDamage(r.enemy.Skill)
	mitigation := engine.ComputeMitigatedDamage(raw, r.view.Defense, r.session.ActorIsDefending)
	if err := r.damageActor(ctx, mitigation.Damage); err != nil {
		return err
	}

	description := fmt.Sprintf("%s You take %d damage.", r.enemy.AttackText, mitigation.Damage)
	if mitigation.DefenseReduced {
		description += " Your guard softens the blow."
	}

	r.record(r.actorHit(entities.CombatActionResult{
		ActionType:  entities.ActionEnemyAttack,
		Description: description,
		Roll:        rollDetails(roll),
		Outcome:     entities.OutcomeHit,
	}, mitigation.Damage))
	return nil
}

func (r *round) recordCharge(outcome entities.Outcome, charge int) {
	special := r.enemy.SpecialAttack
	required := special.ChargeTurnsRequired
	r.record(entities.CombatActionResult{
		Actor:               entities.CombatantEnemy,
		ActionType:          entities.ActionEnemyCharge,
		Description:         fmt.Sprintf("%s (%d/%d)", special.TelegraphText, charge, required),
		Outcome:             outcome,
		ChargeTurnsCurrent:  intPtr(charge),
		ChargeTurnsRequired: intPtr(required),
	})
}

// victory ends the fight in the actor's favor. The destination is resolved
// before anything is torn down.
func (r *round) victory(ctx context.Context) (*entities.RoundOutcome, error) {
	next, err := r.destination(ctx, func(n *entities.StoryNode) *int64 { return n.VictoryNodeID })
	if err != nil {
		return nil, err
	}

	if err := r.endSession(ctx); err != nil {
		return nil, err
	}

	xp, err := r.o.progressRepo.GrantXP(ctx, actorprogress.GrantXPInput{ActorID: r.actorID, Amount: r.enemy.XPReward})
	if err != nil {
		return nil, errors.Wrap(err, "failed to grant xp")
	}
	for _, msg := range xp.Messages {
		r.record(entities.CombatActionResult{
			Actor:       entities.CombatantPlayer,
			ActionType:  entities.ActionLevelUp,
			Description: msg,
			Outcome:     entities.OutcomeLevelUp,
		})
	}

	if r.enemy.ItemDropID != nil {
		if err := r.dropItem(ctx, *r.enemy.ItemDropID); err != nil {
			return nil, err
		}
	}

	if _, err := r.o.progressRepo.AdvanceToNode(ctx, actorprogress.AdvanceToNodeInput{
		ActorID: r.actorID,
		NodeID:  next,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to advance actor")
	}

	r.record(entities.CombatActionResult{
		Actor:       entities.CombatantPlayer,
		ActionType:  entities.ActionVictory,
		Description: fmt.Sprintf("The %s is defeated. You gain %d experience.", r.enemy.Name, r.enemy.XPReward),
		Outcome:     entities.OutcomeVictory,
	})

	view, err := r.refresh(ctx)
	if err != nil {
		return nil, err
	}

	r.o.publish(ctx, EventCombatVictory, actorEntity(r.actorID), enemyEntity(r.session), map[string]interface{}{
		EventKeySessionID:  r.session.ID,
		EventKeyNodeID:     r.session.NodeID,
		EventKeyNextNodeID: next,
		EventKeyActorHP:    view.Health,
	})

	return &entities.RoundOutcome{
		RoundActions: r.actions,
		Character:    view,
		IsCombatOver: true,
		NextNodeID:   &next,
	}, nil
}

// defeat ends the fight with the actor at zero health
func (r *round) defeat(ctx context.Context) (*entities.RoundOutcome, error) {
	next, err := r.destination(ctx, func(n *entities.StoryNode) *int64 { return n.DefeatNodeID })
	if err != nil {
		return nil, err
	}

	if err := r.endSession(ctx); err != nil {
		return nil, err
	}

	if err := r.setHealth(ctx, 0); err != nil {
		return nil, err
	}

	if _, err := r.o.progressRepo.AdvanceToNode(ctx, actorprogress.AdvanceToNodeInput{
		ActorID: r.actorID,
		NodeID:  next,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to advance actor")
	}

	r.record(entities.CombatActionResult{
		Actor:       entities.CombatantEnemy,
		ActionType:  entities.ActionDefeat,
		Description: fmt.Sprintf("You fall before the %s.", r.enemy.Name),
		Outcome:     entities.OutcomeDefeat,
	})

	view, err := r.refresh(ctx)
	if err != nil {
		return nil, err
	}
	view.Health = 0

	r.o.publish(ctx, EventCombatDefeat, enemyEntity(r.session), actorEntity(r.actorID), map[string]interface{}{
		EventKeySessionID:  r.session.ID,
		EventKeyNodeID:     r.session.NodeID,
		EventKeyNextNodeID: next,
		EventKeyEnemyHP:    r.session.EnemyCurrentHealth,
	})

	return &entities.RoundOutcome{
		RoundActions: r.actions,
		Character:    view,
		IsCombatOver: true,
		NextNodeID:   &next,
	}, nil
}

// continues returns the live state of a fight that goes on
func (r *round) continues(ctx context.Context, action entities.ActionType) (*entities.RoundOutcome, error) {
	view, err := r.refresh(ctx)
	if err != nil {
		return nil, err
	}

	r.o.publish(ctx, EventCombatRoundResolved, actorEntity(r.actorID), enemyEntity(r.session), map[string]interface{}{
		EventKeySessionID: r.session.ID,
		EventKeyAction:    string(action),
		EventKeyActorHP:   view.Health,
		EventKeyEnemyHP:   r.session.EnemyCurrentHealth,
	})

	return &entities.RoundOutcome{
		RoundActions: r.actions,
		Character:    view,
		Enemy:        entities.NewEnemySnapshot(r.enemy, r.session),
	}, nil
}

// destination resolves the node the actor moves to when the fight ends.
// A missing node tears the session down.
func (r *round) destination(ctx context.Context, pick func(*entities.StoryNode) *int64) (int64, error) {
	corrupt := func(cause error, format string, args ...interface{}) (int64, error) {
		r.o.teardown(ctx, r.actorID)
		if cause == nil {
			return 0, errors.Internalf(format, args...)
		}
		return 0, errors.WrapWithCodef(cause, errors.CodeInternal, format, args...)
	}

	nodeOut, err := r.o.contentRepo.GetNode(ctx, content.GetNodeInput{ID: r.session.NodeID})
	if errors.IsNotFound(err) {
		return corrupt(err, "combat node %d is missing", r.session.NodeID)
	}
	if err != nil {
		return 0, errors.Wrapf(err, "failed to load node %d", r.session.NodeID)
	}

	next := pick(nodeOut.Node)
	if next == nil {
		return corrupt(nil, "combat node %d has no destination", r.session.NodeID)
	}

	if _, err := r.o.contentRepo.GetNode(ctx, content.GetNodeInput{ID: *next}); errors.IsNotFound(err) {
		return corrupt(err, "destination node %d is missing", *next)
	} else if err != nil {
		return 0, errors.Wrapf(err, "failed to load node %d", *next)
	}

	return *next, nil
}

func (r *round) dropItem(ctx context.Context, itemID int64) error {
	if _, err := r.o.progressRepo.AddItem(ctx, actorprogress.AddItemInput{
		ActorID:  r.actorID,
		ItemID:   itemID,
		Quantity: 1,
	}); err != nil {
		return errors.Wrap(err, "failed to grant item drop")
	}

	name := "an item"
	if out, err := r.o.contentRepo.GetItemTemplate(ctx, content.GetItemTemplateInput{ID: itemID}); err == nil {
		name = "a " + out.Template.Name
	} else {
		logger.FromContext(ctx).WithError(err).WithField("item_id", itemID).Warn("dropped item has no template")
	}

	r.record(entities.CombatActionResult{
		Actor:       entities.CombatantEnemy,
		ActionType:  entities.ActionItemDrop,
		Description: fmt.Sprintf("The %s drops %s.", r.enemy.Name, name),
		Outcome:     entities.OutcomeItemDropped,
		ItemID:      &itemID,
	})
	return nil
}

func (r *round) damageEnemy(ctx context.Context, damage int) error {
	r.session.EnemyCurrentHealth = max(r.session.EnemyCurrentHealth-damage, 0)
	return r.saveSession(ctx)
}

func (r *round) damageActor(ctx context.Context, damage int) error {
	if damage == 0 {
		return nil
	}
	return r.setHealth(ctx, max(r.view.Health-damage, 0))
}

func (r *round) setHealth(ctx context.Context, health int) error {
	if _, err := r.o.progressRepo.ApplyDelta(ctx, actorprogress.ApplyDeltaInput{
		ActorID: r.actorID,
		Delta:   actorprogress.ProgressDelta{Health: &health},
	}); err != nil {
		return errors.Wrap(err, "failed to persist health")
	}
	r.mutated = true
	r.progress.Health = health
	r.view.Health = health
	return nil
}

func (r *round) spendStamina(ctx context.Context, cost int) error {
	stamina := r.progress.Stamina - cost
	if _, err := r.o.progressRepo.ApplyDelta(ctx, actorprogress.ApplyDeltaInput{
		ActorID: r.actorID,
		Delta:   actorprogress.ProgressDelta{Stamina: &stamina},
	}); err != nil {
		return errors.Wrap(err, "failed to persist stamina")
	}
	r.mutated = true
	r.progress.Stamina = stamina
	r.view.Stamina = max(r.view.Stamina-cost, 0)
	return nil
}

func (r *round) saveSession(ctx context.Context) error {
	out, err := r.o.sessionRepo.Update(ctx, combatsession.UpdateInput{Session: r.session})
	if err != nil {
		return err
	}
	r.mutated = true
	r.session = out.Session
	return nil
}

func (r *round) endSession(ctx context.Context) error {
	if _, err := r.o.sessionRepo.Delete(ctx, combatsession.DeleteInput{ActorID: r.actorID}); err != nil {
		return errors.Wrap(err, "failed to end session")
	}
	r.mutated = true
	return nil
}

// refresh re-hydrates the actor from the store
func (r *round) refresh(ctx context.Context) (entities.ActorCombatView, error) {
	out, err := r.o.progressRepo.GetSnapshot(ctx, actorprogress.GetSnapshotInput{ActorID: r.actorID})
	if err != nil {
		return entities.ActorCombatView{}, errors.Wrap(err, "failed to reload actor")
	}
	return r.o.hydrate(ctx, out.Identity, out.Progress), nil
}

func (r *round) record(result entities.CombatActionResult) {
	r.actions = append(r.actions, result)
}

// enemyHit fills in a player hit on the enemy
func (r *round) enemyHit(result entities.CombatActionResult, damage int) entities.CombatActionResult {
	enemy := entities.CombatantEnemy
	result.Actor = entities.CombatantPlayer
	result.Outcome = entities.OutcomeHit
	result.DamageDealt = intPtr(damage)
	result.TargetActor = &enemy
	result.TargetCurrentHP = intPtr(r.session.EnemyCurrentHealth)
	result.TargetMaxHP = intPtr(r.enemy.BaseHealth)
	return result
}

// actorHit fills in an enemy hit on the actor
func (r *round) actorHit(result entities.CombatActionResult, damage int) entities.CombatActionResult {
	player := entities.CombatantPlayer
	result.Actor = entities.CombatantEnemy
	result.DamageDealt = intPtr(damage)
	result.TargetActor = &player
	result.TargetCurrentHP = intPtr(r.view.Health)
	result.TargetMaxHP = intPtr(r.view.MaxHealth())
	return result
}

func rollDetails(roll engine.AttackRoll) *entities.RollDetails {
	return &entities.RollDetails{
		AttackerSkill: roll.AttackerSkill,
		DefenderSkill: roll.DefenderSkill,
		AttackerDie:   roll.AttackerDie,
		DefenderDie:   roll.DefenderDie,
		AttackerTotal: roll.AttackerTotal,
		DefenderTotal: roll.DefenderTotal,
	}
}

func intPtr(v int) *int {
	return &v
}
