package combat

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/rpg-combat/internal/effects"
	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/logger"
	"github.com/KirkDiggler/rpg-combat/internal/repositories/content"
)

// equipment loads the templates of the actor's equipped items. A missing
// template only loses its passive modifiers.
func (o *orchestrator) equipment(ctx context.Context, progress entities.ActorProgress) []entities.ItemTemplate {
	log := logger.FromContext(ctx)

	var items []entities.ItemTemplate
	for _, id := range progress.EquippedItemIDs() {
		out, err := o.contentRepo.GetItemTemplate(ctx, content.GetItemTemplateInput{ID: id})
		if errors.IsNotFound(err) {
			log.WithField("item_id", id).Warn("equipped item template missing")
			continue
		}
		if err != nil {
			log.WithError(err).WithField("item_id", id).Error("failed to load equipped item")
			continue
		}
		items = append(items, *out.Template)
	}
	return items
}

// hydrate builds the combat view of an actor from fresh progress
func (o *orchestrator) hydrate(ctx context.Context, identity entities.ActorIdentity, progress entities.ActorProgress) entities.ActorCombatView {
	return entities.Hydrate(identity, progress, o.equipment(ctx, progress), warnEffect(ctx))
}

// weaponEffects returns the parsed effects of the equipped weapon, or nil
// when unarmed
func weaponEffects(ctx context.Context, progress entities.ActorProgress, equipped []entities.ItemTemplate) []effects.Effect {
	if progress.EquippedWeaponID == nil {
		return nil
	}
	for _, item := range equipped {
		if item.ID == *progress.EquippedWeaponID {
			return effects.Parse(item.Effect, warnEffect(ctx))
		}
	}
	return nil
}

// warnEffect reports unparseable effect tokens on the round logger
func warnEffect(ctx context.Context) effects.WarnFunc {
	return func(token, reason string) {
		logger.FromContext(ctx).WithFields(logrus.Fields{
			"token":  token,
			"reason": reason,
		}).Warn("ignored effect token")
	}
}
