// Package content provides read-only access to reference data: enemy,
// item and ability templates and the story nodes combat hands off to
package content

import (
	"context"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
)

// Repository defines read access to reference data. Every getter
// returns errors.InvalidArgument for non-positive IDs, errors.NotFound when
// the record doesn't exist and errors.Internal for storage failures.
type Repository interface {
	GetEnemyTemplate(ctx context.Context, input GetEnemyTemplateInput) (*GetEnemyTemplateOutput, error)
	GetItemTemplate(ctx context.Context, input GetItemTemplateInput) (*GetItemTemplateOutput, error)
	GetAbilityTemplate(ctx context.Context, input GetAbilityTemplateInput) (*GetAbilityTemplateOutput, error)
	GetNode(ctx context.Context, input GetNodeInput) (*GetNodeOutput, error)
}

// GetEnemyTemplateInput defines the input for getting an enemy template
type GetEnemyTemplateInput struct {
	ID int64
}

// GetEnemyTemplateOutput defines the output for getting an enemy template
type GetEnemyTemplateOutput struct {
	Template *entities.EnemyTemplate
}

// GetItemTemplateInput defines the input for getting an item template
type GetItemTemplateInput struct {
	ID int64
}

// GetItemTemplateOutput defines the output for getting an item template
type GetItemTemplateOutput struct {
	Template *entities.ItemTemplate
}

// GetAbilityTemplateInput defines the input for getting an ability template
type GetAbilityTemplateInput struct {
	ID int64
}

// GetAbilityTemplateOutput defines the output for getting an ability template
type GetAbilityTemplateOutput struct {
	Template *entities.AbilityTemplate
}

// GetNodeInput defines the input for getting a story node
type GetNodeInput struct {
	ID int64
}

// GetNodeOutput defines the output for getting a story node
type GetNodeOutput struct {
	Node *entities.StoryNode
}
