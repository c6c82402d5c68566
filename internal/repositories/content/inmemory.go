package content

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// InMemoryRepository implements Repository over a loaded Catalog
type InMemoryRepository struct {
	mu        sync.RWMutex
	enemies   map[int64]entities.EnemyTemplate
	items     map[int64]entities.ItemTemplate
	abilities map[int64]entities.AbilityTemplate
	nodes     map[int64]entities.StoryNode
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository holding the catalog
func NewInMemory(catalog *Catalog) *InMemoryRepository {
	r := &InMemoryRepository{
		enemies:   make(map[int64]entities.EnemyTemplate),
		items:     make(map[int64]entities.ItemTemplate),
		abilities: make(map[int64]entities.AbilityTemplate),
		nodes:     make(map[int64]entities.StoryNode),
	}
	if catalog != nil {
		r.Load(catalog)
	}
	return r
}

// Load adds or replaces the catalog's records
func (r *InMemoryRepository) Load(catalog *Catalog) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range catalog.Enemies {
		r.enemies[e.ID] = e
	}
	for _, i := range catalog.Items {
		r.items[i.ID] = i
	}
	for _, a := range catalog.Abilities {
		r.abilities[a.ID] = a
	}
	for _, n := range catalog.Nodes {
		r.nodes[n.ID] = n
	}
}

// DeleteEnemyTemplate removes an enemy template
func (r *InMemoryRepository) DeleteEnemyTemplate(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.enemies, id)
}

// DeleteNode removes a story node
func (r *InMemoryRepository) DeleteNode(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.nodes, id)
}

// GetEnemyTemplate returns a copy of the enemy template
func (r *InMemoryRepository) GetEnemyTemplate(_ context.Context, input GetEnemyTemplateInput) (*GetEnemyTemplateOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgumentf("enemy template ID must be a positive integer, got %d", input.ID)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.enemies[input.ID]
	if !ok {
		return nil, errors.NotFoundf("enemy template %d not found", input.ID)
	}
	if t.SpecialAttack != nil {
		sa := *t.SpecialAttack
		t.SpecialAttack = &sa
	}

	return &GetEnemyTemplateOutput{Template: &t}, nil
}

// GetItemTemplate returns a copy of the item template
func (r *InMemoryRepository) GetItemTemplate(_ context.Context, input GetItemTemplateInput) (*GetItemTemplateOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgumentf("item template ID must be a positive integer, got %d", input.ID)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[input.ID]
	if !ok {
		return nil, errors.NotFoundf("item template %d not found", input.ID)
	}

	return &GetItemTemplateOutput{Template: &t}, nil
}

// GetAbilityTemplate returns a copy of the ability template
func (r *InMemoryRepository) GetAbilityTemplate(_ context.Context, input GetAbilityTemplateInput) (*GetAbilityTemplateOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgumentf("ability template ID must be a positive integer, got %d", input.ID)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.abilities[input.ID]
	if !ok {
		return nil, errors.NotFoundf("ability template %d not found", input.ID)
	}

	return &GetAbilityTemplateOutput{Template: &t}, nil
}

// GetNode returns a copy of the story node
func (r *InMemoryRepository) GetNode(_ context.Context, input GetNodeInput) (*GetNodeOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgumentf("node ID must be a positive integer, got %d", input.ID)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.nodes[input.ID]
	if !ok {
		return nil, errors.NotFoundf("node %d not found", input.ID)
	}

	return &GetNodeOutput{Node: &n}, nil
}
