package content

import (
	"context"
	stderrors "errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

type enemyModel struct {
	ID                 int64  `gorm:"primaryKey;autoIncrement:false"`
	Name               string `gorm:"not null"`
	BaseHealth         int
	Skill              int
	AttackText         string
	ItemDropID         *int64
	XPReward           int
	HasSpecialAttack   bool
	SpecialName        string
	SpecialMultiplier  float64
	SpecialChargeTurns int
	SpecialTelegraph   string
	SpecialExecuteText string
}

// TableName keeps template tables grouped
func (enemyModel) TableName() string { return "enemy_templates" }

type itemModel struct {
	ID     int64  `gorm:"primaryKey;autoIncrement:false"`
	Name   string `gorm:"not null"`
	Type   string
	Effect string
	Usable bool
}

func (itemModel) TableName() string { return "item_templates" }

type abilityModel struct {
	ID     int64  `gorm:"primaryKey;autoIncrement:false"`
	Name   string `gorm:"not null"`
	Type   string
	Effect string
}

func (abilityModel) TableName() string { return "ability_templates" }

type nodeModel struct {
	ID            int64 `gorm:"primaryKey;autoIncrement:false"`
	Title         string
	EnemyID       *int64
	VictoryNodeID *int64
	DefeatNodeID  *int64
}

func (nodeModel) TableName() string { return "story_nodes" }

// OpenSQLite opens (creating if needed) a sqlite content database and
// migrates its schema
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open content database")
	}

	if err := db.AutoMigrate(&enemyModel{}, &itemModel{}, &abilityModel{}, &nodeModel{}); err != nil {
		return nil, errors.Wrapf(err, "failed to migrate content database")
	}

	return db, nil
}

// SeedResult counts the records written by Seed
type SeedResult struct {
	Enemies   int
	Items     int
	Abilities int
	Nodes     int
}

// Seed validates the catalog and upserts every record in one transaction
func Seed(ctx context.Context, db *gorm.DB, catalog *Catalog) (*SeedResult, error) {
	if db == nil {
		return nil, errors.InvalidArgument("db is required")
	}
	if catalog == nil {
		return nil, errors.InvalidArgument("catalog is required")
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	upsert := clause.OnConflict{UpdateAll: true}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range catalog.Enemies {
			if err := tx.Clauses(upsert).Create(toEnemyModel(e)).Error; err != nil {
				return err
			}
		}
		for _, i := range catalog.Items {
			m := &itemModel{ID: i.ID, Name: i.Name, Type: string(i.Type), Effect: i.Effect, Usable: i.Usable}
			if err := tx.Clauses(upsert).Create(m).Error; err != nil {
				return err
			}
		}
		for _, a := range catalog.Abilities {
			m := &abilityModel{ID: a.ID, Name: a.Name, Type: string(a.Type), Effect: a.Effect}
			if err := tx.Clauses(upsert).Create(m).Error; err != nil {
				return err
			}
		}
		for _, n := range catalog.Nodes {
			m := &nodeModel{ID: n.ID, Title: n.Title, EnemyID: n.EnemyID, VictoryNodeID: n.VictoryNodeID, DefeatNodeID: n.DefeatNodeID}
			if err := tx.Clauses(upsert).Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to seed content")
	}

	return &SeedResult{
		Enemies:   len(catalog.Enemies),
		Items:     len(catalog.Items),
		Abilities: len(catalog.Abilities),
		Nodes:     len(catalog.Nodes),
	}, nil
}

// SQLConfig holds the configuration for the gorm repository
type SQLConfig struct {
	DB *gorm.DB
}

// Validate ensures all required dependencies are provided
func (c *SQLConfig) Validate() error {
	if c == nil || c.DB == nil {
		return errors.InvalidArgument("db is required")
	}
	return nil
}

type sqlRepository struct {
	db *gorm.DB
}

// NewSQLRepository creates a gorm backed content repository
func NewSQLRepository(cfg *SQLConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &sqlRepository{db: cfg.DB}, nil
}

// Ensure sqlRepository implements Repository
var _ Repository = (*sqlRepository)(nil)

func (r *sqlRepository) GetEnemyTemplate(ctx context.Context, input GetEnemyTemplateInput) (*GetEnemyTemplateOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgumentf("enemy template ID must be a positive integer, got %d", input.ID)
	}

	var m enemyModel
	if err := r.first(ctx, &m, input.ID, "enemy template"); err != nil {
		return nil, err
	}

	return &GetEnemyTemplateOutput{Template: fromEnemyModel(&m)}, nil
}

func (r *sqlRepository) GetItemTemplate(ctx context.Context, input GetItemTemplateInput) (*GetItemTemplateOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgumentf("item template ID must be a positive integer, got %d", input.ID)
	}

	var m itemModel
	if err := r.first(ctx, &m, input.ID, "item template"); err != nil {
		return nil, err
	}

	return &GetItemTemplateOutput{Template: &entities.ItemTemplate{
		ID:     m.ID,
		Name:   m.Name,
		Type:   entities.ItemType(m.Type),
		Effect: m.Effect,
		Usable: m.Usable,
	}}, nil
}

func (r *sqlRepository) GetAbilityTemplate(ctx context.Context, input GetAbilityTemplateInput) (*GetAbilityTemplateOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgumentf("ability template ID must be a positive integer, got %d", input.ID)
	}

	var m abilityModel
	if err := r.first(ctx, &m, input.ID, "ability template"); err != nil {
		return nil, err
	}

	return &GetAbilityTemplateOutput{Template: &entities.AbilityTemplate{
		ID:     m.ID,
		Name:   m.Name,
		Type:   entities.AbilityType(m.Type),
		Effect: m.Effect,
	}}, nil
}

func (r *sqlRepository) GetNode(ctx context.Context, input GetNodeInput) (*GetNodeOutput, error) {
	if input.ID <= 0 {
		return nil, errors.InvalidArgumentf("node ID must be a positive integer, got %d", input.ID)
	}

	var m nodeModel
	if err := r.first(ctx, &m, input.ID, "node"); err != nil {
		return nil, err
	}

	return &GetNodeOutput{Node: &entities.StoryNode{
		ID:            m.ID,
		Title:         m.Title,
		EnemyID:       m.EnemyID,
		VictoryNodeID: m.VictoryNodeID,
		DefeatNodeID:  m.DefeatNodeID,
	}}, nil
}

func (r *sqlRepository) first(ctx context.Context, dest interface{}, id int64, kind string) error {
	err := r.db.WithContext(ctx).First(dest, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFoundf("%s %d not found", kind, id)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to load %s %d", kind, id)
	}
	return nil
}

func toEnemyModel(e entities.EnemyTemplate) *enemyModel {
	m := &enemyModel{
		ID:         e.ID,
		Name:       e.Name,
		BaseHealth: e.BaseHealth,
		Skill:      e.Skill,
		AttackText: e.AttackText,
		ItemDropID: e.ItemDropID,
		XPReward:   e.XPReward,
	}
	if sa := e.SpecialAttack; sa != nil {
		m.HasSpecialAttack = true
		m.SpecialName = sa.Name
		m.SpecialMultiplier = sa.DamageMultiplier
		m.SpecialChargeTurns = sa.ChargeTurnsRequired
		m.SpecialTelegraph = sa.TelegraphText
		m.SpecialExecuteText = sa.ExecuteText
	}
	return m
}

func fromEnemyModel(m *enemyModel) *entities.EnemyTemplate {
	t := &entities.EnemyTemplate{
		ID:         m.ID,
		Name:       m.Name,
		BaseHealth: m.BaseHealth,
		Skill:      m.Skill,
		AttackText: m.AttackText,
		ItemDropID: m.ItemDropID,
		XPReward:   m.XPReward,
	}
	if m.HasSpecialAttack {
		t.SpecialAttack = &entities.SpecialAttack{
			Name:                m.SpecialName,
			DamageMultiplier:    m.SpecialMultiplier,
			ChargeTurnsRequired: m.SpecialChargeTurns,
			TelegraphText:       m.SpecialTelegraph,
			ExecuteText:         m.SpecialExecuteText,
		}
	}
	return t
}
