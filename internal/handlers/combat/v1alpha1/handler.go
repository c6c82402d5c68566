// Package v1alpha1 handles the combat HTTP interface
package v1alpha1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/logger"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CombatService combat.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.CombatService == nil {
		return errors.InvalidArgument("combat service is required")
	}
	return nil
}

// Handler serves the combat endpoints
type Handler struct {
	combatService combat.Service
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		combatService: cfg.CombatService,
	}, nil
}

// RegisterRoutes mounts the combat endpoints under /v1alpha1
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	actors := r.Group("/v1alpha1/actors/:actorId")
	actors.POST("/combat", h.StartCombat)
	actors.GET("/combat", h.GetCombatState)
	actors.POST("/combat/actions", h.ResolveRound)
}

// StartCombatRequest is the body of a start combat call
type StartCombatRequest struct {
	NodeID *int64 `json:"nodeId"`
}

// StartCombatResponse is the result of starting combat
type StartCombatResponse struct {
	SessionID string                   `json:"sessionId"`
	Character entities.ActorCombatView `json:"character"`
	Enemy     *entities.EnemySnapshot  `json:"enemy"`
}

// ErrorBody is the error envelope of every failed call
type ErrorBody struct {
	Error *errors.Error `json:"error"`
}

// StartCombat enters the enemy-bound node in the request body
func (h *Handler) StartCombat(c *gin.Context) {
	var req StartCombatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("nodeId", req.NodeID, vb)
	if err := vb.Build(); err != nil {
		h.writeError(c, err)
		return
	}

	out, err := h.combatService.StartCombat(c.Request.Context(), &combat.StartCombatInput{
		ActorID: c.Param("actorId"),
		NodeID:  *req.NodeID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StartCombatResponse{
		SessionID: out.SessionID,
		Character: out.State.Character,
		Enemy:     out.State.Enemy,
	})
}

// GetCombatState returns the ongoing fight
func (h *Handler) GetCombatState(c *gin.Context) {
	out, err := h.combatService.GetCombatState(c.Request.Context(), &combat.GetCombatStateInput{
		ActorID: c.Param("actorId"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out.State)
}

// ResolveRound submits one action and returns the round outcome
func (h *Handler) ResolveRound(c *gin.Context) {
	var req entities.CombatActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(c, err)
		return
	}

	out, err := h.combatService.ResolveRound(c.Request.Context(), &combat.ResolveRoundInput{
		ActorID: c.Param("actorId"),
		Action:  req,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out.Outcome)
}

// writeError renders err in the error envelope. Server failures hide their
// message from the caller.
func (h *Handler) writeError(c *gin.Context, err error) {
	body := &errors.Error{
		Code:    errors.GetCode(err),
		Message: errors.GetMessage(err),
		Meta:    errors.GetMeta(err),
	}

	log := logger.FromContext(c.Request.Context()).WithError(err).WithField("path", c.FullPath())
	if errors.IsRejection(err) {
		log.Info("request rejected")
	} else {
		log.Error("request failed")
		body.Message = "internal error"
		body.Meta = nil
	}

	c.JSON(body.Code.HTTPStatus(), ErrorBody{Error: body})
}
