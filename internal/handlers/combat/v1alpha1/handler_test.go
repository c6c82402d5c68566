package v1alpha1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	v1alpha1 "github.com/KirkDiggler/rpg-combat/internal/handlers/combat/v1alpha1"
	"github.com/KirkDiggler/rpg-combat/internal/orchestrators/combat"
	combatmock "github.com/KirkDiggler/rpg-combat/internal/orchestrators/combat/mock"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockCombatSvc *combatmock.MockService
	router        *gin.Engine
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.ctrl = gomock.NewController(s.T())
	s.mockCombatSvc = combatmock.NewMockService(s.ctrl)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{CombatService: s.mockCombatSvc})
	s.Require().NoError(err)

	s.router = gin.New()
	handler.RegisterRoutes(s.router)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) decodeError(rec *httptest.ResponseRecorder) map[string]interface{} {
	var body struct {
		Error map[string]interface{} `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().NotNil(body.Error)
	return body.Error
}

func (s *HandlerTestSuite) TestNewHandlerRequiresService() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestResolveRound() {
	damage := 5
	s.mockCombatSvc.EXPECT().
		ResolveRound(gomock.Any(), &combat.ResolveRoundInput{
			ActorID: "actor-1",
			Action:  entities.CombatActionRequest{Action: entities.ActionAttack},
		}).
		Return(&combat.ResolveRoundOutput{Outcome: &entities.RoundOutcome{
			RoundActions: []entities.CombatActionResult{{
				Actor:       entities.CombatantPlayer,
				ActionType:  entities.ActionAttack,
				Outcome:     entities.OutcomeHit,
				DamageDealt: &damage,
			}},
			Character: entities.ActorCombatView{ID: "actor-1", Health: 20},
			Enemy:     &entities.EnemySnapshot{ID: 1, Name: "Grey Wolf", CurrentHealth: 5},
		}}, nil)

	rec := s.do(http.MethodPost, "/v1alpha1/actors/actor-1/combat/actions", `{"action":"attack"}`)

	s.Equal(http.StatusOK, rec.Code)
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(false, body["isCombatOver"])
	s.NotContains(body, "nextNodeId")
	actions := body["roundActions"].([]interface{})
	s.Require().Len(actions, 1)
	first := actions[0].(map[string]interface{})
	s.Equal("hit", first["outcome"])
	s.Equal(float64(5), first["damageDealt"])
	s.Equal(float64(5), body["enemy"].(map[string]interface{})["currentHealth"])
}

func (s *HandlerTestSuite) TestResolveRoundUseItem() {
	itemID := int64(2)
	s.mockCombatSvc.EXPECT().
		ResolveRound(gomock.Any(), &combat.ResolveRoundInput{
			ActorID: "actor-1",
			Action:  entities.CombatActionRequest{Action: entities.ActionUseItem, ItemID: &itemID},
		}).
		Return(&combat.ResolveRoundOutput{Outcome: &entities.RoundOutcome{}}, nil)

	rec := s.do(http.MethodPost, "/v1alpha1/actors/actor-1/combat/actions", `{"action":"use_item","itemId":2}`)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestResolveRoundRejectsMalformedActions() {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{"action":`},
		{name: "missing action", body: `{}`},
		{name: "unknown action", body: `{"action":"dance"}`},
		{name: "use_item without itemId", body: `{"action":"use_item"}`},
		{name: "use_ability with zero abilityId", body: `{"action":"use_ability","abilityId":0}`},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			rec := s.do(http.MethodPost, "/v1alpha1/actors/actor-1/combat/actions", tc.body)
			s.Equal(http.StatusBadRequest, rec.Code)
			s.Equal(string(errors.CodeInvalidArgument), s.decodeError(rec)["code"])
		})
	}
}

func (s *HandlerTestSuite) TestResolveRoundMapsRejections() {
	tests := []struct {
		name   string
		err    error
		status int
		reason errors.Reason
	}{
		{
			name:   "no active session",
			err:    errors.FailedPrecondition("not currently in combat").WithReason(errors.ReasonNoActiveSession),
			status: http.StatusPreconditionFailed,
			reason: errors.ReasonNoActiveSession,
		},
		{
			name:   "item not owned",
			err:    errors.FailedPrecondition("item 3 is not in inventory").WithReason(errors.ReasonItemNotOwned),
			status: http.StatusPreconditionFailed,
			reason: errors.ReasonItemNotOwned,
		},
		{
			name:   "round in progress",
			err:    errors.Aborted("round in progress").WithReason(errors.ReasonRoundInProgress),
			status: http.StatusConflict,
			reason: errors.ReasonRoundInProgress,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.mockCombatSvc.EXPECT().ResolveRound(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := s.do(http.MethodPost, "/v1alpha1/actors/actor-1/combat/actions", `{"action":"defend"}`)

			s.Equal(tc.status, rec.Code)
			body := s.decodeError(rec)
			s.Equal(string(errors.GetCode(tc.err)), body["code"])
			s.Equal(string(tc.reason), body["meta"].(map[string]interface{})["reason"])
		})
	}
}

func (s *HandlerTestSuite) TestInternalErrorsHideDetails() {
	s.mockCombatSvc.EXPECT().
		ResolveRound(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("session cs_1 references missing enemy template 7"))

	rec := s.do(http.MethodPost, "/v1alpha1/actors/actor-1/combat/actions", `{"action":"attack"}`)

	s.Equal(http.StatusInternalServerError, rec.Code)
	body := s.decodeError(rec)
	s.Equal(string(errors.CodeInternal), body["code"])
	s.Equal("internal error", body["message"])
}

func (s *HandlerTestSuite) TestGetCombatState() {
	s.mockCombatSvc.EXPECT().
		GetCombatState(gomock.Any(), &combat.GetCombatStateInput{ActorID: "actor-1"}).
		Return(&combat.GetCombatStateOutput{State: &entities.CombatState{
			Character: entities.ActorCombatView{ID: "actor-1", Name: "Wren"},
			Enemy:     &entities.EnemySnapshot{ID: 2, Name: "Cave Ogre", IsChargingSpecial: true},
		}}, nil)

	rec := s.do(http.MethodGet, "/v1alpha1/actors/actor-1/combat", "")

	s.Equal(http.StatusOK, rec.Code)
	var body map[string]map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("Wren", body["character"]["name"])
	s.Equal(true, body["enemy"]["isChargingSpecial"])
}

func (s *HandlerTestSuite) TestStartCombat() {
	s.mockCombatSvc.EXPECT().
		StartCombat(gomock.Any(), &combat.StartCombatInput{ActorID: "actor-1", NodeID: 2}).
		Return(&combat.StartCombatOutput{
			SessionID: "cs_1",
			State: &entities.CombatState{
				Character: entities.ActorCombatView{ID: "actor-1"},
				Enemy:     &entities.EnemySnapshot{ID: 1},
			},
		}, nil)

	rec := s.do(http.MethodPost, "/v1alpha1/actors/actor-1/combat", `{"nodeId":2}`)

	s.Equal(http.StatusCreated, rec.Code)
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("cs_1", body["sessionId"])
}

func (s *HandlerTestSuite) TestStartCombatConflict() {
	s.mockCombatSvc.EXPECT().
		StartCombat(gomock.Any(), gomock.Any()).
		Return(nil, errors.AlreadyExists("already in combat").WithReason(errors.ReasonSessionAlreadyActive))

	rec := s.do(http.MethodPost, "/v1alpha1/actors/actor-1/combat", `{"nodeId":2}`)

	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(string(errors.ReasonSessionAlreadyActive), s.decodeError(rec)["meta"].(map[string]interface{})["reason"])
}

func (s *HandlerTestSuite) TestStartCombatRequiresNode() {
	rec := s.do(http.MethodPost, "/v1alpha1/actors/actor-1/combat", `{}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}
