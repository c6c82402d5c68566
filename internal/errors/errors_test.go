package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "combat session not found",
			expected: "NOT_FOUND: combat session not found",
		},
		{
			name:     "failed precondition error",
			code:     errors.CodeFailedPrecondition,
			message:  "not currently in combat",
			expected: "FAILED_PRECONDITION: not currently in combat",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("enemy template not found").
		WithMeta("enemy_template_id", int64(3)).
		WithMeta("actor_id", "actor_1")

	s.Assert().Equal(int64(3), err.Meta["enemy_template_id"])
	s.Assert().Equal("actor_1", err.Meta["actor_id"])
}

func (s *ErrorsTestSuite) TestWithReason() {
	err := errors.FailedPrecondition("item not owned").WithReason(errors.ReasonItemNotOwned)
	wrapped := errors.Wrap(err, "use item rejected")

	s.Assert().Equal(errors.ReasonItemNotOwned, errors.GetReason(err))
	s.Assert().True(errors.HasReason(wrapped, errors.ReasonItemNotOwned))
	s.Assert().False(errors.HasReason(wrapped, errors.ReasonAbilityNotLearned))
	s.Assert().Equal(errors.Reason(""), errors.GetReason(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to load combat session")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to load combat session", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("record not found")
	wrapped := errors.Wrap(baseErr, "session not found")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("session not found", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.NotFound("session not found").WithReason(errors.ReasonNoActiveSession)
	wrapped := errors.WrapWithCode(baseErr, errors.CodeFailedPrecondition, "not currently in combat")

	s.Assert().Equal(errors.CodeFailedPrecondition, wrapped.Code)
	s.Assert().Equal("not currently in combat", wrapped.Message)
	s.Assert().Equal(errors.ReasonNoActiveSession, errors.GetReason(wrapped))

	wrapped.WithMeta("extra", true)
	s.Assert().NotContains(baseErr.Meta, "extra")
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"AlreadyExists", func() *errors.Error { return errors.AlreadyExists("test") }, errors.CodeAlreadyExists},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.CodeFailedPrecondition},
		{"Aborted", func() *errors.Error { return errors.Aborted("test") }, errors.CodeAborted},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.FailedPrecondition("a")
	err2 := errors.FailedPrecondition("b")
	err3 := errors.InvalidArgument("a")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")

	s.Assert().Equal("user friendly message", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestIsRejection() {
	s.Assert().True(errors.IsRejection(errors.FailedPrecondition("x")))
	s.Assert().True(errors.IsRejection(errors.Aborted("x")))
	s.Assert().False(errors.IsRejection(errors.Internal("x")))
	s.Assert().False(errors.IsRejection(fmt.Errorf("redis down")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 200},
		{errors.CodeNotFound, 404},
		{errors.CodeInvalidArgument, 400},
		{errors.CodeAlreadyExists, 409},
		{errors.CodeFailedPrecondition, 412},
		{errors.CodeAborted, 409},
		{errors.CodeInternal, 500},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}
