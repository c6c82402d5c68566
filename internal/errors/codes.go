package errors

import "net/http"

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeAborted            Code = "ABORTED"
	CodeInternal           Code = "INTERNAL"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the corresponding HTTP status code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	case CodeAborted:
		return http.StatusConflict
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// MetaKeyReason is the meta key holding a Reason
const MetaKeyReason = "reason"

// Reason distinguishes precondition failures that share a Code
type Reason string

// Combat rejection reasons
const (
	ReasonNoActiveSession        Reason = "no_active_session"
	ReasonSessionAlreadyActive   Reason = "session_already_active"
	ReasonItemNotOwned           Reason = "item_not_owned"
	ReasonAbilityNotLearned      Reason = "ability_not_learned"
	ReasonAbilityNotCombatUsable Reason = "ability_not_combat_usable"
	ReasonInsufficientStamina    Reason = "insufficient_stamina"
	ReasonRoundInProgress        Reason = "round_in_progress"
	ReasonStaleSession           Reason = "stale_session"
	ReasonNotEnemyNode           Reason = "not_enemy_node"
)
