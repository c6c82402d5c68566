// Package errors provides the structured error type used across rpg-combat.
//
// Every error carries a Code that maps onto an HTTP status, a user-facing
// Message, an optional Cause and free-form Meta. Combat precondition failures
// additionally carry a machine-readable reason under the "reason" meta key so
// callers can tell "not in combat" apart from "item not owned" without string
// matching.
//
// # Basic Usage
//
//	err := errors.FailedPrecondition("not currently in combat").
//	    WithReason(errors.ReasonNoActiveSession).
//	    WithMeta("actor_id", actorID)
//
// Wrapping store failures keeps the original code when there is one:
//
//	if err := repo.Update(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to persist session")
//	}
//
// # Error Checking
//
//	if errors.IsFailedPrecondition(err) && errors.GetReason(err) == errors.ReasonItemNotOwned {
//	    // reject the action
//	}
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return NotFound / AlreadyExists / Aborted (lost compare-and-swap)
//   - Wrap redis and sql failures with context; they surface as Internal
//
// Orchestrator layer:
//   - Validate inputs with the ValidationBuilder (InvalidArgument)
//   - Reject precondition violations before mutating any state
//   - Never retry store failures
//
// Handler layer:
//   - Translate with Code.HTTPStatus and render Code, Message and Meta
package errors
