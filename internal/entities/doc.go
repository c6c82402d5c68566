// Package entities holds the combat data model: sessions, reference
// templates, the two-layer actor model and the round request/response types.
//
// These are data-only structs. Game math lives in internal/engine and
// persistence lives in internal/repositories.
package entities
