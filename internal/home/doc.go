// Package home provides the whole-home coordinator for Hearth Core.
//
// The Coordinator owns an ordered roster of appliances and exposes the
// two operations panels and schedules actually use: switch everything
// on, switch everything off. A walk visits appliances strictly in
// roster order, never stops at a failed appliance, and returns an
// Execution summarising who responded, who failed and who was skipped.
//
// Every walk is journalled to SQLite through the Repository, giving an
// audit trail of what was asked for and what actually happened. The
// journal records operations, not appliance state; appliances remain
// stateless.
//
// # Status semantics
//
//   - completed: every appliance responded (including the empty roster)
//   - partial:   some failed, the rest responded
//   - failed:    every appliance failed
//   - cancelled: the context expired mid-walk; the remainder was skipped
package home
