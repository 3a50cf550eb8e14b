// Package chat defines the conversation data model.
//
// Includes:
//   - Message: one transcript entry (id, role, ordered parts).
//   - Part: a typed message fragment (text, tool call, tool result).
//   - Durations: per-message response latency ledger with functional updates.
//
// Invariants: a persisted message always has at least one part; part order
// is generation order and survives reload unchanged.
package chat
