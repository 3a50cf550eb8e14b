// Package runner drives the streaming exchange with the Anthropic Messages
// API and dispatches tool calls.
//
// Invariant:
//   - tool_use and the corresponding tool_result are kept adjacent within a
//     turn so a multi-step exchange stays coherent.
//
// Flow:
//
//	user(text) -> assistant(tool_use) -> user(tool_result) -> assistant(text)
//
// The runner owns no session state; it only emits ordered events that the
// session controller applies.
package runner
