// Package session owns the live conversation state and its lifecycle.
//
// The Controller is the single writer for the transcript, the duration
// ledger, and the streaming status. It hydrates from the store at startup,
// writes every settled state change back through, and consumes transport
// events as the sole consumer so they apply in arrival order. Stop and Clear
// invalidate the in-flight exchange by sequence number; late events are
// dropped rather than applied.
package session
