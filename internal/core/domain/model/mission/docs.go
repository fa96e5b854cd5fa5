// Package mission implements the Mission aggregate, the single source of
// truth for a delivery or ride job's lifecycle.
//
// A mission moves through a coarse status machine
// (PENDING → ACCEPTED → READY → ON_WAY → DELIVERED, with CANCELLED reachable
// from every non-terminal status) and, while active, a fine-grained
// courier-side trip-state machine
// (TO_MERCHANT → AT_MERCHANT → TO_CUSTOMER → ARRIVING). RIDE missions skip
// the merchant leg and enter TO_CUSTOMER when the courier confirms pickup.
//
// The aggregate is the last line of defense for the state machine: every
// transition is checked here regardless of what callers request. Committed
// transitions produce immutable Events consumed by the notification emitter.
package mission
