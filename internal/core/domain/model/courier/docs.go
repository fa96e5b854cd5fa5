// Package courier tracks courier availability for dispatch.
//
// Availability is ephemeral presence data: who is signed on, where they are,
// and how many missions they are working. It lives in the in-memory Pool and
// is rebuilt from sign-ons after a restart; missions themselves are the
// durable record. The Pool is safe for concurrent use.
package courier
