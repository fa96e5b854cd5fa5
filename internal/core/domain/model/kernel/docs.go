// Package kernel provides core domain primitives for the mission engine.
// It implements the fundamental building blocks shared across the domain
// model:
//
//   - UUID: a value object for unique identifiers with validation and
//     comparison capabilities
//   - GeoPoint: a value object representing a WGS-84 coordinate with
//     great-circle distance calculation
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// safe for concurrent use.
package kernel
