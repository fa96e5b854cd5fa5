// Package services contains stateless domain services that coordinate
// multiple aggregates without belonging to any single one.
package services
