package mission

import (
	"fmt"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/pkg/errs"
	"missions/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when using an improperly initialized Actor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
	"actor must be created via NewActor or SystemActor constructors")

// Role identifies the capability class of a party acting on a mission.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleMerchant is the merchant preparing the goods.
	RoleMerchant

	// RoleCourier is the courier assigned to the mission.
	RoleCourier

	// RoleCustomer is the party receiving the delivery or taking the ride.
	RoleCustomer

	// RoleAdmin is back-office staff with administrative capabilities.
	RoleAdmin

	// RoleSystem is the synthetic actor used for automated transitions
	// such as the proximity-triggered ARRIVING edge.
	RoleSystem
)

// getValidRoleStrings returns the wire names of the recognized roles.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleMerchant: "merchant",
		RoleCourier:  "courier",
		RoleCustomer: "customer",
		RoleAdmin:    "admin",
		RoleSystem:   "system",
	}
}

// RoleFromString parses a wire name into a Role.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a recognized role", s))
}

// Validate checks if the Role is one of the recognized values.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role, implementing fmt.Stringer.
func (r Role) String() string {
	if str, ok := getValidRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Actor is the authenticated identity requesting a transition, supplied by
// the authentication collaborator. The system actor carries no identity.
type Actor struct {
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor creates an Actor with the given identity and role.
// The id must be a valid UUID and the role a recognized human role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

// SystemActor returns the synthetic actor used for automated transitions.
func SystemActor() Actor {
	return Actor{role: RoleSystem, guard: guard.NewConstructorGuard()}
}

// Validate ensures the Actor was created through a constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's identity. It is the zero UUID for the system actor.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's capability class.
func (a Actor) Role() Role {
	return a.role
}

// IsSystem reports whether this is the synthetic system actor.
func (a Actor) IsSystem() bool {
	return a.role == RoleSystem
}
