package notifications

import (
	"context"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
	"missions/internal/core/ports"
)

// MissionGetter is the read access the resolver needs.
type MissionGetter interface {
	Get(ctx context.Context, id kernel.UUID) (*mission.Mission, error)
}

// MissionPartiesResolver resolves subscribers from the mission record
// itself: the merchant and the assigned courier. Customer identities live
// in an external profile service and are resolved by the transport from
// the mission ID.
type MissionPartiesResolver struct {
	missions MissionGetter
}

// NewMissionPartiesResolver creates a resolver over the given read access.
func NewMissionPartiesResolver(missions MissionGetter) *MissionPartiesResolver {
	return &MissionPartiesResolver{missions: missions}
}

// Resolve returns the parties recorded on the mission.
func (r *MissionPartiesResolver) Resolve(ctx context.Context, event mission.Event) ([]ports.Subscriber, error) {
	m, err := r.missions.Get(ctx, event.MissionID())
	if err != nil {
		return nil, err
	}

	subscribers := make([]ports.Subscriber, 0, 2)
	if id := m.MerchantID(); id != nil {
		subscribers = append(subscribers, ports.Subscriber{ID: *id, Role: mission.RoleMerchant})
	}
	if id := m.CourierID(); id != nil {
		subscribers = append(subscribers, ports.Subscriber{ID: *id, Role: mission.RoleCourier})
	}
	return subscribers, nil
}
