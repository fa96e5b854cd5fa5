package commands_test

import (
	"context"
	"sync"

	"missions/internal/core/application/usecases/commands"
	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
	"missions/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func statusPtr(s mission.Status) *mission.Status      { return &s }
func tripPtr(ts mission.TripState) *mission.TripState { return &ts }

type MockMissionRepository struct{ mock.Mock }

func (m *MockMissionRepository) Add(ctx context.Context, aggregate *mission.Mission) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMissionRepository) Update(ctx context.Context, aggregate *mission.Mission) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMissionRepository) Get(ctx context.Context, id kernel.UUID) (*mission.Mission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mission.Mission), args.Error(1)
}

func (m *MockMissionRepository) GetAllPending(ctx context.Context) ([]*mission.Mission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mission.Mission), args.Error(1)
}

func (m *MockMissionRepository) GetAllActive(ctx context.Context) ([]*mission.Mission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mission.Mission), args.Error(1)
}

type MockMissionUoW struct{ mock.Mock }

func (m *MockMissionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMissionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMissionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMissionUoW) MissionRepository() ports.MissionRepository {
	args := m.Called()
	return args.Get(0).(ports.MissionRepository)
}

// FuncMissionUoWFactory adapts a closure to commands.MissionUoWFactory,
// the same bridge the composition root uses.
type FuncMissionUoWFactory func() commands.MissionUoW

func (f FuncMissionUoWFactory) Create() commands.MissionUoW {
	return f()
}

type MockPricingEstimator struct{ mock.Mock }

func (m *MockPricingEstimator) Estimate(ctx context.Context, missionType mission.Type, origin, destination kernel.GeoPoint) (mission.Estimate, error) {
	args := m.Called(ctx, missionType, origin, destination)
	return args.Get(0).(mission.Estimate), args.Error(1)
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []mission.Event
}

func (p *capturePublisher) Publish(event mission.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) Events() []mission.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]mission.Event, len(p.events))
	copy(out, p.events)
	return out
}
