package missionrepo

import (
	"context"
	"errors"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
	"missions/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMissionRepository implements ports.MissionRepository using GORM.
type GormMissionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates touched
// within a unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMissionRepository creates a new GORM mission repository.
func NewGormMissionRepository(db *gorm.DB, tracker aggregateTracker) *GormMissionRepository {
	return &GormMissionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new mission to the database.
func (r *GormMissionRepository) Add(ctx context.Context, aggregate *mission.Mission) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing mission to the database. Uses a full-row save so
// fields cleared by the transition (trip state, for one) are written as NULL
// rather than skipped as zero values.
func (r *GormMissionRepository) Update(ctx context.Context, aggregate *mission.Mission) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a mission by ID.
func (r *GormMissionRepository) Get(ctx context.Context, id kernel.UUID) (*mission.Mission, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MissionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("mission", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves missions awaiting courier assignment, oldest first.
func (r *GormMissionRepository) GetAllPending(ctx context.Context) ([]*mission.Mission, error) {
	return r.findAll(ctx, "status = ?", mission.StatusPending.String())
}

// GetAllActive retrieves missions currently being worked.
func (r *GormMissionRepository) GetAllActive(ctx context.Context) ([]*mission.Mission, error) {
	return r.findAll(ctx, "status IN ?", []string{
		mission.StatusAccepted.String(),
		mission.StatusReady.String(),
		mission.StatusOnWay.String(),
	})
}

func (r *GormMissionRepository) findAll(ctx context.Context, query string, arg any) ([]*mission.Mission, error) {
	var dtos []MissionDTO
	if err := r.db.WithContext(ctx).Order("created_at").Find(&dtos, query, arg).Error; err != nil {
		return nil, err
	}

	missions := make([]*mission.Mission, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		missions = append(missions, m)
	}

	return missions, nil
}
