// Package redisstore implements the hot courier-position store on Redis.
// Tracking screens poll positions far more often than couriers report
// them, so reads must not touch the database.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/ports"
	"missions/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces position keys in a shared Redis instance.
const keyPrefix = "mission:position:"

// setIfNewer writes the value only when the candidate's timestamp is not
// older than the stored one, keeping the store monotonic under concurrent
// reporters without a round trip.
//
// KEYS[1] = position key, ARGV[1] = payload, ARGV[2] = unix micros,
// ARGV[3] = ttl seconds.
var setIfNewer = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'ts')
if current and tonumber(current) >= tonumber(ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[1], 'payload', ARGV[1], 'ts', ARGV[2])
redis.call('EXPIRE', KEYS[1], ARGV[3])
return 1
`)

// positionPayload is the JSON document stored per mission.
type positionPayload struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	ReportedAt time.Time `json:"reportedAt"`
}

// PositionStore implements ports.PositionStore on Redis.
type PositionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPositionStore creates a Redis-backed position store. Entries expire
// after ttl without updates, so abandoned missions clean themselves up.
func NewPositionStore(client *redis.Client, ttl time.Duration) *PositionStore {
	return &PositionStore{
		client: client,
		ttl:    ttl,
	}
}

func key(missionID kernel.UUID) string {
	return keyPrefix + missionID.String()
}

// Set stores the position unless a newer one is already held.
func (s *PositionStore) Set(ctx context.Context, missionID kernel.UUID, record ports.PositionRecord) error {
	if err := missionID.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(positionPayload{
		Lat:        record.Point.Lat(),
		Lng:        record.Point.Lng(),
		ReportedAt: record.ReportedAt,
	})
	if err != nil {
		return err
	}

	return setIfNewer.Run(ctx, s.client,
		[]string{key(missionID)},
		payload,
		record.ReportedAt.UnixMicro(),
		int(s.ttl.Seconds()),
	).Err()
}

// Get returns the stored position for a mission.
func (s *PositionStore) Get(ctx context.Context, missionID kernel.UUID) (ports.PositionRecord, error) {
	if err := missionID.Validate(); err != nil {
		return ports.PositionRecord{}, err
	}

	raw, err := s.client.HGet(ctx, key(missionID), "payload").Bytes()
	if err != nil {
		if err == redis.Nil {
			return ports.PositionRecord{}, errs.NewObjectNotFoundError("missionId", missionID)
		}
		return ports.PositionRecord{}, fmt.Errorf("redis get failed: %w", err)
	}

	var payload positionPayload
	if err = json.Unmarshal(raw, &payload); err != nil {
		return ports.PositionRecord{}, fmt.Errorf("corrupt position payload: %w", err)
	}

	point, err := kernel.NewGeoPoint(payload.Lat, payload.Lng)
	if err != nil {
		return ports.PositionRecord{}, err
	}

	return ports.PositionRecord{
		Point:      point,
		ReportedAt: payload.ReportedAt,
	}, nil
}

// Delete removes the stored position, if any.
func (s *PositionStore) Delete(ctx context.Context, missionID kernel.UUID) error {
	if err := missionID.Validate(); err != nil {
		return err
	}

	return s.client.Del(ctx, key(missionID)).Err()
}
