// Package status coordinates cached reads against host sampling.
package status

import (
	"context"

	"golang.org/x/sync/singleflight"

	"sysglance/internal/logger"
	"sysglance/internal/stats"
	"sysglance/internal/storage/snapshot"
)

// Service answers snapshot requests from the serving layer. The cached
// fast path never touches the sampler; expired reads fall into a shared
// single-flight refresh so a burst of misses costs one sample.
type Service struct {
	sampler stats.Sampler
	store   *snapshot.Store
	log     logger.Logger

	flight singleflight.Group
}

func NewService(sampler stats.Sampler, store *snapshot.Store, log logger.Logger) *Service {
	return &Service{
		sampler: sampler,
		store:   store,
		log:     log,
	}
}

// GetOrRefresh returns the current snapshot, sampling the host only
// when no unexpired snapshot exists. A failed sample is reported to the
// callers of that refresh only; any unexpired snapshot stays untouched.
func (s *Service) GetOrRefresh(ctx context.Context) (*stats.Snapshot, error) {
	if snap, ok := s.store.Get(); ok {
		return snap, nil
	}

	v, err, _ := s.flight.Do("refresh", func() (any, error) {
		snap, err := s.sampler.Sample(ctx)
		if err != nil {
			return nil, err
		}

		s.store.Put(snap)
		return snap, nil
	})
	if err != nil {
		s.log.Warn("status: snapshot refresh failed", "error", err)
		return nil, err
	}

	return v.(*stats.Snapshot), nil
}
