package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
)

// Ad sets

func (s *Store) FindOpenAdSet(_ context.Context, p domain.Partition, capacity int) (*domain.AdSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *domain.AdSet
	for _, a := range s.adSets {
		if !p.Matches(a) || !a.IsOpen(capacity) {
			continue
		}
		if best == nil || a.Version > best.Version {
			a := a
			best = &a
		}
	}
	if best == nil {
		return nil, port.ErrNotFound
	}
	return best, nil
}

func (s *Store) MaxAdSetVersion(_ context.Context, p domain.Partition) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := 0
	for _, a := range s.adSets {
		if p.Matches(a) && a.Version > max {
			max = a.Version
		}
	}
	return max, nil
}

// CreateAdSet rejects a second ad set with the same partition and version.
func (s *Store) CreateAdSet(_ context.Context, a *domain.AdSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := domain.PartitionOf(*a)
	for _, other := range s.adSets {
		if other.Version == a.Version && p.Matches(other) {
			return port.ErrConflict
		}
	}
	a.ID = uuid.NewString()
	a.CreatedAt = s.stamp()
	s.adSets[a.ID] = *a
	return nil
}

func (s *Store) GetAdSet(_ context.Context, id string) (*domain.AdSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.adSets[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &a, nil
}

func (s *Store) ListAdSets(_ context.Context, restaurantID *string) ([]domain.AdSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AdSet, 0)
	for _, a := range s.adSets {
		if restaurantID != nil && a.RestaurantID != *restaurantID {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) IncrementAdsCount(_ context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.adSets[id]
	if !ok {
		return 0, port.ErrNotFound
	}
	a.AdsCount++
	s.adSets[id] = a
	return a.AdsCount, nil
}

// DeleteAdSet removes the ad set and its events. Posts are removed
// explicitly by the caller.
func (s *Store) DeleteAdSet(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.adSets[id]; !ok {
		return port.ErrNotFound
	}
	delete(s.adSets, id)
	for k, e := range s.events {
		if e.AdSetID == id {
			delete(s.events, k)
		}
	}
	for k, p := range s.posts {
		if p.AdSetID != nil && *p.AdSetID == id {
			p.AdSetID = nil
			s.posts[k] = p
		}
	}
	return nil
}

// Posts

func (s *Store) CreatePost(_ context.Context, p *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.posts {
		if other.ExternalPostID == p.ExternalPostID {
			return port.ErrConflict
		}
	}
	p.ID = uuid.NewString()
	p.CreatedAt = s.stamp()
	s.posts[p.ID] = *p
	return nil
}

func (s *Store) GetPost(_ context.Context, id string) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &p, nil
}

func (s *Store) GetPostByExternalID(_ context.Context, externalPostID string) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ExternalPostID == externalPostID {
			return &p, nil
		}
	}
	return nil, port.ErrNotFound
}

func (s *Store) ListPosts(_ context.Context, restaurantID *string) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Post, 0)
	for _, p := range s.posts {
		if restaurantID != nil && p.RestaurantID != *restaurantID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) ListDuePosts(_ context.Context, day time.Time) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day = domain.Day(day)
	out := make([]domain.Post, 0)
	for _, p := range s.posts {
		if p.Status != domain.PostActive || p.PromotionEndDate == nil {
			continue
		}
		if !domain.Day(*p.PromotionEndDate).After(day) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdatePostStatus(_ context.Context, id string, status domain.PostStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return port.ErrNotFound
	}
	p.Status = status
	s.posts[id] = p
	return nil
}

func (s *Store) DeletePost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return port.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *Store) DeletePostsByAdSet(_ context.Context, adSetID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, p := range s.posts {
		if p.AdSetID != nil && *p.AdSetID == adSetID {
			delete(s.posts, k)
			n++
		}
	}
	return n, nil
}

// Events

func (s *Store) GetEvent(_ context.Context, restaurantID, identifier string) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.RestaurantID == restaurantID && e.Identifier == identifier {
			return &e, nil
		}
	}
	return nil, port.ErrNotFound
}

func (s *Store) CreateEvent(_ context.Context, e *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.events {
		if other.RestaurantID == e.RestaurantID && other.Identifier == e.Identifier {
			return port.ErrConflict
		}
	}
	e.ID = uuid.NewString()
	e.CreatedAt = s.stamp()
	s.events[e.ID] = *e
	return nil
}

func (s *Store) ListEvents(_ context.Context, restaurantID *string) ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Event, 0)
	for _, e := range s.events {
		if restaurantID != nil && e.RestaurantID != *restaurantID {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

// Tracking links

func (s *Store) CreateTrackingLink(_ context.Context, l *domain.TrackingLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = uuid.NewString()
	l.CreatedAt = s.stamp()
	s.links = append(s.links, *l)
	return nil
}

func (s *Store) ListTrackingLinks(_ context.Context, rid, pk *int64) ([]domain.TrackingLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.TrackingLink, 0)
	for i := len(s.links) - 1; i >= 0; i-- {
		l := s.links[i]
		if rid != nil && l.RID != *rid {
			continue
		}
		if pk != nil && l.PK != *pk {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
