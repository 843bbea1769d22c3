// Package memory is an in-process implementation of port.Store. It
// enforces the same uniqueness constraints as the PostgreSQL schema and is
// used for local runs and as a test fixture.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"resto-ads/internal/core/domain"
	"resto-ads/internal/core/port"
)

// Store keeps every entity in maps guarded by a single mutex.
type Store struct {
	mu sync.Mutex

	nextRID     int64
	restaurants map[string]domain.Restaurant
	oppCounters map[string]int64
	categories  map[string]domain.AdSetCategory
	opportunity map[string]domain.Opportunity
	adSets      map[string]domain.AdSet
	posts       map[string]domain.Post
	events      map[string]domain.Event
	links       []domain.TrackingLink
	now         func() time.Time
	seq         int64
}

var _ port.Store = (*Store)(nil)

// New returns an empty store seeded with the default categories.
func New() *Store {
	s := &Store{
		restaurants: make(map[string]domain.Restaurant),
		oppCounters: make(map[string]int64),
		categories:  make(map[string]domain.AdSetCategory),
		opportunity: make(map[string]domain.Opportunity),
		adSets:      make(map[string]domain.AdSet),
		posts:       make(map[string]domain.Post),
		events:      make(map[string]domain.Event),
		now:         time.Now,
	}
	for _, c := range domain.DefaultCategories() {
		c.ID = uuid.NewString()
		c.CreatedAt = s.now().UTC()
		s.categories[c.ID] = c
	}
	return s
}

// stamp returns a strictly increasing creation time so "most recent"
// ordering is deterministic within one process.
func (s *Store) stamp() time.Time {
	s.seq++
	return s.now().UTC().Add(time.Duration(s.seq) * time.Microsecond)
}

// Restaurants

func (s *Store) CreateRestaurant(_ context.Context, r *domain.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRID++
	r.ID = uuid.NewString()
	r.RID = s.nextRID
	r.CreatedAt = s.stamp()
	s.restaurants[r.ID] = *r
	return nil
}

func (s *Store) GetRestaurant(_ context.Context, id string) (*domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &r, nil
}

func (s *Store) GetRestaurantByPageID(_ context.Context, pageID string) (*domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.restaurants {
		if r.FacebookPageID == pageID {
			return &r, nil
		}
	}
	return nil, port.ErrNotFound
}

func (s *Store) ListRestaurants(_ context.Context) ([]domain.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateRestaurant(_ context.Context, r *domain.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.restaurants[r.ID]
	if !ok {
		return port.ErrNotFound
	}
	r.RID, r.CreatedAt = old.RID, old.CreatedAt
	s.restaurants[r.ID] = *r
	return nil
}

func (s *Store) SetCampaignID(_ context.Context, id, campaignID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[id]
	if !ok {
		return port.ErrNotFound
	}
	r.MetaCampaignID = &campaignID
	s.restaurants[id] = r
	return nil
}

// DeleteRestaurant removes the restaurant and every row that references it.
func (s *Store) DeleteRestaurant(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.restaurants[id]; !ok {
		return port.ErrNotFound
	}
	delete(s.restaurants, id)
	for k, v := range s.opportunity {
		if v.RestaurantID == id {
			delete(s.opportunity, k)
		}
	}
	for k, v := range s.adSets {
		if v.RestaurantID == id {
			delete(s.adSets, k)
		}
	}
	for k, v := range s.posts {
		if v.RestaurantID == id {
			delete(s.posts, k)
		}
	}
	for k, v := range s.events {
		if v.RestaurantID == id {
			delete(s.events, k)
		}
	}
	return nil
}

// Categories

func (s *Store) GetCategory(_ context.Context, id string) (*domain.AdSetCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &c, nil
}

func (s *Store) GetCategoryByCode(_ context.Context, code string) (*domain.AdSetCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, port.ErrNotFound
}

func (s *Store) ListCategories(_ context.Context) ([]domain.AdSetCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AdSetCategory, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) UpdateCategoryTemplate(_ context.Context, id string, tpl domain.TargetingTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return port.ErrNotFound
	}
	c.TargetingTemplate = tpl
	s.categories[id] = c
	return nil
}

// Opportunities

// CreateOpportunity allocates the next pk of the restaurant under the
// store lock, so concurrent creations never share or skip a pk.
func (s *Store) CreateOpportunity(_ context.Context, o *domain.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[o.RestaurantID]
	if !ok {
		return port.ErrNotFound
	}
	s.oppCounters[o.RestaurantID]++
	o.ID = uuid.NewString()
	o.RID = r.RID
	o.PK = s.oppCounters[o.RestaurantID]
	o.CreatedAt = s.stamp()
	s.opportunity[o.ID] = *o
	return nil
}

func (s *Store) GetOpportunity(_ context.Context, id string) (*domain.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.opportunity[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &o, nil
}

func (s *Store) GetOpportunityByPK(_ context.Context, rid, pk int64) (*domain.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.opportunity {
		if o.RID == rid && o.PK == pk {
			return &o, nil
		}
	}
	return nil, port.ErrNotFound
}

func (s *Store) FindActiveOpportunity(_ context.Context, restaurantID string, offer domain.OfferType) (*domain.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *domain.Opportunity
	for _, o := range s.opportunity {
		if o.RestaurantID != restaurantID || o.OfferType != offer || o.Status != domain.OpportunityActive {
			continue
		}
		if best == nil || o.CreatedAt.After(best.CreatedAt) {
			o := o
			best = &o
		}
	}
	if best == nil {
		return nil, port.ErrNotFound
	}
	return best, nil
}

func (s *Store) ListOpportunities(_ context.Context, rid *int64) ([]domain.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Opportunity, 0)
	for _, o := range s.opportunity {
		if rid != nil && o.RID != *rid {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RID != out[j].RID {
			return out[i].RID < out[j].RID
		}
		return out[i].PK > out[j].PK
	})
	return out, nil
}

func (s *Store) UpdateOpportunity(_ context.Context, o *domain.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.opportunity[o.ID]
	if !ok {
		return port.ErrNotFound
	}
	o.RestaurantID, o.RID, o.PK, o.CreatedAt = old.RestaurantID, old.RID, old.PK, old.CreatedAt
	s.opportunity[o.ID] = *o
	return nil
}

func (s *Store) DeleteOpportunity(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.opportunity[id]; !ok {
		return port.ErrNotFound
	}
	delete(s.opportunity, id)
	for k, a := range s.adSets {
		if a.OpportunityID != nil && *a.OpportunityID == id {
			a.OpportunityID = nil
			s.adSets[k] = a
		}
	}
	return nil
}
