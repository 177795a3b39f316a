package venues

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps the catalog in process. It backs local development and
// tests; every method is safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	venues map[string]*Venue
}

func NewMemoryStore(seed ...Venue) *MemoryStore {
	s := &MemoryStore{venues: make(map[string]*Venue)}
	for i := range seed {
		v := seed[i]
		v.Source = SourceCurated
		s.venues[v.ID] = &v
	}
	return s
}

func (s *MemoryStore) List(_ context.Context, filter Filter) ([]Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Venue, 0, len(s.venues))
	for _, v := range s.venues {
		if filter.Matches(v) {
			out = append(out, clone(v))
		}
	}
	SortCurated(out)
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.venues[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := clone(v)
	return &c, nil
}

func (s *MemoryStore) Create(_ context.Context, venue *Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if venue.ID == "" {
		venue.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	venue.CreatedAt, venue.UpdatedAt = now, now
	venue.Source = SourceCurated
	c := clone(venue)
	s.venues[venue.ID] = &c
	return nil
}

func (s *MemoryStore) Save(_ context.Context, venue *Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if venue.ID == "" {
		venue.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if existing, ok := s.venues[venue.ID]; ok {
		venue.CreatedAt = existing.CreatedAt
	} else {
		venue.CreatedAt = now
	}
	venue.UpdatedAt = now
	venue.Source = SourceCurated
	c := clone(venue)
	s.venues[venue.ID] = &c
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[id]; !ok {
		return ErrNotFound
	}
	delete(s.venues, id)
	return nil
}

func (s *MemoryStore) Rate(_ context.Context, id string, value int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.venues[id]
	if !ok {
		return false, nil
	}
	v.Rating, v.ReviewCount = RunningAverage(v.Rating, v.ReviewCount, value)
	v.UpdatedAt = time.Now().UTC()
	return true, nil
}

// RunningAverage folds one rating into an average over count ratings.
func RunningAverage(avg float64, count, value int) (float64, int) {
	return (avg*float64(count) + float64(value)) / float64(count+1), count + 1
}

// SortCurated orders curated venues sponsored first, then by rating. Ties
// keep their input order.
func SortCurated(vs []Venue) {
	sort.SliceStable(vs, func(i, j int) bool {
		if vs[i].Sponsored != vs[j].Sponsored {
			return vs[i].Sponsored
		}
		if vs[i].Rating != vs[j].Rating {
			return vs[i].Rating > vs[j].Rating
		}
		return vs[i].CreatedAt.Before(vs[j].CreatedAt)
	})
}

func clone(v *Venue) Venue {
	c := *v
	if v.AmenityTags != nil {
		c.AmenityTags = append([]string(nil), v.AmenityTags...)
	}
	return c
}
