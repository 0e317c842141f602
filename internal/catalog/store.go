package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"

	"DeliveryDashboard/internal/kv"
)

const (
	DefaultKey = "restaurantDashboardData"

	searchCacheCapacity = 256

	// lastIDSuffix names the key, next to the catalog key, that holds the
	// highest id ever issued.
	lastIDSuffix = ".lastId"

	opSeed   = "seed"
	opReset  = "reset"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

type StoreDeps struct {
	// Key is the storage key holding the catalog array. Defaults to DefaultKey.
	Key     string
	Log     *zap.Logger
	Metrics *Metrics
	// SearchTTL bounds how long search results are reused. Zero disables the cache.
	SearchTTL time.Duration
}

// Store owns the in-memory catalog. Every mutation writes the whole catalog
// back to storage before it becomes visible; a failed write leaves the
// previous catalog in place.
type Store struct {
	mu          sync.RWMutex
	kv          kv.Store
	key         string
	restaurants []Restaurant
	// lastID is the highest id ever issued or loaded, so deleted ids are never
	// reissued. savedID is the value last written under the lastId key.
	lastID  int
	savedID int

	search  *ttlcache.Cache[string, []SearchResult]
	log     *zap.Logger
	metrics *Metrics
}

func NewStore(store kv.Store, deps StoreDeps) *Store {
	s := &Store{
		kv:          store,
		key:         deps.Key,
		restaurants: []Restaurant{},
		log:         deps.Log,
		metrics:     deps.Metrics,
	}
	if s.key == "" {
		s.key = DefaultKey
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if deps.SearchTTL > 0 {
		s.search = ttlcache.New[string, []SearchResult](
			ttlcache.WithTTL[string, []SearchResult](deps.SearchTTL),
			ttlcache.WithCapacity[string, []SearchResult](searchCacheCapacity),
		)
	}
	return s
}

// Load replaces the in-memory catalog with the persisted one. When nothing is
// persisted yet the seed catalog is stored and returned.
func (s *Store) Load(ctx context.Context) ([]Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(ctx, s.key)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	missing := err != nil

	saved, err := s.loadLastID(ctx)
	if err != nil {
		s.log.Error("stored id counter rejected", zap.String("key", s.lastIDKey()), zap.Error(err))
		return nil, err
	}
	s.savedID = saved
	s.lastID = max(s.lastID, saved)

	if missing {
		seed := Seed()
		if err := s.commit(ctx, opSeed, seed); err != nil {
			return nil, err
		}
		s.log.Info("catalog seeded", zap.Int("restaurants", len(seed)))
		return cloneAll(seed), nil
	}

	rs, err := decodeCatalog(data)
	if err != nil {
		s.log.Error("stored catalog rejected", zap.String("key", s.key), zap.Error(err))
		return nil, err
	}

	s.replace(rs)
	return cloneAll(rs), nil
}

// loadLastID reads the persisted id counter. A catalog written before the
// counter existed has none; its max id takes over on the next write.
func (s *Store) loadLastID(ctx context.Context) (int, error) {
	raw, err := s.kv.Get(ctx, s.lastIDKey())
	if errors.Is(err, kv.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load id counter: %w", err)
	}

	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: id counter %q", ErrStorageCorrupt, raw)
	}
	return n, nil
}

func (s *Store) lastIDKey() string {
	return s.key + lastIDSuffix
}

// Reset overwrites storage with the seed catalog.
func (s *Store) Reset(ctx context.Context) ([]Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed := Seed()
	if err := s.commit(ctx, opReset, seed); err != nil {
		return nil, err
	}
	s.log.Warn("catalog reset to seed", zap.Int("restaurants", len(seed)))
	return cloneAll(seed), nil
}

func (s *Store) List() []Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.restaurants)
}

func (s *Store) FindByID(id int) (Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Restaurant{}, ErrNotFound
	}
	return s.restaurants[i].clone(), nil
}

func (s *Store) Create(ctx context.Context, name string, zones []ZoneInput) (Restaurant, error) {
	d, err := parseDraft(name, zones)
	if err != nil {
		s.metrics.mutation(opCreate, err)
		return Restaurant{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := Restaurant{
		ID:            max(s.lastID, maxID(s.restaurants)) + 1,
		Name:          d.Name,
		DeliveryZones: d.Zones,
	}

	next := make([]Restaurant, 0, len(s.restaurants)+1)
	next = append(next, s.restaurants...)
	next = append(next, r)

	if err := s.commit(ctx, opCreate, next); err != nil {
		return Restaurant{}, err
	}
	s.log.Info("restaurant created", zap.Int("id", r.ID), zap.Int("zones", len(r.DeliveryZones)))
	return r.clone(), nil
}

// Update replaces name and zones of restaurant id, keeping its id and position.
func (s *Store) Update(ctx context.Context, id int, name string, zones []ZoneInput) (Restaurant, error) {
	d, err := parseDraft(name, zones)
	if err != nil {
		s.metrics.mutation(opUpdate, err)
		return Restaurant{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.metrics.mutation(opUpdate, ErrNotFound)
		return Restaurant{}, ErrNotFound
	}

	r := Restaurant{ID: id, Name: d.Name, DeliveryZones: d.Zones}

	next := make([]Restaurant, len(s.restaurants))
	copy(next, s.restaurants)
	next[i] = r

	if err := s.commit(ctx, opUpdate, next); err != nil {
		return Restaurant{}, err
	}
	s.log.Info("restaurant updated", zap.Int("id", id), zap.Int("zones", len(r.DeliveryZones)))
	return r.clone(), nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.metrics.mutation(opDelete, ErrNotFound)
		return ErrNotFound
	}

	next := make([]Restaurant, 0, len(s.restaurants)-1)
	next = append(next, s.restaurants[:i]...)
	next = append(next, s.restaurants[i+1:]...)

	if err := s.commit(ctx, opDelete, next); err != nil {
		return err
	}
	s.log.Info("restaurant deleted", zap.Int("id", id))
	return nil
}

// commit persists next and, only if that succeeds, makes it current.
// Callers hold s.mu for writing.
func (s *Store) commit(ctx context.Context, op string, next []Restaurant) error {
	if err := s.persist(ctx, next); err != nil {
		s.metrics.mutation(op, err)
		s.log.Error("persist catalog failed", zap.String("op", op), zap.String("key", s.key), zap.Error(err))
		return err
	}
	s.replace(next)
	s.metrics.mutation(op, nil)
	return nil
}

// persist writes the id counter first when it grows, then the catalog. A
// counter ahead of the catalog only skips ids; one behind could reissue them.
func (s *Store) persist(ctx context.Context, rs []Restaurant) error {
	if hwm := max(s.lastID, maxID(rs)); hwm > s.savedID {
		if err := s.kv.Set(ctx, s.lastIDKey(), []byte(strconv.Itoa(hwm))); err != nil {
			return fmt.Errorf("%w: %w", ErrPersistFailure, err)
		}
		s.savedID = hwm
	}

	data, err := encodeCatalog(rs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistFailure, err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistFailure, err)
	}
	return nil
}

func (s *Store) replace(rs []Restaurant) {
	s.restaurants = rs
	if m := maxID(rs); m > s.lastID {
		s.lastID = m
	}
	if s.search != nil {
		s.search.DeleteAll()
	}
	s.metrics.size(len(rs))
}

func (s *Store) indexOf(id int) int {
	for i, r := range s.restaurants {
		if r.ID == id {
			return i
		}
	}
	return -1
}
