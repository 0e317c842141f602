package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"DeliveryDashboard/internal/kv"
)

type fakeKV struct {
	*kv.MemStore
	// sets counts catalog writes only
	sets    int
	failSet error
	failGet error
}

func newFakeKV() *fakeKV {
	return &fakeKV{MemStore: kv.NewMemStore()}
}

func (f *fakeKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	return f.MemStore.Get(ctx, key)
}

func (f *fakeKV) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet != nil {
		return f.failSet
	}
	if key == DefaultKey {
		f.sets++
	}
	return f.MemStore.Set(ctx, key, value)
}

func zones(in ...ZoneInput) []ZoneInput { return in }

func zone(name, price, minutes string) ZoneInput {
	return ZoneInput{Zone: name, Price: price, DeliveryTime: minutes}
}

func loadedStore(t *testing.T) (*Store, *fakeKV) {
	t.Helper()

	f := newFakeKV()
	s := NewStore(f, StoreDeps{})
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s, f
}

func storeWith(t *testing.T, rs []Restaurant) (*Store, *fakeKV) {
	t.Helper()

	f := newFakeKV()
	data, err := encodeCatalog(rs)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.MemStore.Set(context.Background(), DefaultKey, data); err != nil {
		t.Fatalf("set: %v", err)
	}

	s := NewStore(f, StoreDeps{})
	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s, f
}

func persisted(t *testing.T, f *fakeKV) []Restaurant {
	t.Helper()

	data, err := f.MemStore.Get(context.Background(), DefaultKey)
	if err != nil {
		t.Fatalf("get persisted: %v", err)
	}
	var rs []Restaurant
	if err := json.Unmarshal(data, &rs); err != nil {
		t.Fatalf("decode persisted: %v", err)
	}
	return rs
}

func one(id int) Restaurant {
	return Restaurant{ID: id, Name: "r", DeliveryZones: []DeliveryZone{{Zone: "z", Price: 1, DeliveryTime: 10}}}
}

func TestStore_Load_SeedsAndPersistsWhenEmpty(t *testing.T) {
	s, f := loadedStore(t)

	if got := len(s.List()); got != 6 {
		t.Fatalf("restaurants=%d want 6", got)
	}
	if f.sets != 1 {
		t.Fatalf("sets=%d want 1", f.sets)
	}
	if !reflect.DeepEqual(persisted(t, f), Seed()) {
		t.Fatalf("persisted catalog differs from seed")
	}
}

func TestStore_Load_ReadsPersisted(t *testing.T) {
	s, f := storeWith(t, []Restaurant{one(3), one(1)})

	got := s.List()
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if f.sets != 0 {
		t.Fatalf("load of existing catalog wrote %d times", f.sets)
	}
}

func TestStore_Load_CorruptLeavesStateAlone(t *testing.T) {
	s, f := loadedStore(t)
	_ = f.MemStore.Set(context.Background(), DefaultKey, []byte(`{"not":"an array"}`))

	_, err := s.Load(context.Background())
	if !errors.Is(err, ErrStorageCorrupt) {
		t.Fatalf("err=%v want ErrStorageCorrupt", err)
	}
	if len(s.List()) != 6 {
		t.Fatalf("corrupt load changed the in-memory catalog")
	}

	// storage is left for the caller to decide on
	data, _ := f.MemStore.Get(context.Background(), DefaultKey)
	if string(data) != `{"not":"an array"}` {
		t.Fatalf("corrupt data was overwritten: %s", data)
	}
}

func TestStore_Reset_RestoresSeed(t *testing.T) {
	f := newFakeKV()
	_ = f.MemStore.Set(context.Background(), DefaultKey, []byte(`garbage`))
	s := NewStore(f, StoreDeps{})

	if _, err := s.Load(context.Background()); !errors.Is(err, ErrStorageCorrupt) {
		t.Fatalf("err=%v", err)
	}

	rs, err := s.Reset(context.Background())
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(rs) != 6 || !reflect.DeepEqual(persisted(t, f), Seed()) {
		t.Fatalf("reset did not restore the seed")
	}
}

func TestStore_Load_ReadFailureIsNotCorruption(t *testing.T) {
	f := newFakeKV()
	f.failGet = errors.New("disk gone")
	s := NewStore(f, StoreDeps{})

	_, err := s.Load(context.Background())
	if err == nil || errors.Is(err, ErrStorageCorrupt) {
		t.Fatalf("err=%v", err)
	}
}

func TestStore_Create_AssignsMaxPlusOne(t *testing.T) {
	s, _ := storeWith(t, []Restaurant{one(1), one(2), one(5)})

	r, err := s.Create(context.Background(), "New", zones(zone("Z", "2", "30")))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.ID != 6 {
		t.Fatalf("id=%d want 6", r.ID)
	}

	list := s.List()
	if list[len(list)-1].ID != 6 {
		t.Fatalf("created restaurant not appended: %+v", list)
	}
}

func TestStore_Create_EmptyCatalogStartsAtOne(t *testing.T) {
	s, _ := storeWith(t, []Restaurant{})

	r, err := s.Create(context.Background(), "First", zones(zone("Z", "1", "10")))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.ID != 1 {
		t.Fatalf("id=%d want 1", r.ID)
	}
}

func TestStore_Create_TrimsAndParses(t *testing.T) {
	s, f := loadedStore(t)

	r, err := s.Create(context.Background(), "  Pizza  ", zones(zone(" عبدون ", " 1.5 ", "25")))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	want := Restaurant{ID: 7, Name: "Pizza", DeliveryZones: []DeliveryZone{{Zone: "عبدون", Price: 1.5, DeliveryTime: 25}}}
	if !reflect.DeepEqual(r, want) {
		t.Fatalf("got %+v want %+v", r, want)
	}
	if f.sets != 2 {
		t.Fatalf("sets=%d want 2 (seed + create)", f.sets)
	}

	got := persisted(t, f)
	if !reflect.DeepEqual(got[len(got)-1], want) {
		t.Fatalf("persisted %+v", got[len(got)-1])
	}
}

func TestStore_Create_ValidationLeavesCatalogUnchanged(t *testing.T) {
	s, f := loadedStore(t)
	before := s.List()

	_, err := s.Create(context.Background(), " ", nil)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err=%v want ValidationError", err)
	}
	if !verr.Has("name") || !verr.Has("deliveryZones") {
		t.Fatalf("fields=%+v", verr.Fields)
	}
	if !reflect.DeepEqual(before, s.List()) {
		t.Fatalf("catalog changed after rejected create")
	}
	if f.sets != 1 {
		t.Fatalf("rejected create persisted")
	}
}

func TestStore_Update_ReplacesInPlace(t *testing.T) {
	s, f := loadedStore(t)

	r, err := s.Update(context.Background(), 1, "NewName", zones(zone("Z", "2", "30")))
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	want := Restaurant{ID: 1, Name: "NewName", DeliveryZones: []DeliveryZone{{Zone: "Z", Price: 2, DeliveryTime: 30}}}
	if !reflect.DeepEqual(r, want) {
		t.Fatalf("update returned %+v", r)
	}

	got, err := s.FindByID(1)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("find returned %+v", got)
	}
	if s.List()[0].ID != 1 {
		t.Fatalf("position changed")
	}
	if !reflect.DeepEqual(persisted(t, f)[0], want) {
		t.Fatalf("update not persisted")
	}
}

func TestStore_Update_EmptyZonesRejected(t *testing.T) {
	s, _ := loadedStore(t)
	before, _ := s.FindByID(2)

	_, err := s.Update(context.Background(), 2, "x", []ZoneInput{})

	var verr *ValidationError
	if !errors.As(err, &verr) || !verr.Has("deliveryZones") {
		t.Fatalf("err=%v", err)
	}
	after, _ := s.FindByID(2)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("restaurant changed")
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	s, _ := loadedStore(t)

	_, err := s.Update(context.Background(), 999, "x", zones(zone("z", "1", "1")))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestStore_Delete_NotFound(t *testing.T) {
	s, f := loadedStore(t)

	if err := s.Delete(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
	if len(s.List()) != 6 || f.sets != 1 {
		t.Fatalf("failed delete changed state")
	}
}

func TestStore_Delete_ThenFindAndNoReuse(t *testing.T) {
	s, _ := loadedStore(t)
	ctx := context.Background()

	if err := s.Delete(ctx, 6); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.FindByID(6); !errors.Is(err, ErrNotFound) {
		t.Fatalf("find after delete err=%v", err)
	}

	ids := []int{}
	for _, r := range s.List() {
		ids = append(ids, r.ID)
	}
	if !reflect.DeepEqual(ids, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("remaining order=%v", ids)
	}

	r, err := s.Create(ctx, "again", zones(zone("z", "1", "1")))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.ID == 6 {
		t.Fatalf("deleted id 6 was reissued")
	}
	if r.ID != 7 {
		t.Fatalf("id=%d want 7", r.ID)
	}
}

func TestStore_IDsStayUnique(t *testing.T) {
	s, _ := loadedStore(t)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		r, err := s.Create(ctx, "r", zones(zone("z", "1", "1")))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if i%3 == 0 {
			if err := s.Delete(ctx, r.ID); err != nil {
				t.Fatalf("delete: %v", err)
			}
		}
	}

	seen := map[int]bool{}
	for _, r := range s.List() {
		if seen[r.ID] {
			t.Fatalf("duplicate id %d", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestStore_PersistFailureRollsBack(t *testing.T) {
	s, f := loadedStore(t)
	ctx := context.Background()
	before := s.List()
	f.failSet = kv.ErrQuotaExceeded

	if _, err := s.Create(ctx, "x", zones(zone("z", "1", "1"))); !errors.Is(err, ErrPersistFailure) {
		t.Fatalf("create err=%v", err)
	}
	if _, err := s.Update(ctx, 1, "x", zones(zone("z", "1", "1"))); !errors.Is(err, ErrPersistFailure) {
		t.Fatalf("update err=%v", err)
	}
	err := s.Delete(ctx, 1)
	if !errors.Is(err, ErrPersistFailure) || !errors.Is(err, kv.ErrQuotaExceeded) {
		t.Fatalf("delete err=%v", err)
	}

	if !reflect.DeepEqual(before, s.List()) {
		t.Fatalf("in-memory catalog diverged after failed persists")
	}
	if !reflect.DeepEqual(before, persisted(t, f)) {
		t.Fatalf("persisted catalog changed")
	}

	// the id handed out by the failed create is still free
	f.failSet = nil
	r, err := s.Create(ctx, "x", zones(zone("z", "1", "1")))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.ID != 7 {
		t.Fatalf("id=%d want 7", r.ID)
	}
}

func TestStore_ListReturnsCopies(t *testing.T) {
	s, _ := loadedStore(t)

	list := s.List()
	list[0].Name = "mutated"
	list[0].DeliveryZones[0].Zone = "mutated"

	got, _ := s.FindByID(1)
	if got.Name == "mutated" || got.DeliveryZones[0].Zone == "mutated" {
		t.Fatalf("List exposed internal state")
	}
}

func TestStore_DeletedHighestIDNotReusedAfterRestart(t *testing.T) {
	s, f := loadedStore(t)
	ctx := context.Background()

	if err := s.Delete(ctx, 6); err != nil {
		t.Fatalf("delete: %v", err)
	}

	restarted := NewStore(f, StoreDeps{})
	if _, err := restarted.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	r, err := restarted.Create(ctx, "again", zones(zone("z", "1", "1")))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.ID != 7 {
		t.Fatalf("id=%d want 7", r.ID)
	}

	raw, err := f.MemStore.Get(ctx, DefaultKey+lastIDSuffix)
	if err != nil || string(raw) != "7" {
		t.Fatalf("counter=%q err=%v", raw, err)
	}
}

func TestStore_CatalogWithoutCounterUsesMaxID(t *testing.T) {
	s, f := storeWith(t, []Restaurant{one(3), one(10)})
	ctx := context.Background()

	if err := s.Delete(ctx, 10); err != nil {
		t.Fatalf("delete: %v", err)
	}
	raw, err := f.MemStore.Get(ctx, DefaultKey+lastIDSuffix)
	if err != nil || string(raw) != "10" {
		t.Fatalf("counter after delete=%q err=%v", raw, err)
	}

	restarted := NewStore(f, StoreDeps{})
	if _, err := restarted.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	r, err := restarted.Create(ctx, "x", zones(zone("z", "1", "1")))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.ID != 11 {
		t.Fatalf("id=%d want 11", r.ID)
	}
}

func TestStore_Load_CorruptCounter(t *testing.T) {
	f := newFakeKV()
	ctx := context.Background()
	_ = f.MemStore.Set(ctx, DefaultKey+lastIDSuffix, []byte("lots"))

	s := NewStore(f, StoreDeps{})
	if _, err := s.Load(ctx); !errors.Is(err, ErrStorageCorrupt) {
		t.Fatalf("err=%v want ErrStorageCorrupt", err)
	}

	rs, err := s.Reset(ctx)
	if err != nil || len(rs) != 6 {
		t.Fatalf("reset: %v", err)
	}
	raw, _ := f.MemStore.Get(ctx, DefaultKey+lastIDSuffix)
	if string(raw) != "6" {
		t.Fatalf("counter after reset=%q", raw)
	}
}
