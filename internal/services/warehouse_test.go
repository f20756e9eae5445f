package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/models"
)

// fakeStore substitutes the Redis-backed cache in tests
type fakeStore struct {
	data      map[string]string
	setCalls  int
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, bool) {
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeStore) Set(ctx context.Context, key, value string, ttl time.Duration) {
	f.setCalls++
	f.data[key] = value
}

func (f *fakeStore) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	var n int64
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			delete(f.data, k)
			n++
		}
	}
	return n, nil
}

func TestParseWarehouseFilterTextCandidates(t *testing.T) {
	params := map[string][]string{
		"city":  {"Mumbai, Pune", "Delhi", "mumbai"},
		"state": {""},
		"zone":  {"North"},
	}

	f := ParseWarehouseFilter(params)

	if len(f.City) != 3 {
		t.Fatalf("expected 3 city candidates, got %d: %v", len(f.City), f.City)
	}
	if f.City[0] != "Mumbai" || f.City[1] != "Pune" || f.City[2] != "Delhi" {
		t.Errorf("unexpected city candidates: %v", f.City)
	}
	if len(f.State) != 0 {
		t.Errorf("blank state should yield no candidates, got %v", f.State)
	}
	if len(f.Zone) != 1 || f.Zone[0] != "North" {
		t.Errorf("unexpected zone candidates: %v", f.Zone)
	}
}

func TestParseWarehouseFilterAddressSingleValue(t *testing.T) {
	params := map[string][]string{
		"address": {"MIDC Industrial, Phase 2", "ignored second value"},
	}

	f := ParseWarehouseFilter(params)

	// Address is free-text: no comma splitting, first value only
	if f.Address != "MIDC Industrial, Phase 2" {
		t.Errorf("unexpected address: %q", f.Address)
	}
}

func TestParseWarehouseFilterNumericBounds(t *testing.T) {
	params := map[string][]string{
		"minBudget":      {"12.5"},
		"maxBudget":      {"abc"},
		"minClearHeight": {" 30 "},
		"minSpace":       {"5000"},
		"maxSpace":       {"12x00"},
	}

	f := ParseWarehouseFilter(params)

	if f.MinBudget == nil || *f.MinBudget != 12.5 {
		t.Errorf("minBudget not parsed: %v", f.MinBudget)
	}
	if f.MaxBudget != nil {
		t.Errorf("malformed maxBudget should be dropped, got %v", *f.MaxBudget)
	}
	if f.MinClearHeight == nil || *f.MinClearHeight != 30 {
		t.Errorf("minClearHeight not parsed: %v", f.MinClearHeight)
	}
	if f.MinSpace == nil || *f.MinSpace != 5000 {
		t.Errorf("minSpace not parsed: %v", f.MinSpace)
	}
	if f.MaxSpace != nil {
		t.Errorf("malformed maxSpace should be dropped, got %v", *f.MaxSpace)
	}
}

func TestParseWarehouseFilterFireNoc(t *testing.T) {
	f := ParseWarehouseFilter(map[string][]string{"fireNocAvailable": {"true"}})
	if f.FireNocAvailable == nil || !*f.FireNocAvailable {
		t.Errorf("expected fireNocAvailable=true")
	}

	f = ParseWarehouseFilter(map[string][]string{"fireNocAvailable": {"yes"}})
	if f.FireNocAvailable == nil || *f.FireNocAvailable {
		t.Errorf("non-true value should request false")
	}

	f = ParseWarehouseFilter(map[string][]string{})
	if f.FireNocAvailable != nil {
		t.Errorf("absent parameter should leave filter unset")
	}
}

func TestBuildListCacheKeyOrderIndependence(t *testing.T) {
	a := ParseWarehouseFilter(map[string][]string{"city": {"Mumbai,Delhi"}})
	b := ParseWarehouseFilter(map[string][]string{"city": {"delhi", "MUMBAI"}})

	keyA := buildListCacheKey(1, 10, a)
	keyB := buildListCacheKey(1, 10, b)
	if keyA != keyB {
		t.Errorf("equivalent filters produced different keys:\n%s\n%s", keyA, keyB)
	}

	c := ParseWarehouseFilter(map[string][]string{"city": {"Mumbai,Delhi,Pune"}})
	if keyA == buildListCacheKey(1, 10, c) {
		t.Errorf("different filters must not collide")
	}
	if keyA == buildListCacheKey(2, 10, a) {
		t.Errorf("different pages must not collide")
	}
	if !strings.HasPrefix(keyA, ListCachePrefix) {
		t.Errorf("key missing listing prefix: %s", keyA)
	}
}

func TestFilterBySpaceAnyElementInRange(t *testing.T) {
	records := []models.Warehouse{
		{ID: 1, SpaceSqft: models.Int64List{100, 500}},
		{ID: 2, SpaceSqft: models.Int64List{600}},
		{ID: 3, SpaceSqft: models.Int64List{50}},
	}

	minSpace := int64(200)
	maxSpace := int64(550)
	filtered := filterBySpace(records, &minSpace, &maxSpace)

	if len(filtered) != 1 || filtered[0].ID != 1 {
		t.Fatalf("expected only record 1, got %v", filtered)
	}

	// Single bound: min only
	filtered = filterBySpace(records, &minSpace, nil)
	if len(filtered) != 2 {
		t.Errorf("min-only bound should match records 1 and 2, got %d", len(filtered))
	}

	// Empty space sequence never matches
	filtered = filterBySpace([]models.Warehouse{{ID: 4}}, &minSpace, nil)
	if len(filtered) != 0 {
		t.Errorf("record without space values should not match")
	}
}

func TestPageWindow(t *testing.T) {
	records := make([]models.Warehouse, 25)
	for i := range records {
		records[i].ID = uint(i + 1)
	}

	page1 := pageWindow(records, 1, 10)
	if len(page1) != 10 || page1[0].ID != 1 {
		t.Errorf("unexpected first page: len=%d", len(page1))
	}

	page3 := pageWindow(records, 3, 10)
	if len(page3) != 5 || page3[0].ID != 21 {
		t.Errorf("unexpected last page: len=%d", len(page3))
	}

	if got := pageWindow(records, 4, 10); got != nil {
		t.Errorf("out-of-range page should be empty, got %d records", len(got))
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.pageSize); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.pageSize, got, tc.want)
		}
	}
}

func TestDecodePhotos(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	if got := decodePhotos(nil); len(got) != 0 {
		t.Errorf("nil photo should decode to empty slice, got %v", got)
	}
	if got := decodePhotos(strPtr("")); len(got) != 0 {
		t.Errorf("empty photo should decode to empty slice, got %v", got)
	}

	got := decodePhotos(strPtr("http://x/a.jpg"))
	if len(got) != 1 || got[0] != "http://x/a.jpg" {
		t.Errorf("bare URL should wrap verbatim, got %v", got)
	}

	got = decodePhotos(strPtr(`["a.jpg","b.jpg"]`))
	if len(got) != 2 || got[0] != "a.jpg" || got[1] != "b.jpg" {
		t.Errorf("JSON array should decode elementwise, got %v", got)
	}

	got = decodePhotos(strPtr("{not json"))
	if len(got) != 1 || got[0] != "{not json" {
		t.Errorf("malformed JSON should fall back to raw value, got %v", got)
	}
}

func TestAssembleWarehouseFlattensAmenity(t *testing.T) {
	noc := true
	measures := "sprinklers, hydrants"
	photos := `["a.jpg"]`
	w := models.Warehouse{
		ID:        7,
		Address:   "Plot 12, MIDC",
		City:      "Pune",
		State:     "Maharashtra",
		SpaceSqft: models.Int64List{5000, 12000},
		Photos:    &photos,
		Amenity: &models.WarehouseAmenity{
			WarehouseID:        7,
			FireNocAvailable:   &noc,
			FireSafetyMeasures: &measures,
		},
	}

	summary := assembleWarehouse(&w)

	if summary.FireNocAvailable == nil || !*summary.FireNocAvailable {
		t.Errorf("amenity flag not flattened")
	}
	if summary.FireSafetyMeasures == nil || *summary.FireSafetyMeasures != measures {
		t.Errorf("amenity text not flattened")
	}
	if len(summary.Photos) != 1 || summary.Photos[0] != "a.jpg" {
		t.Errorf("photos not decoded: %v", summary.Photos)
	}

	// Absent relation: both fields stay nil, never an error
	bare := models.Warehouse{ID: 8, SpaceSqft: nil}
	summary = assembleWarehouse(&bare)
	if summary.FireNocAvailable != nil || summary.FireSafetyMeasures != nil {
		t.Errorf("missing amenity should leave fields nil")
	}
	if summary.SpaceSqft == nil || len(summary.SpaceSqft) != 0 {
		t.Errorf("nil space should serialize as empty slice")
	}
	if len(summary.Photos) != 0 {
		t.Errorf("missing photos should decode to empty slice")
	}
}

func TestListServesFromCacheWithoutStoreQuery(t *testing.T) {
	store := newFakeStore()
	// db deliberately nil: touching the store on a cache hit would panic
	svc := NewWarehouseService(nil, store, time.Minute)

	filter := ParseWarehouseFilter(map[string][]string{"city": {"Pune"}})
	cached := WarehouseListResponse{
		Data: []WarehouseSummary{{ID: 42, City: "Pune", SpaceSqft: []int64{5000}, Photos: []string{}}},
		Pagination: Pagination{
			TotalItems: 1, TotalPages: 1, CurrentPage: 1, PageSize: 10,
		},
	}
	body, err := json.Marshal(&cached)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	store.data[buildListCacheKey(1, 10, filter)] = string(body)

	response, err := svc.List(context.Background(), 1, 10, filter)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(response.Data) != 1 || response.Data[0].ID != 42 {
		t.Fatalf("unexpected cached response: %+v", response)
	}
	if response.Pagination.TotalItems != 1 {
		t.Errorf("pagination lost on cache hit: %+v", response.Pagination)
	}
	if store.setCalls != 0 {
		t.Errorf("cache hit should not rewrite the entry")
	}
}

func TestClearListingCache(t *testing.T) {
	store := newFakeStore()
	store.data[ListCachePrefix+"p1:s10:{}"] = "{}"
	store.data[ListCachePrefix+"p2:s10:{}"] = "{}"
	store.data["other:key"] = "{}"

	svc := NewWarehouseService(nil, store, time.Minute)

	cleared, err := svc.ClearListingCache(context.Background())
	if err != nil {
		t.Fatalf("ClearListingCache failed: %v", err)
	}
	if cleared != 2 {
		t.Errorf("expected 2 cleared keys, got %d", cleared)
	}
	if _, ok := store.data["other:key"]; !ok {
		t.Errorf("unrelated keys must survive a prefix clear")
	}
}

func TestClearListingCacheSurfacesErrors(t *testing.T) {
	store := newFakeStore()
	store.deleteErr = errors.New("connection refused")

	svc := NewWarehouseService(nil, store, time.Minute)

	if _, err := svc.ClearListingCache(context.Background()); err == nil {
		t.Fatalf("cache clear must surface backend errors")
	}
}
