package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/cache"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/database"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/models"
	"gorm.io/gorm"
)

// ListCachePrefix keys every cached listing page. The cache-clear endpoint
// scan-deletes this prefix.
const ListCachePrefix = "warehouses:list:"

// overfetchMultiplier and overfetchSkipFactor widen the store query when the
// space filter is active, since that filter can only run in memory. The wider
// window is a heuristic: under heavy filtering the recomputed totals are
// best-effort.
const (
	overfetchMultiplier = 3
	overfetchSkipFactor = 2
)

type WarehouseService struct {
	db       *database.DB
	cache    cache.Store
	cacheTTL time.Duration
}

func NewWarehouseService(db *database.DB, store cache.Store, cacheTTL time.Duration) *WarehouseService {
	return &WarehouseService{db: db, cache: store, cacheTTL: cacheTTL}
}

// WarehouseFilter is the normalized filter set for warehouse listings. Text
// fields hold OR-groups: one candidate means case-insensitive contains, two
// or more mean case-insensitive equals-any-of. Address is always contains.
// MinSpace/MaxSpace cannot be pushed into the store query because space is
// multi-valued per record; they apply in memory after the fetch.
type WarehouseFilter struct {
	City          []string
	State         []string
	WarehouseType []string
	Zone          []string
	ContactPerson []string
	Compliances   []string
	Address       string

	MinBudget      *float64
	MaxBudget      *float64
	MinClearHeight *float64
	MaxClearHeight *float64

	FireNocAvailable *bool

	MinSpace *int64
	MaxSpace *int64
}

// ParseWarehouseFilter normalizes raw query parameters into a WarehouseFilter.
// Comma-joined values and repeated parameters both contribute candidates;
// duplicates collapse case-insensitively. Malformed numeric bounds are
// silently dropped rather than failing the request.
func ParseWarehouseFilter(params map[string][]string) WarehouseFilter {
	f := WarehouseFilter{
		City:          textCandidates(params["city"]),
		State:         textCandidates(params["state"]),
		WarehouseType: textCandidates(params["warehouseType"]),
		Zone:          textCandidates(params["zone"]),
		ContactPerson: textCandidates(params["contactPerson"]),
		Compliances:   textCandidates(params["compliances"]),

		MinBudget:      floatBound(params, "minBudget"),
		MaxBudget:      floatBound(params, "maxBudget"),
		MinClearHeight: floatBound(params, "minClearHeight"),
		MaxClearHeight: floatBound(params, "maxClearHeight"),

		MinSpace: intBound(params, "minSpace"),
		MaxSpace: intBound(params, "maxSpace"),
	}

	// Address is free-text search: single value, always contains
	if vals := params["address"]; len(vals) > 0 {
		f.Address = strings.TrimSpace(vals[0])
	}

	// Only the literal "true" is truthy; any other present value asks for false
	if vals := params["fireNocAvailable"]; len(vals) > 0 {
		truthy := vals[0] == "true"
		f.FireNocAvailable = &truthy
	}

	return f
}

// textCandidates splits comma-joined and repeated parameters into a candidate
// group, dropping blanks and case-insensitive duplicates.
func textCandidates(vals []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			lower := strings.ToLower(part)
			if seen[lower] {
				continue
			}
			seen[lower] = true
			out = append(out, part)
		}
	}
	return out
}

func floatBound(params map[string][]string, key string) *float64 {
	vals := params[key]
	if len(vals) == 0 {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
	if err != nil {
		return nil
	}
	return &v
}

func intBound(params map[string][]string, key string) *int64 {
	vals := params[key]
	if len(vals) == 0 {
		return nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(vals[0]), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// listCacheKeyPayload fixes the serialization order of the cache key. Struct
// fields marshal in declaration order, so equal filters always produce equal
// JSON regardless of how the query string spelled them.
type listCacheKeyPayload struct {
	City             []string `json:"city,omitempty"`
	State            []string `json:"state,omitempty"`
	WarehouseType    []string `json:"warehouseType,omitempty"`
	Zone             []string `json:"zone,omitempty"`
	ContactPerson    []string `json:"contactPerson,omitempty"`
	Compliances      []string `json:"compliances,omitempty"`
	Address          string   `json:"address,omitempty"`
	MinBudget        *float64 `json:"minBudget,omitempty"`
	MaxBudget        *float64 `json:"maxBudget,omitempty"`
	MinClearHeight   *float64 `json:"minClearHeight,omitempty"`
	MaxClearHeight   *float64 `json:"maxClearHeight,omitempty"`
	FireNocAvailable *bool    `json:"fireNocAvailable,omitempty"`
	MinSpace         *int64   `json:"minSpace,omitempty"`
	MaxSpace         *int64   `json:"maxSpace,omitempty"`
}

// buildListCacheKey derives the cache key for one listing page. The key is
// the exact canonical serialization of the normalized filter, never a hash:
// semantically different filters must never collide.
func buildListCacheKey(page, pageSize int, f WarehouseFilter) string {
	payload := listCacheKeyPayload{
		City:             canonicalGroup(f.City),
		State:            canonicalGroup(f.State),
		WarehouseType:    canonicalGroup(f.WarehouseType),
		Zone:             canonicalGroup(f.Zone),
		ContactPerson:    canonicalGroup(f.ContactPerson),
		Compliances:      canonicalGroup(f.Compliances),
		Address:          strings.ToLower(f.Address),
		MinBudget:        f.MinBudget,
		MaxBudget:        f.MaxBudget,
		MinClearHeight:   f.MinClearHeight,
		MaxClearHeight:   f.MaxClearHeight,
		FireNocAvailable: f.FireNocAvailable,
		MinSpace:         f.MinSpace,
		MaxSpace:         f.MaxSpace,
	}

	raw, _ := json.Marshal(payload)
	return fmt.Sprintf("%sp%d:s%d:%s", ListCachePrefix, page, pageSize, raw)
}

// canonicalGroup lowercases and sorts a candidate group so equals-any-of
// filters key identically whatever order the client sent them in.
func canonicalGroup(vals []string) []string {
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strings.ToLower(v)
	}
	sort.Strings(out)
	return out
}

// WarehouseSummary is one listing row with the amenity relation flattened
// and the photo field decoded.
type WarehouseSummary struct {
	ID                 uint      `json:"id"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	PostalCode         *string   `json:"postalCode"`
	SpaceSqft          []int64   `json:"spaceSqft"`
	ClearHeightFt      *float64  `json:"clearHeightFt"`
	NumDocks           *int      `json:"numDocks"`
	RatePerSqft        *float64  `json:"ratePerSqft"`
	WarehouseType      *string   `json:"warehouseType"`
	Zone               *string   `json:"zone"`
	Compliances        *string   `json:"compliances"`
	ContactPerson      *string   `json:"contactPerson"`
	Photos             []string  `json:"photos"`
	FireNocAvailable   *bool     `json:"fireNocAvailable"`
	FireSafetyMeasures *string   `json:"fireSafetyMeasures"`
	CreatedAt          time.Time `json:"createdAt"`
}

type Pagination struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

type WarehouseListResponse struct {
	Data       []WarehouseSummary `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

// List serves one page of the filtered warehouse listing, consulting the
// cache first. Cache failures degrade to an uncached query and never fail
// the request.
func (s *WarehouseService) List(ctx context.Context, page, pageSize int, filter WarehouseFilter) (*WarehouseListResponse, error) {
	key := buildListCacheKey(page, pageSize, filter)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var response WarehouseListResponse
		if err := json.Unmarshal([]byte(cached), &response); err == nil {
			return &response, nil
		}
		// Corrupt entry: fall through and overwrite it below
	}

	spaceFiltered := filter.MinSpace != nil || filter.MaxSpace != nil

	offset := (page - 1) * pageSize
	limit := pageSize
	if spaceFiltered {
		// Over-fetch so the in-memory space filter has enough candidates to
		// fill the requested page
		offset = (page - 1) * pageSize * overfetchSkipFactor
		if offset < 0 {
			offset = 0
		}
		limit = pageSize * overfetchMultiplier
	}

	var records []models.Warehouse
	var total int64

	// Count and page fetch run in one transaction so both observe the same
	// snapshot; otherwise the pagination metadata can disagree with the page
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := applyStoreFilters(tx.Model(&models.Warehouse{}).Preload("Amenity"), filter)

		if err := query.Count(&total).Error; err != nil {
			return err
		}

		// Fixed order: most recently created first
		return query.Order("id DESC").Offset(offset).Limit(limit).Find(&records).Error
	})
	if err != nil {
		return nil, err
	}

	if spaceFiltered {
		filtered := filterBySpace(records, filter.MinSpace, filter.MaxSpace)
		// Totals recomputed over the filtered candidate set; best-effort when
		// matches exist beyond the over-fetched window
		total = int64(len(filtered))
		records = pageWindow(filtered, page, pageSize)
	}

	data := make([]WarehouseSummary, 0, len(records))
	for i := range records {
		data = append(data, assembleWarehouse(&records[i]))
	}

	response := &WarehouseListResponse{
		Data: data,
		Pagination: Pagination{
			TotalItems:  total,
			TotalPages:  totalPages(total, pageSize),
			CurrentPage: page,
			PageSize:    pageSize,
		},
	}

	if body, err := json.Marshal(response); err == nil {
		s.cache.Set(ctx, key, string(body), s.cacheTTL)
	}

	return response, nil
}

// applyStoreFilters translates the store-expressible part of the filter into
// the query. Space bounds are deliberately absent here.
func applyStoreFilters(query *gorm.DB, f WarehouseFilter) *gorm.DB {
	query = query.Where("is_visible = ?", true)

	query = applyTextFilter(query, "city", f.City)
	query = applyTextFilter(query, "state", f.State)
	query = applyTextFilter(query, "warehouse_type", f.WarehouseType)
	query = applyTextFilter(query, "zone", f.Zone)
	query = applyTextFilter(query, "contact_person", f.ContactPerson)
	query = applyTextFilter(query, "compliances", f.Compliances)

	if f.Address != "" {
		query = query.Where("address ILIKE ?", "%"+f.Address+"%")
	}

	if f.MinBudget != nil {
		query = query.Where("rate_per_sqft >= ?", *f.MinBudget)
	}
	if f.MaxBudget != nil {
		query = query.Where("rate_per_sqft <= ?", *f.MaxBudget)
	}
	if f.MinClearHeight != nil {
		query = query.Where("clear_height_ft >= ?", *f.MinClearHeight)
	}
	if f.MaxClearHeight != nil {
		query = query.Where("clear_height_ft <= ?", *f.MaxClearHeight)
	}

	if f.FireNocAvailable != nil {
		query = query.Where(
			"id IN (SELECT warehouse_id FROM warehouse_amenities WHERE fire_noc_available = ?)",
			*f.FireNocAvailable,
		)
	}

	return query
}

func applyTextFilter(query *gorm.DB, column string, candidates []string) *gorm.DB {
	switch len(candidates) {
	case 0:
		return query
	case 1:
		return query.Where(column+" ILIKE ?", "%"+candidates[0]+"%")
	default:
		lowered := make([]string, len(candidates))
		for i, c := range candidates {
			lowered[i] = strings.ToLower(c)
		}
		return query.Where("LOWER("+column+") IN ?", lowered)
	}
}

// filterBySpace keeps records where any element of the space sequence
// satisfies the active bounds; both bounds set means one element must satisfy
// both at once.
func filterBySpace(records []models.Warehouse, minSpace, maxSpace *int64) []models.Warehouse {
	filtered := make([]models.Warehouse, 0, len(records))
	for i := range records {
		if anySpaceInRange(records[i].SpaceSqft, minSpace, maxSpace) {
			filtered = append(filtered, records[i])
		}
	}
	return filtered
}

func anySpaceInRange(spaces []int64, minSpace, maxSpace *int64) bool {
	for _, sqft := range spaces {
		if minSpace != nil && sqft < *minSpace {
			continue
		}
		if maxSpace != nil && sqft > *maxSpace {
			continue
		}
		return true
	}
	return false
}

// pageWindow re-slices the filtered sequence to the requested page window.
func pageWindow(records []models.Warehouse, page, pageSize int) []models.Warehouse {
	start := (page - 1) * pageSize
	if start >= len(records) {
		return nil
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

func totalPages(total int64, pageSize int) int {
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}

// assembleWarehouse flattens the amenity relation onto the summary and
// decodes the polymorphic photo field.
func assembleWarehouse(w *models.Warehouse) WarehouseSummary {
	summary := WarehouseSummary{
		ID:            w.ID,
		Address:       w.Address,
		City:          w.City,
		State:         w.State,
		PostalCode:    w.PostalCode,
		SpaceSqft:     w.SpaceSqft,
		ClearHeightFt: w.ClearHeightFt,
		NumDocks:      w.NumDocks,
		RatePerSqft:   w.RatePerSqft,
		WarehouseType: w.WarehouseType,
		Zone:          w.Zone,
		Compliances:   w.Compliances,
		ContactPerson: w.ContactPerson,
		Photos:        decodePhotos(w.Photos),
		CreatedAt:     w.CreatedAt,
	}
	if summary.SpaceSqft == nil {
		summary.SpaceSqft = []int64{}
	}
	if w.Amenity != nil {
		summary.FireNocAvailable = w.Amenity.FireNocAvailable
		summary.FireSafetyMeasures = w.Amenity.FireSafetyMeasures
	}
	return summary
}

// decodePhotos handles the polymorphic photo column: empty means no photos,
// something that looks like JSON is decoded (scalar results wrapped, decode
// failures kept verbatim), and any other string is a single photo URL.
func decodePhotos(raw *string) []string {
	if raw == nil || *raw == "" {
		return []string{}
	}

	trimmed := strings.TrimSpace(*raw)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		var list []string
		if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
			return list
		}
		var single string
		if err := json.Unmarshal([]byte(trimmed), &single); err == nil {
			return []string{single}
		}
		return []string{*raw}
	}

	return []string{*raw}
}

// ClearListingCache drops every cached listing page. Unlike the read path,
// errors surface here: the cache is the subject of this operation.
func (s *WarehouseService) ClearListingCache(ctx context.Context) (int64, error) {
	return s.cache.DeleteByPrefix(ctx, ListCachePrefix)
}

// GetByID retrieves one visible warehouse with its amenity
func (s *WarehouseService) GetByID(ctx context.Context, id uint) (*WarehouseSummary, error) {
	var warehouse models.Warehouse
	err := s.db.WithContext(ctx).
		Preload("Amenity").
		Where("is_visible = ?", true).
		First(&warehouse, id).Error
	if err != nil {
		return nil, err
	}

	summary := assembleWarehouse(&warehouse)
	return &summary, nil
}

// Create inserts a warehouse. Listing cache entries are not invalidated;
// they age out within the configured TTL.
func (s *WarehouseService) Create(ctx context.Context, warehouse *models.Warehouse) error {
	return s.db.WithContext(ctx).Create(warehouse).Error
}

// Update applies partial changes to a warehouse
func (s *WarehouseService) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	if err := s.db.WithContext(ctx).First(&warehouse, id).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&warehouse).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &warehouse, nil
}

// Delete soft-deletes a warehouse
func (s *WarehouseService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Warehouse{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
