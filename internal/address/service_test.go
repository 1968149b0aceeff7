package address

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"

	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
	"github.com/sirawitp/siamshop-backend/pkg/geodata"
)

type stubSource struct {
	provinces     []geodata.Province
	districts     []geodata.District
	provinceCalls int
	districtCalls int
	err           error
}

func (s *stubSource) Provinces(ctx context.Context) ([]geodata.Province, error) {
	s.provinceCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.provinces, nil
}

func (s *stubSource) Districts(ctx context.Context) ([]geodata.District, error) {
	s.districtCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.districts, nil
}

type memoryCache struct {
	values map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", redislib.Nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *memoryCache) DatasetKey(name string) string {
	return "ss:geodata:" + name
}

func sampleDatasets() ([]geodata.Province, []geodata.District) {
	provinces := []geodata.Province{
		{ID: 1, NameTH: "กรุงเทพมหานคร", NameEN: "Bangkok"},
		{ID: 2, NameTH: "เชียงใหม่", NameEN: "Chiang Mai"},
	}
	districts := []geodata.District{
		{ID: 10, ProvinceID: 1, NameTH: "คลองเตย", NameEN: "Khlong Toei"},
		{ID: 11, ProvinceID: 1, NameTH: "บางรัก", NameEN: "Bang Rak"},
		{ID: 20, ProvinceID: 2, NameTH: "เมืองเชียงใหม่", NameEN: "Mueang Chiang Mai"},
	}
	return provinces, districts
}

func newAddressService(t *testing.T, source *stubSource, cache *memoryCache) Service {
	t.Helper()
	svc, err := NewService(source, cache, cache, time.Hour, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestProvincesFetchesOnceThenServesFromCache(t *testing.T) {
	provinces, districts := sampleDatasets()
	source := &stubSource{provinces: provinces, districts: districts}
	cache := newMemoryCache()
	svc := newAddressService(t, source, cache)

	first, err := svc.Provinces(context.Background())
	if err != nil {
		t.Fatalf("Provinces: %v", err)
	}
	if len(first) != 2 || source.provinceCalls != 1 {
		t.Fatalf("expected one fetch, got %d calls", source.provinceCalls)
	}

	second, err := svc.Provinces(context.Background())
	if err != nil {
		t.Fatalf("Provinces (cached): %v", err)
	}
	if source.provinceCalls != 1 {
		t.Fatalf("expected cached read, got %d fetches", source.provinceCalls)
	}
	if second[0].NameEN != "Bangkok" {
		t.Fatalf("unexpected cached payload: %+v", second)
	}
}

func TestDistrictsFiltersByProvince(t *testing.T) {
	provinces, districts := sampleDatasets()
	source := &stubSource{provinces: provinces, districts: districts}
	svc := newAddressService(t, source, newMemoryCache())

	got, err := svc.Districts(context.Background(), 1)
	if err != nil {
		t.Fatalf("Districts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 districts for province 1, got %d", len(got))
	}
	for _, d := range got {
		if d.ProvinceID != 1 {
			t.Fatalf("unexpected district: %+v", d)
		}
	}

	all, err := svc.Districts(context.Background(), 0)
	if err != nil {
		t.Fatalf("Districts (all): %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected full dataset, got %d", len(all))
	}
	if source.districtCalls != 1 {
		t.Fatalf("expected dataset fetched once, got %d", source.districtCalls)
	}
}

func TestDistrictsRejectsNegativeProvinceID(t *testing.T) {
	source := &stubSource{}
	svc := newAddressService(t, source, newMemoryCache())

	_, err := svc.Districts(context.Background(), -1)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if source.districtCalls != 0 {
		t.Fatalf("expected no fetch")
	}
}

func TestCorruptCacheFallsBackToFetch(t *testing.T) {
	provinces, districts := sampleDatasets()
	source := &stubSource{provinces: provinces, districts: districts}
	cache := newMemoryCache()
	cache.values[cache.DatasetKey(provincesDataset)] = "{not json"
	svc := newAddressService(t, source, cache)

	got, err := svc.Provinces(context.Background())
	if err != nil {
		t.Fatalf("Provinces: %v", err)
	}
	if len(got) != 2 || source.provinceCalls != 1 {
		t.Fatalf("expected fallback fetch, calls=%d", source.provinceCalls)
	}
}

func TestRefreshOverwritesBothDatasets(t *testing.T) {
	provinces, districts := sampleDatasets()
	source := &stubSource{provinces: provinces, districts: districts}
	cache := newMemoryCache()
	svc := newAddressService(t, source, cache)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	var cachedProvinces []geodata.Province
	if err := json.Unmarshal([]byte(cache.values[cache.DatasetKey(provincesDataset)]), &cachedProvinces); err != nil {
		t.Fatalf("decode cached provinces: %v", err)
	}
	if len(cachedProvinces) != 2 {
		t.Fatalf("expected provinces cached, got %d", len(cachedProvinces))
	}
	var cachedDistricts []geodata.District
	if err := json.Unmarshal([]byte(cache.values[cache.DatasetKey(districtsDataset)]), &cachedDistricts); err != nil {
		t.Fatalf("decode cached districts: %v", err)
	}
	if len(cachedDistricts) != 3 {
		t.Fatalf("expected districts cached, got %d", len(cachedDistricts))
	}
}

func TestSourceErrorPropagates(t *testing.T) {
	source := &stubSource{err: pkgerrors.New(pkgerrors.CodeDependency, "dataset unavailable")}
	svc := newAddressService(t, source, newMemoryCache())

	_, err := svc.Provinces(context.Background())
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
