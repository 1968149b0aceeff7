package address

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
	"github.com/sirawitp/siamshop-backend/pkg/geodata"
	"github.com/sirawitp/siamshop-backend/pkg/logger"
)

const (
	provincesDataset = "provinces"
	districtsDataset = "districts"
)

// Service serves the Thai province/district reference data used by the
// shipping address form, backed by a Redis cache over the public dataset.
type Service interface {
	Provinces(ctx context.Context) ([]geodata.Province, error)
	Districts(ctx context.Context, provinceID int) ([]geodata.District, error)
	Refresh(ctx context.Context) error
}

type datasetSource interface {
	Provinces(ctx context.Context) ([]geodata.Province, error)
	Districts(ctx context.Context) ([]geodata.District, error)
}

type datasetCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type datasetKeyer interface {
	DatasetKey(name string) string
}

type service struct {
	source datasetSource
	cache  datasetCache
	keyer  datasetKeyer
	ttl    time.Duration
	logg   *logger.Logger
}

// NewService wires the address lookup service.
func NewService(source datasetSource, cache datasetCache, keyer datasetKeyer, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("dataset source required")
	}
	if cache == nil || keyer == nil {
		return nil, fmt.Errorf("dataset cache required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive")
	}
	return &service{
		source: source,
		cache:  cache,
		keyer:  keyer,
		ttl:    ttl,
		logg:   logg,
	}, nil
}

func (s *service) Provinces(ctx context.Context) ([]geodata.Province, error) {
	var provinces []geodata.Province
	if s.readCache(ctx, provincesDataset, &provinces) {
		return provinces, nil
	}

	provinces, err := s.source.Provinces(ctx)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, provincesDataset, provinces)
	return provinces, nil
}

func (s *service) Districts(ctx context.Context, provinceID int) ([]geodata.District, error) {
	if provinceID < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "province_id must not be negative")
	}

	var districts []geodata.District
	if !s.readCache(ctx, districtsDataset, &districts) {
		fetched, err := s.source.Districts(ctx)
		if err != nil {
			return nil, err
		}
		s.writeCache(ctx, districtsDataset, fetched)
		districts = fetched
	}

	if provinceID == 0 {
		return districts, nil
	}
	filtered := make([]geodata.District, 0, len(districts))
	for _, d := range districts {
		if d.ProvinceID == provinceID {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

// Refresh re-downloads both datasets and overwrites the cache. The cron
// worker calls this on a schedule so storefront reads stay warm.
func (s *service) Refresh(ctx context.Context) error {
	provinces, err := s.source.Provinces(ctx)
	if err != nil {
		return err
	}
	districts, err := s.source.Districts(ctx)
	if err != nil {
		return err
	}

	if err := s.setCache(ctx, provincesDataset, provinces); err != nil {
		return err
	}
	return s.setCache(ctx, districtsDataset, districts)
}

// readCache reports whether the dataset was served from Redis. A corrupt or
// missing entry is treated as a miss.
func (s *service) readCache(ctx context.Context, name string, out any) bool {
	raw, err := s.cache.Get(ctx, s.keyer.DatasetKey(name))
	if err != nil {
		if err != redislib.Nil && s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("reading %s cache failed: %v", name, err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("decoding cached %s failed: %v", name, err))
		}
		return false
	}
	return true
}

func (s *service) writeCache(ctx context.Context, name string, value any) {
	if err := s.setCache(ctx, name, value); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("caching %s failed: %v", name, err))
	}
}

func (s *service) setCache(ctx context.Context, name string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s dataset: %w", name, err)
	}
	return s.cache.Set(ctx, s.keyer.DatasetKey(name), string(payload), s.ttl)
}
