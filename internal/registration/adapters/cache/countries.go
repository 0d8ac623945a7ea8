package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"regform/internal/registration/domain/entities"
	"regform/internal/registration/ports/cache"
	"regform/internal/registration/ports/gateway"
	"regform/pkg/logger"
)

// CountriesKey - ключ списка стран в кэше.
const CountriesKey = "countries:list"

const (
	LogCountriesCacheHit      = "countries served from cache"
	LogCountriesCacheMiss     = "countries cache miss"
	LogCountriesCacheDegraded = "countries cache unavailable, using origin"
	LogCountriesCacheCorrupt  = "countries cache entry is corrupt, dropping it"
)

// CountrySource оборачивает источник стран кэшем. Одновременные промахи
// схлопываются в один запрос к источнику. Ошибки кэша не мешают загрузке.
// Неудачная загрузка в кэш не попадает.
type CountrySource struct {
	origin gateway.CountrySource
	cache  cache.Cache
	ttl    time.Duration
	group  singleflight.Group
}

var _ gateway.CountrySource = (*CountrySource)(nil)

func NewCountrySource(origin gateway.CountrySource, c cache.Cache, ttl time.Duration) *CountrySource {
	return &CountrySource{origin: origin, cache: c, ttl: ttl}
}

func (s *CountrySource) FetchCountries(ctx context.Context) ([]entities.Country, error) {
	log := logger.Log(ctx).With(zap.String("key", CountriesKey))

	if cached, ok := s.lookup(ctx, log); ok {
		log.Debug(ctx, LogCountriesCacheHit, zap.Int("count", len(cached)))
		return cached, nil
	}
	log.Debug(ctx, LogCountriesCacheMiss)

	v, err, _ := s.group.Do(CountriesKey, func() (any, error) {
		countries, err := s.origin.FetchCountries(ctx)
		if err != nil {
			return nil, err
		}
		s.store(ctx, log, countries)
		return countries, nil
	})
	if err != nil {
		return nil, err
	}

	countries, _ := v.([]entities.Country)
	return append([]entities.Country(nil), countries...), nil
}

func (s *CountrySource) lookup(ctx context.Context, log *logger.Logger) ([]entities.Country, bool) {
	raw, err := s.cache.Get(ctx, CountriesKey)
	if err != nil {
		log.Warn(ctx, LogCountriesCacheDegraded, zap.Error(err))
		return nil, false
	}
	if raw == "" {
		return nil, false
	}

	var countries []entities.Country
	if err := json.Unmarshal([]byte(raw), &countries); err != nil {
		log.Warn(ctx, LogCountriesCacheCorrupt, zap.Error(err))
		_ = s.cache.Delete(ctx, CountriesKey)
		return nil, false
	}

	return countries, true
}

func (s *CountrySource) store(ctx context.Context, log *logger.Logger, countries []entities.Country) {
	raw, err := json.Marshal(countries)
	if err != nil {
		log.Warn(ctx, LogCountriesCacheDegraded, zap.Error(fmt.Errorf("marshal countries: %w", err)))
		return
	}
	if err := s.cache.Set(ctx, CountriesKey, string(raw), s.ttl); err != nil {
		log.Warn(ctx, LogCountriesCacheDegraded, zap.Error(err))
	}
}
