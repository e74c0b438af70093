package weatherjoin

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"nearby-weather/internal/config"
	"nearby-weather/internal/geoquery"
	"nearby-weather/internal/providers/nws"
	"nearby-weather/internal/providers/openmeteo"
	"nearby-weather/internal/timezone"
	"nearby-weather/internal/types"
)

// Provider is a single weather source. Providers are tried in chain order;
// the first success wins.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, coords types.Coords) (types.WeatherSnapshot, error)
}

// EnrichedPoi is a ranked POI with its weather snapshot attached.
type EnrichedPoi struct {
	geoquery.RankedPoi
	Weather types.WeatherSnapshot `json:"weather"`
}

// Service enriches a ranked POI list with current weather. A weather failure
// never removes a POI from the list; the whole chain failing yields a
// snapshot with status unavailable.
type Service interface {
	Enrich(ctx context.Context, ranked []geoquery.RankedPoi) []EnrichedPoi
}

type joinService struct {
	chain           []Provider
	perItemTimeout  time.Duration
	concurrency     int
	timezoneService timezone.Service
	logger          *slog.Logger
}

// NewService creates a weather join service with the real provider chain:
// Open-Meteo first, NWS as the fallback.
func NewService(cfg *config.Config, logger *slog.Logger) (Service, error) {
	tzSvc, err := timezone.NewService()
	if err != nil {
		return nil, err
	}
	chain := []Provider{
		openmeteo.NewClient(logger),
		nws.NewClient(logger),
	}
	return NewServiceWithChain(chain, cfg.Weather.PerItemTimeout, cfg.Weather.ConcurrencyLimit, tzSvc, logger), nil
}

// NewServiceWithChain creates a weather join service with a custom provider
// chain. This is useful for testing with deterministic fakes. The timezone
// service may be nil, in which case snapshots carry no zone.
func NewServiceWithChain(
	chain []Provider,
	perItemTimeout time.Duration,
	concurrencyLimit int,
	timezoneService timezone.Service,
	logger *slog.Logger,
) Service {
	return &joinService{
		chain:           chain,
		perItemTimeout:  perItemTimeout,
		concurrency:     concurrencyLimit,
		timezoneService: timezoneService,
		logger:          logger.With("component", "weather-join"),
	}
}

// Enrich fans the provider calls out over a fixed-size worker pool. The
// output list has exactly the input's length and ordering; the input is never
// mutated. Cancelling ctx marks the remaining POIs unavailable instead of
// failing the call.
func (s *joinService) Enrich(ctx context.Context, ranked []geoquery.RankedPoi) []EnrichedPoi {
	out := make([]EnrichedPoi, len(ranked))
	if len(ranked) == 0 {
		return out
	}

	workers := s.concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(ranked) {
		workers = len(ranked)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = EnrichedPoi{
					RankedPoi: ranked[i],
					Weather:   s.fetchWithFallback(ctx, ranked[i].Poi.Coordinates),
				}
			}
		}()
	}

	for i := range ranked {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}

// fetchWithFallback walks the provider chain for one POI. A timeout counts as
// a failure and moves on to the next provider; the same provider is never
// retried within one lookup.
func (s *joinService) fetchWithFallback(ctx context.Context, coords types.Coords) types.WeatherSnapshot {
	for _, provider := range s.chain {
		if ctx.Err() != nil {
			break
		}

		callCtx, cancel := context.WithTimeout(ctx, s.perItemTimeout)
		snapshot, err := provider.Fetch(callCtx, coords)
		cancel()
		if err != nil {
			s.logger.Debug("provider failed, trying next in chain",
				"provider", provider.Name(),
				"latitude", coords.Latitude,
				"longitude", coords.Longitude,
				"error", err,
			)
			continue
		}

		snapshot.Source = provider.Name()
		snapshot.Status = types.SnapshotOK
		if snapshot.FetchedAt.IsZero() {
			snapshot.FetchedAt = time.Now().UTC()
		}
		if s.timezoneService != nil {
			if zone, tzErr := s.timezoneService.GetTimezone(coords.Latitude, coords.Longitude); tzErr == nil {
				snapshot.Timezone = zone
			}
		}
		return snapshot
	}

	s.logger.Debug("all weather providers exhausted",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
	)
	return types.UnavailableSnapshot()
}
