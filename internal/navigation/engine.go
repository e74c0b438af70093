package navigation

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"

	"nearby-weather/internal/config"
	"nearby-weather/internal/geoquery"
	"nearby-weather/internal/poisource"
	"nearby-weather/internal/types"
	"nearby-weather/internal/viewport"
	"nearby-weather/internal/weatherjoin"
)

// Op is a typed navigation command dispatched by the presentation layer.
type Op string

const (
	OpCloser  Op = "closer"
	OpFarther Op = "farther"
	OpExpand  Op = "expand"
)

var (
	// ErrStaleCursor is returned when a navigation request carries a
	// generation that no longer matches the active query.
	ErrStaleCursor = errors.New("cursor generation is stale")
	// ErrUnknownOp is returned for a navigation command outside the closed set.
	ErrUnknownOp = errors.New("unknown navigation op")
	// ErrUnknownCategory is returned for a filter outside the category enum.
	ErrUnknownCategory = errors.New("unknown POI category")
)

// QueryRequest starts a new search from an origin. Zero band size or max
// radius falls back to the configured defaults.
type QueryRequest struct {
	Origin         types.Coords
	Category       types.Category
	BandSizeMiles  float64
	MaxRadiusMiles float64
}

// QueryResult is the fresh cursor plus its backing ranked, enriched list.
type QueryResult struct {
	Cursor  Cursor                    `json:"cursor"`
	Results []weatherjoin.EnrichedPoi `json:"results"`
}

// NavigateRequest applies one cursor operation. The viewport bounds, when
// supplied, feed the recenter decision.
type NavigateRequest struct {
	Generation int64
	Op         Op
	Viewport   types.Bounds
}

// NavigateResult carries the updated cursor, the POI now under it, and the
// boundary and recenter signals. Results is populated only when expansion
// changed the backing list.
type NavigateResult struct {
	Cursor        Cursor                      `json:"cursor"`
	Results       []weatherjoin.EnrichedPoi   `json:"results,omitempty"`
	Current       *weatherjoin.EnrichedPoi    `json:"current,omitempty"`
	NoMoreResults bool                        `json:"no_more_results"`
	Recenter      *viewport.RecenterDirective `json:"recenter,omitempty"`
}

// Engine owns the query lifecycle: it validates requests, ranks and enriches
// candidates, and serves cursor operations against the active session. Each
// query gets a monotonically increasing generation; results belonging to a
// superseded generation are discarded, never applied.
type Engine struct {
	source   poisource.Source
	enricher weatherjoin.Service
	cfg      *config.Config
	logger   *slog.Logger

	mu             sync.Mutex
	nextGen        int64
	cancelInFlight context.CancelFunc
	session        *session
}

type session struct {
	gen     int64
	machine *Machine
	state   State
	results []weatherjoin.EnrichedPoi
}

func NewEngine(source poisource.Source, enricher weatherjoin.Service, cfg *config.Config, logger *slog.Logger) *Engine {
	return &Engine{
		source:   source,
		enricher: enricher,
		cfg:      cfg,
		logger:   logger.With("component", "navigation-engine"),
	}
}

// NewQuery replaces the active session with a fresh one. Any in-flight
// enrichment for the previous query is cancelled first; its late results are
// dropped by the generation check when they arrive.
func (e *Engine) NewQuery(ctx context.Context, req QueryRequest) (*QueryResult, error) {
	if err := req.Origin.Validate(); err != nil {
		return nil, err
	}
	if !req.Category.Valid() {
		return nil, ErrUnknownCategory
	}

	bandSize := req.BandSizeMiles
	if bandSize <= 0 {
		bandSize = e.cfg.Search.BandSizeMiles
	}
	maxRadius := req.MaxRadiusMiles
	if maxRadius <= 0 {
		maxRadius = e.cfg.Search.MaxRadiusMiles
	}
	if bandSize <= 0 || maxRadius <= 0 {
		return nil, geoquery.ErrInvalidSearchParams
	}

	qctx, cancel := context.WithTimeout(ctx, e.cfg.Weather.QueryTimeout)
	defer cancel()

	e.mu.Lock()
	e.nextGen++
	gen := e.nextGen
	if e.cancelInFlight != nil {
		e.cancelInFlight()
	}
	e.cancelInFlight = cancel
	e.session = nil
	e.mu.Unlock()

	candidates, err := e.source.ListPOIs(qctx, types.Bounds{})
	if err != nil {
		return nil, err
	}
	if req.Category != "" {
		filtered := candidates[:0:0]
		for _, poi := range candidates {
			if poi.Category == req.Category {
				filtered = append(filtered, poi)
			}
		}
		candidates = filtered
	}

	origin := req.Origin
	rank := func(radius float64) ([]geoquery.RankedPoi, error) {
		return geoquery.Rank(origin, candidates, radius, bandSize)
	}

	initialRadius := initialRadius(bandSize, e.cfg.Search.MinRadiusMiles, maxRadius)
	ranked, err := rank(initialRadius)
	if err != nil {
		return nil, err
	}

	results := e.enricher.Enrich(qctx, ranked)

	cursor := Cursor{
		Generation:    gen,
		Index:         0,
		CurrentRadius: initialRadius,
		Count:         len(ranked),
		CanExpand:     initialRadius < maxRadius,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.nextGen != gen {
		// A newer query replaced this one while it was enriching.
		e.logger.Debug("discarding results for superseded query", "generation", gen)
		return nil, ErrStaleCursor
	}
	e.cancelInFlight = nil
	e.session = &session{
		gen:     gen,
		machine: NewMachine(bandSize, maxRadius, rank),
		state:   State{Cursor: cursor, Ranked: ranked},
		results: results,
	}

	e.logger.Debug("new query",
		"generation", gen,
		"count", cursor.Count,
		"radius_miles", cursor.CurrentRadius,
		"can_expand", cursor.CanExpand,
	)

	return &QueryResult{Cursor: cursor, Results: results}, nil
}

// Navigate applies one cursor operation to the active session and returns the
// replacement cursor. When expansion reveals new POIs they are enriched and
// appended; the previously-visited prefix keeps its order and its snapshots.
func (e *Engine) Navigate(ctx context.Context, req NavigateRequest) (*NavigateResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil || s.gen != req.Generation {
		return nil, ErrStaleCursor
	}

	prevLen := len(s.state.Ranked)
	var (
		newState State
		noMore   bool
		err      error
	)
	switch req.Op {
	case OpCloser:
		newState = s.machine.Closer(s.state)
	case OpFarther:
		newState, noMore, err = s.machine.Farther(s.state)
	case OpExpand:
		newState, noMore, err = s.machine.Expand(s.state)
	default:
		return nil, ErrUnknownOp
	}
	if err != nil {
		return nil, err
	}

	results := s.results
	listChanged := len(newState.Ranked) != prevLen
	if listChanged {
		qctx, cancel := context.WithTimeout(ctx, e.cfg.Weather.QueryTimeout)
		suffix := e.enricher.Enrich(qctx, newState.Ranked[prevLen:])
		cancel()
		results = append(append([]weatherjoin.EnrichedPoi{}, s.results...), suffix...)
	}

	newState.Cursor.Generation = s.gen
	s.state = newState
	s.results = results

	res := &NavigateResult{
		Cursor:        newState.Cursor,
		NoMoreResults: noMore,
	}
	if listChanged {
		res.Results = results
	}
	if newState.Cursor.Count > 0 {
		current := results[newState.Cursor.Index]
		res.Current = &current
		res.Recenter = viewport.ShouldRecenter(req.Viewport, current.Poi.Coordinates)
	}
	return res, nil
}

// initialRadius is the smallest band multiple covering the configured minimum
// radius, capped at the query's max radius.
func initialRadius(bandSize, minRadius, maxRadius float64) float64 {
	r := bandSize
	if minRadius > r {
		r = math.Ceil(minRadius/bandSize) * bandSize
	}
	if r > maxRadius {
		r = maxRadius
	}
	return r
}
