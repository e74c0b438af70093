package navigation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"nearby-weather/internal/config"
	"nearby-weather/internal/poisource"
	"nearby-weather/internal/types"
	"nearby-weather/internal/viewport"
	"nearby-weather/internal/weatherjoin"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingProvider always succeeds and records how many fetches it served.
type countingProvider struct {
	mu    sync.Mutex
	calls int
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Fetch(_ context.Context, _ types.Coords) (types.WeatherSnapshot, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	return types.NewWeatherSnapshot(55, 1, 0.1, 7), nil
}

func (p *countingProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func testConfig() *config.Config {
	return &config.Config{
		Search: config.SearchConfig{
			BandSizeMiles:  30,
			MaxRadiusMiles: 60,
			MinRadiusMiles: 30,
		},
		Weather: config.WeatherConfig{
			PerItemTimeout:   50 * time.Millisecond,
			QueryTimeout:     time.Second,
			ConcurrencyLimit: 4,
		},
	}
}

func newTestEngine(pois []types.PointOfInterest) (*Engine, *countingProvider) {
	provider := &countingProvider{}
	enricher := weatherjoin.NewServiceWithChain(
		[]weatherjoin.Provider{provider}, 50*time.Millisecond, 4, nil, testLogger())
	return NewEngine(poisource.NewStatic(pois), enricher, testConfig(), testLogger()), provider
}

func scenarioPois(origin types.Coords) []types.PointOfInterest {
	return []types.PointOfInterest{
		poiAtMiles("p1", origin, 5),
		poiAtMiles("p2", origin, 12),
		poiAtMiles("p3", origin, 28),
		poiAtMiles("p4", origin, 31),
		poiAtMiles("p5", origin, 59.9),
	}
}

func TestEngineQueryThenWalkToBoundary(t *testing.T) {
	origin := types.NewCoords(44.98, -93.27)
	engine, provider := newTestEngine(scenarioPois(origin))
	ctx := context.Background()

	qr, err := engine.NewQuery(ctx, QueryRequest{Origin: origin})
	if err != nil {
		t.Fatalf("NewQuery failed: %v", err)
	}
	if qr.Cursor.Count != 3 || qr.Cursor.CurrentRadius != 30 || !qr.Cursor.CanExpand {
		t.Fatalf("initial cursor = %+v, want count 3, radius 30, canExpand", qr.Cursor)
	}
	if len(qr.Results) != 3 {
		t.Fatalf("initial results = %d POIs, want 3", len(qr.Results))
	}
	for i, r := range qr.Results {
		if r.Weather.Status != types.SnapshotOK {
			t.Errorf("result %d weather status = %s, want ok", i, r.Weather.Status)
		}
	}
	if got := provider.count(); got != 3 {
		t.Errorf("provider served %d fetches for the initial query, want 3", got)
	}

	gen := qr.Cursor.Generation
	navigate := func(op Op) *NavigateResult {
		t.Helper()
		res, err := engine.Navigate(ctx, NavigateRequest{Generation: gen, Op: op})
		if err != nil {
			t.Fatalf("Navigate(%s) failed: %v", op, err)
		}
		return res
	}

	// Two steps out stay inside the first band
	navigate(OpFarther)
	res := navigate(OpFarther)
	if res.Cursor.Index != 2 || res.NoMoreResults {
		t.Fatalf("after two farther steps: %+v", res)
	}
	if res.Results != nil {
		t.Error("Results should be omitted when the backing list is unchanged")
	}
	if res.Current == nil || res.Current.Poi.ID != "p3" {
		t.Fatalf("current = %+v, want p3", res.Current)
	}

	// The third step expands to 60 miles and lands on the first new POI
	res = navigate(OpFarther)
	if res.NoMoreResults {
		t.Fatal("expansion should have revealed new POIs")
	}
	if res.Cursor.CurrentRadius != 60 || res.Cursor.Count != 5 || res.Cursor.CanExpand {
		t.Fatalf("post-expansion cursor = %+v", res.Cursor)
	}
	if res.Cursor.Index != 3 || res.Current.Poi.ID != "p4" {
		t.Fatalf("expansion landed on index %d (%s), want 3 (p4)", res.Cursor.Index, res.Current.Poi.ID)
	}
	if len(res.Results) != 5 {
		t.Fatalf("post-expansion results = %d POIs, want 5", len(res.Results))
	}
	// Only the two new POIs get fetched; the visited prefix keeps its snapshots
	if got := provider.count(); got != 5 {
		t.Errorf("provider served %d fetches total, want 5 (suffix-only enrichment)", got)
	}
	for i, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		if res.Results[i].Poi.ID != id {
			t.Errorf("result position %d = %s, want %s", i, res.Results[i].Poi.ID, id)
		}
	}

	// Walk to the last POI, then hit the final boundary
	res = navigate(OpFarther)
	if res.Cursor.Index != 4 || res.Current.Poi.ID != "p5" {
		t.Fatalf("current = %+v, want p5 at index 4", res.Current)
	}

	res = navigate(OpFarther)
	if !res.NoMoreResults {
		t.Error("expected NoMoreResults at the final boundary")
	}
	if res.Cursor.Index != 4 {
		t.Errorf("boundary hit moved the cursor to %d, want 4", res.Cursor.Index)
	}

	// Closer backs off the boundary
	res = navigate(OpCloser)
	if res.Cursor.Index != 3 || res.NoMoreResults {
		t.Errorf("closer after boundary: %+v", res.Cursor)
	}
}

func TestEngineQueryValidation(t *testing.T) {
	engine, _ := newTestEngine(nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     QueryRequest
		wantErr error
	}{
		{
			name:    "invalid latitude",
			req:     QueryRequest{Origin: types.NewCoords(91, 0)},
			wantErr: types.ErrInvalidLatitude,
		},
		{
			name:    "invalid longitude",
			req:     QueryRequest{Origin: types.NewCoords(0, 181)},
			wantErr: types.ErrInvalidLongitude,
		},
		{
			name:    "unknown category",
			req:     QueryRequest{Origin: types.NewCoords(44.98, -93.27), Category: "volcano"},
			wantErr: ErrUnknownCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.NewQuery(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewQuery error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEngineCategoryFilter(t *testing.T) {
	origin := types.NewCoords(44.98, -93.27)
	pois := scenarioPois(origin)
	pois[1].Category = types.CategoryLake

	engine, _ := newTestEngine(pois)

	qr, err := engine.NewQuery(context.Background(), QueryRequest{
		Origin:   origin,
		Category: types.CategoryLake,
	})
	if err != nil {
		t.Fatalf("NewQuery failed: %v", err)
	}
	if qr.Cursor.Count != 1 {
		t.Fatalf("filtered count = %d, want 1", qr.Cursor.Count)
	}
	if qr.Results[0].Poi.ID != "p2" {
		t.Errorf("filtered result = %s, want p2", qr.Results[0].Poi.ID)
	}
}

func TestEngineStaleGeneration(t *testing.T) {
	origin := types.NewCoords(44.98, -93.27)
	engine, _ := newTestEngine(scenarioPois(origin))
	ctx := context.Background()

	first, err := engine.NewQuery(ctx, QueryRequest{Origin: origin})
	if err != nil {
		t.Fatalf("first NewQuery failed: %v", err)
	}
	second, err := engine.NewQuery(ctx, QueryRequest{Origin: origin})
	if err != nil {
		t.Fatalf("second NewQuery failed: %v", err)
	}
	if second.Cursor.Generation <= first.Cursor.Generation {
		t.Fatalf("generation did not advance: %d then %d",
			first.Cursor.Generation, second.Cursor.Generation)
	}

	_, err = engine.Navigate(ctx, NavigateRequest{Generation: first.Cursor.Generation, Op: OpFarther})
	if !errors.Is(err, ErrStaleCursor) {
		t.Errorf("stale navigate error = %v, want ErrStaleCursor", err)
	}

	// The live generation still works
	if _, err := engine.Navigate(ctx, NavigateRequest{Generation: second.Cursor.Generation, Op: OpFarther}); err != nil {
		t.Errorf("live navigate failed: %v", err)
	}
}

func TestEngineNavigateWithoutSession(t *testing.T) {
	engine, _ := newTestEngine(nil)
	_, err := engine.Navigate(context.Background(), NavigateRequest{Generation: 1, Op: OpFarther})
	if !errors.Is(err, ErrStaleCursor) {
		t.Errorf("navigate without session error = %v, want ErrStaleCursor", err)
	}
}

func TestEngineUnknownOp(t *testing.T) {
	origin := types.NewCoords(44.98, -93.27)
	engine, _ := newTestEngine(scenarioPois(origin))
	ctx := context.Background()

	qr, err := engine.NewQuery(ctx, QueryRequest{Origin: origin})
	if err != nil {
		t.Fatalf("NewQuery failed: %v", err)
	}
	_, err = engine.Navigate(ctx, NavigateRequest{Generation: qr.Cursor.Generation, Op: "sideways"})
	if !errors.Is(err, ErrUnknownOp) {
		t.Errorf("unknown op error = %v, want ErrUnknownOp", err)
	}
}

func TestEngineRecenterDirective(t *testing.T) {
	origin := types.NewCoords(44.98, -93.27)
	engine, _ := newTestEngine(scenarioPois(origin))
	ctx := context.Background()

	qr, err := engine.NewQuery(ctx, QueryRequest{Origin: origin})
	if err != nil {
		t.Fatalf("NewQuery failed: %v", err)
	}

	// A tight viewport around the origin excludes the POI 12 miles out
	tight := types.Bounds{
		SouthWest: types.NewCoords(origin.Latitude-0.05, origin.Longitude-0.05),
		NorthEast: types.NewCoords(origin.Latitude+0.05, origin.Longitude+0.05),
	}
	res, err := engine.Navigate(ctx, NavigateRequest{
		Generation: qr.Cursor.Generation,
		Op:         OpFarther,
		Viewport:   tight,
	})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if res.Recenter == nil {
		t.Fatal("expected a recenter directive for an off-screen POI")
	}
	if res.Recenter.Phase != viewport.PhaseRecenter {
		t.Errorf("directive phase = %s, want recenter", res.Recenter.Phase)
	}
	if res.Recenter.Target != res.Current.Poi.Coordinates {
		t.Errorf("directive target = %v, want %v", res.Recenter.Target, res.Current.Poi.Coordinates)
	}

	// A wide viewport already showing the POI yields no directive
	wide := types.Bounds{
		SouthWest: types.NewCoords(origin.Latitude-2, origin.Longitude-2),
		NorthEast: types.NewCoords(origin.Latitude+2, origin.Longitude+2),
	}
	res, err = engine.Navigate(ctx, NavigateRequest{
		Generation: qr.Cursor.Generation,
		Op:         OpCloser,
		Viewport:   wide,
	})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if res.Recenter != nil {
		t.Errorf("unexpected recenter directive for on-screen POI: %+v", res.Recenter)
	}
}

func TestEngineRequestOverridesRadius(t *testing.T) {
	origin := types.NewCoords(44.98, -93.27)
	engine, _ := newTestEngine(scenarioPois(origin))

	// Override to a 60-mile band with a 60-mile cap: everything lands in the
	// first band and expansion is impossible from the start.
	qr, err := engine.NewQuery(context.Background(), QueryRequest{
		Origin:         origin,
		BandSizeMiles:  60,
		MaxRadiusMiles: 60,
	})
	if err != nil {
		t.Fatalf("NewQuery failed: %v", err)
	}
	if qr.Cursor.Count != 5 {
		t.Errorf("count = %d, want all 5 within 60 miles", qr.Cursor.Count)
	}
	if qr.Cursor.CanExpand {
		t.Error("canExpand should be false when the initial radius is the cap")
	}
}
