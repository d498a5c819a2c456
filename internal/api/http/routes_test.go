package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-feed-service/internal/geo"
	"github.com/i474232898/weather-feed-service/internal/pipeline"
	"github.com/i474232898/weather-feed-service/internal/store"
	"github.com/i474232898/weather-feed-service/internal/weather"
)

func testApp() *fiber.App {
	app := fiber.New()
	// The pipeline is never reached by the requests below; validation and the
	// store answer first.
	pipe := pipeline.New(nil, nil, nil, nil, nil, pipeline.Options{})
	st := store.NewMemoryStore(10, time.Hour)
	RegisterRoutes(app, pipe, st)
	return app
}

func request(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

// TestCurrentWeatherValidation verifies that the current-weather endpoint
// requires either a place name or a full coordinate pair.
func TestCurrentWeatherValidation(t *testing.T) {
	app := testApp()

	// No location at all.
	if resp := request(t, app, "/api/v1/weather/current"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Latitude without longitude.
	if resp := request(t, app, "/api/v1/weather/current?lat=35.67"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Out-of-range latitude.
	if resp := request(t, app, "/api/v1/weather/current?lat=91&lon=0"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Unknown temperature unit.
	if resp := request(t, app, "/api/v1/weather/current?place=Tokyo&unit=k"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:yweather="http://xml.weather.yahoo.com/ns/rss/1.0" xmlns:geo="http://www.w3.org/2003/01/geo/wgs84_pos#">
<channel>
<title>Yahoo! Weather - Tokyo, JP</title>
<description>Yahoo! Weather for Tokyo, JP</description>
<language>en-us</language>
<lastBuildDate>Mon, 25 Aug 2014 9:00 pm JST</lastBuildDate>
<yweather:location city="Tokyo" region="" country="Japan"/>
<yweather:wind chill="26" direction="140" speed="11.27"/>
<yweather:atmosphere humidity="83" visibility="19.99" pressure="1015.92" rising="0"/>
<yweather:astronomy sunrise="5:10 am" sunset="6:23 pm"/>
<item>
<title>Conditions for Tokyo, JP at 9:00 pm JST</title>
<geo:lat>35.67</geo:lat>
<geo:long>139.77</geo:long>
<yweather:condition text="Mostly Cloudy" code="28" temp="26" date="Mon, 25 Aug 2014 9:00 pm JST"/>
<yweather:forecast day="Mon" date="25 Aug 2014" low="24" high="31" text="Partly Cloudy" code="30"/>
<yweather:forecast day="Tue" date="26 Aug 2014" low="23" high="28" text="Showers" code="11"/>
<yweather:forecast day="Wed" date="27 Aug 2014" low="22" high="27" text="Rain" code="12"/>
<yweather:forecast day="Thu" date="28 Aug 2014" low="23" high="29" text="Partly Cloudy" code="30"/>
<yweather:forecast day="Fri" date="29 Aug 2014" low="24" high="30" text="Sunny" code="32"/>
</item>
</channel>
</rss>`

type stubResolver struct{}

func (stubResolver) ResolveByName(ctx context.Context, place string) (geo.Place, error) {
	return geo.Place{WOEID: "1118370", Found: true}, nil
}

func (stubResolver) ResolveByLatLon(ctx context.Context, lat, lon string) (geo.Place, error) {
	return geo.Place{WOEID: "1118370", Found: true}, nil
}

type stubFetcher struct {
	gotUnit weather.Unit
}

func (f *stubFetcher) Fetch(ctx context.Context, woeid string, unit weather.Unit) (string, error) {
	f.gotUnit = unit
	return testFeedXML, nil
}

// TestCurrentWeatherUnitParam verifies that a unit= query parameter reaches
// the feed fetch, overriding the configured default for that request only.
func TestCurrentWeatherUnitParam(t *testing.T) {
	app := fiber.New()
	fetcher := &stubFetcher{}
	pipe := pipeline.New(stubResolver{}, fetcher, nil, nil, nil,
		pipeline.Options{Unit: weather.UnitCelsius})
	RegisterRoutes(app, pipe, store.NewMemoryStore(10, time.Hour))

	if resp := request(t, app, "/api/v1/weather/current?place=Tokyo&unit=f"); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if fetcher.gotUnit != weather.UnitFahrenheit {
		t.Errorf("fetch used unit %q, want the requested Fahrenheit", fetcher.gotUnit)
	}

	if resp := request(t, app, "/api/v1/weather/current?place=Tokyo"); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if fetcher.gotUnit != weather.UnitCelsius {
		t.Errorf("fetch used unit %q, want the configured default", fetcher.gotUnit)
	}
}

func TestLatestRequiresPlace(t *testing.T) {
	app := testApp()

	if resp := request(t, app, "/api/v1/weather/latest"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Unknown place on an empty store.
	if resp := request(t, app, "/api/v1/weather/latest?place=Tokyo"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestHistoryValidation(t *testing.T) {
	app := testApp()

	// Missing time bounds.
	if resp := request(t, app, "/api/v1/weather/history?place=Tokyo"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// to before from.
	target := "/api/v1/weather/history?place=Tokyo&from=2026-01-02T00:00:00Z&to=2026-01-01T00:00:00Z"
	if resp := request(t, app, target); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Unparseable time.
	if resp := request(t, app, "/api/v1/weather/history?place=Tokyo&from=yesterday&to=today"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}
