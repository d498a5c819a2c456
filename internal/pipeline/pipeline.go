// Package pipeline composes identifier resolution, feed fetching and parsing
// into single weather queries. A Pipeline is a stateless value: every query
// owns its state, so concurrent queries on one Pipeline are independent.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/i474232898/weather-feed-service/internal/feed"
	"github.com/i474232898/weather-feed-service/internal/geo"
	"github.com/i474232898/weather-feed-service/internal/location"
	"github.com/i474232898/weather-feed-service/internal/weather"
)

// Resolver maps a place name or coordinate pair to a WOEID.
type Resolver interface {
	ResolveByName(ctx context.Context, place string) (geo.Place, error)
	ResolveByLatLon(ctx context.Context, lat, lon string) (geo.Place, error)
}

// Fetcher retrieves the raw feed XML for one WOEID.
type Fetcher interface {
	Fetch(ctx context.Context, woeid string, unit weather.Unit) (string, error)
}

// Reachability is the pre-flight network check run before any query touches
// the wire.
type Reachability interface {
	Reachable(ctx context.Context) bool
}

// Options carries the per-pipeline configuration fixed at construction.
type Options struct {
	Unit          weather.Unit
	DownloadIcons bool
}

// Pipeline runs weather queries end to end: resolve, fetch, parse, enrich.
type Pipeline struct {
	resolver      Resolver
	fetcher       Fetcher
	images        feed.ImageFetcher
	reach         Reachability
	locations     location.Provider
	unit          weather.Unit
	downloadIcons bool
}

// New builds a Pipeline from its collaborators. locations may be nil when no
// GPS source exists; GPS queries then fail with ErrLocationNotFound. images
// may be nil when icon download is disabled.
func New(resolver Resolver, fetcher Fetcher, images feed.ImageFetcher,
	reach Reachability, locations location.Provider, opts Options) *Pipeline {
	return &Pipeline{
		resolver:      resolver,
		fetcher:       fetcher,
		images:        images,
		reach:         reach,
		locations:     locations,
		unit:          opts.Unit,
		downloadIcons: opts.DownloadIcons,
	}
}

// Result is the single delivery of one asynchronous query. Report and Err nil
// together mean "no weather for that place": the identifier did not match, or
// the provider answered with its error document.
type Result struct {
	Report *weather.Report
	Err    error
}

// Query runs one lookup synchronously. It returns (nil, nil) for the two
// "no result" outcomes that are not faults; every fault is one of the
// weather.Err sentinels.
func (p *Pipeline) Query(ctx context.Context, q weather.LocationQuery) (*weather.Report, error) {
	queryID := uuid.NewString()
	weather.Debugf("pipeline: query %s started (kind=%d)", queryID, q.Kind)

	if p.reach != nil && !p.reach.Reachable(ctx) {
		return nil, weather.ErrNetworkUnavailable
	}

	place, err := p.resolvePlace(ctx, q)
	if err != nil {
		return nil, err
	}
	if !place.Found {
		weather.Debugf("pipeline: query %s found no identifier", queryID)
		return nil, nil
	}
	weather.Debugf("pipeline: query %s resolved WOEID %s", queryID, place.WOEID)

	unit := p.unit
	if q.Unit != "" {
		unit = q.Unit
	}

	xmlText, err := p.fetcher.Fetch(ctx, place.WOEID, unit)
	if err != nil {
		return nil, err
	}

	report, err := feed.Parse(xmlText, place)
	if err != nil {
		if errors.Is(err, weather.ErrProvider) {
			weather.Debugf("pipeline: query %s hit the provider error document", queryID)
			return nil, nil
		}
		return nil, err
	}

	if p.downloadIcons && p.images != nil {
		feed.AttachIcons(ctx, report, p.images)
	}

	weather.Debugf("pipeline: query %s delivered a report for %s", queryID, report.Location.City)
	return report, nil
}

// QueryAsync runs Query on its own goroutine and delivers exactly one Result
// on the returned channel, then closes it.
func (p *Pipeline) QueryAsync(ctx context.Context, q weather.LocationQuery) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		report, err := p.Query(ctx, q)
		out <- Result{Report: report, Err: err}
	}()
	return out
}

// QueryByPlaceName looks up weather for a free-text place.
func (p *Pipeline) QueryByPlaceName(ctx context.Context, place string) (*weather.Report, error) {
	return p.Query(ctx, weather.PlaceName(place))
}

// QueryByLatLon looks up weather for a coordinate pair given as decimal strings.
func (p *Pipeline) QueryByLatLon(ctx context.Context, lat, lon string) (*weather.Report, error) {
	return p.Query(ctx, weather.LatLon(lat, lon))
}

// QueryByGPS looks up weather for the device's current position.
func (p *Pipeline) QueryByGPS(ctx context.Context) (*weather.Report, error) {
	return p.Query(ctx, weather.GPS())
}

func (p *Pipeline) resolvePlace(ctx context.Context, q weather.LocationQuery) (geo.Place, error) {
	switch q.Kind {
	case weather.QueryByPlaceName:
		return p.resolver.ResolveByName(ctx, q.Place)
	case weather.QueryByLatLon:
		return p.resolver.ResolveByLatLon(ctx, q.Lat, q.Lon)
	case weather.QueryByGPS:
		if p.locations == nil {
			return geo.Place{}, weather.ErrLocationNotFound
		}
		fix, err := p.locations.CurrentFix(ctx)
		if err != nil {
			return geo.Place{}, fmt.Errorf("%w: %v", weather.ErrLocationNotFound, err)
		}
		return p.resolver.ResolveByLatLon(ctx, formatCoord(fix.Lat), formatCoord(fix.Lon))
	default:
		return geo.Place{}, fmt.Errorf("unknown query kind %d", q.Kind)
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
