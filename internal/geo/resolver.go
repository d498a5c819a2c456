// Package geo resolves place names and coordinates to the weather provider's
// WOEID location identifiers.
package geo

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-feed-service/internal/client"
	"github.com/i474232898/weather-feed-service/internal/weather"
)

// Place is the outcome of one identifier resolution. Found reports whether the
// geocoder matched anything; Found=false is a normal outcome, not an error,
// and callers must branch on it before using the WOEID.
type Place struct {
	WOEID        string
	Found        bool
	Neighborhood string
	County       string
	State        string
	Country      string
}

// Resolver queries the provider's places endpoint for WOEIDs.
type Resolver struct {
	baseURL    string
	appID      string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
}

// NewResolver creates a Resolver against baseURL. appID may be empty.
func NewResolver(httpClient *http.Client, baseURL, appID string) *Resolver {
	return &Resolver{
		baseURL:    baseURL,
		appID:      appID,
		httpClient: httpClient,
		circuit:    client.NewBreaker("geoplaces"),
	}
}

// placesDoc mirrors the places endpoint's XML response.
type placesDoc struct {
	XMLName xml.Name     `xml:"places"`
	Places  []placeEntry `xml:"place"`
}

type placeEntry struct {
	WOEID        string `xml:"woeid"`
	Neighborhood string `xml:"locality2"`
	County       string `xml:"admin2"`
	State        string `xml:"admin1"`
	Country      string `xml:"country"`
}

// ResolveByName resolves a free-text place name. Non-ASCII input is
// transliterated first; the endpoint rejects it otherwise.
func (r *Resolver) ResolveByName(ctx context.Context, place string) (Place, error) {
	return r.resolve(ctx, ToASCII(place), false)
}

// ResolveByLatLon reverse-resolves a latitude/longitude pair given as decimal
// strings.
func (r *Resolver) ResolveByLatLon(ctx context.Context, lat, lon string) (Place, error) {
	return r.resolve(ctx, fmt.Sprintf("%s,%s", lat, lon), true)
}

func (r *Resolver) resolve(ctx context.Context, q string, reverse bool) (Place, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		if reverse {
			values.Set("gflags", "R")
		}
		if r.appID != "" {
			values.Set("appid", r.appID)
		}

		u := fmt.Sprintf("%s/v1/places.q('%s')", r.baseURL, url.PathEscape(q))
		if encoded := values.Encode(); encoded != "" {
			u = fmt.Sprintf("%s?%s", u, encoded)
		}
		weather.Debugf("geo: query url %s", u)

		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := client.Do(ctx, r.httpClient, r.circuit, buildRequest)
	if err != nil {
		return Place{}, weather.WrapNetErr(err)
	}
	defer resp.Body.Close()

	var doc placesDoc
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return Place{}, fmt.Errorf("%w: decoding places response: %v", weather.ErrConnection, err)
	}

	if len(doc.Places) == 0 {
		weather.Debugf("geo: no WOEID match for %q", q)
		return Place{}, nil
	}

	first := doc.Places[0]
	if first.WOEID == "" {
		return Place{}, nil
	}

	return Place{
		WOEID:        first.WOEID,
		Found:        true,
		Neighborhood: first.Neighborhood,
		County:       first.County,
		State:        first.State,
		Country:      first.Country,
	}, nil
}
