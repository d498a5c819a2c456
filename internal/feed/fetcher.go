// Package feed fetches the remote weather feed XML and parses it into typed
// reports.
package feed

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-feed-service/internal/client"
	"github.com/i474232898/weather-feed-service/internal/weather"
)

// DefaultTimeout is the default connect and socket budget.
const DefaultTimeout = 20 * time.Second

// NewHTTPClient builds the outbound HTTP client with separate connect and
// socket (read) budgets. The dialer bounds connection establishment; the
// response-header timeout bounds the wait for the server to start answering.
// Body reads are bounded per request with a context deadline in Fetch.
func NewHTTPClient(connectTimeout, socketTimeout time.Duration) *http.Client {
	if connectTimeout <= 0 {
		connectTimeout = DefaultTimeout
	}
	if socketTimeout <= 0 {
		socketTimeout = DefaultTimeout
	}
	return &http.Client{
		Transport: &http.Transport{
			DialContext:           (&net.Dialer{Timeout: connectTimeout}).DialContext,
			ResponseHeaderTimeout: socketTimeout,
		},
	}
}

// Fetcher retrieves the raw feed XML for one WOEID.
type Fetcher struct {
	baseURL       string
	httpClient    *http.Client
	socketTimeout time.Duration
	circuit       *gobreaker.CircuitBreaker
}

// NewFetcher creates a Fetcher for the feed at baseURL. httpClient should come
// from NewHTTPClient so the connect budget is enforced; socketTimeout bounds
// the read phase of each fetch.
func NewFetcher(httpClient *http.Client, baseURL string, socketTimeout time.Duration) *Fetcher {
	if socketTimeout <= 0 {
		socketTimeout = DefaultTimeout
	}
	return &Fetcher{
		baseURL:       baseURL,
		httpClient:    httpClient,
		socketTimeout: socketTimeout,
		circuit:       client.NewBreaker("weatherfeed"),
	}
}

// Fetch issues the feed GET for the given identifier and unit and accumulates
// the body line by line. An empty body is a valid outcome ("no data"); the
// parser rejects it later when it finds no document root.
func (f *Fetcher) Fetch(ctx context.Context, woeid string, unit weather.Unit) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.socketTimeout)
	defer cancel()

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("w", woeid)
		values.Set("u", unit.QueryParam())

		u := fmt.Sprintf("%s?%s", f.baseURL, values.Encode())
		weather.Debugf("feed: query url %s", u)

		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := client.Do(ctx, f.httpClient, f.circuit, buildRequest)
	if err != nil {
		return "", weather.WrapNetErr(err)
	}
	defer resp.Body.Close()

	var sb strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		weather.Debugf("feed: %s", line)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", weather.WrapNetErr(err)
	}

	return sb.String(), nil
}
