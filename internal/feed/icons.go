package feed

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/i474232898/weather-feed-service/internal/weather"
)

// iconBaseURL is where the provider hosts the per-condition-code icons.
const iconBaseURL = "http://l.yimg.com/a/i/us/we/52"

// IconURL returns the deterministic icon URL for a condition code.
func IconURL(code int) string {
	return fmt.Sprintf("%s/%d.gif", iconBaseURL, code)
}

// ImageFetcher downloads one image by URL.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// HTTPImageFetcher fetches icons over plain HTTP.
type HTTPImageFetcher struct {
	httpClient *http.Client
}

func NewHTTPImageFetcher(httpClient *http.Client) *HTTPImageFetcher {
	return &HTTPImageFetcher{httpClient: httpClient}
}

func (f *HTTPImageFetcher) FetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("icon fetch returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// AttachIcons populates the report's condition and forecast icons. This is a
// best-effort enrichment pass run after a successful parse: a failed download
// is logged and skipped, never invalidating the report.
func AttachIcons(ctx context.Context, report *weather.Report, images ImageFetcher) {
	if report == nil || images == nil {
		return
	}

	if img, err := images.FetchImage(ctx, IconURL(report.Condition.Code)); err != nil {
		log.Printf("feed: condition icon fetch failed: %v", err)
	} else {
		report.Condition.Icon = img
	}

	for i := range report.Forecast {
		img, err := images.FetchImage(ctx, IconURL(report.Forecast[i].Code))
		if err != nil {
			log.Printf("feed: forecast icon fetch failed for slot %d: %v", i, err)
			continue
		}
		report.Forecast[i].Icon = img
	}
}
