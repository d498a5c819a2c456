package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-feed-service/internal/weather"
)

type AppConfig struct {
	// Outbound endpoints.
	FeedBaseURL string
	GeoBaseURL  string
	GeoAppID    string

	// Network budgets for the fetch stage.
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration

	// Unit requested from the feed ('c' in default) and icon enrichment.
	Unit          weather.Unit
	DownloadIcons bool
	Debug         bool

	// Places the scheduler keeps refreshed.
	Places []string

	// Optional fixed coordinates standing in for a GPS fix.
	GPSLat float64
	GPSLon float64
	HasGPS bool

	// RefreshInterval controls how often the scheduler refreshes each place.
	RefreshInterval time.Duration

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots per place (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.FeedBaseURL = getenvDefault("FEED_BASE_URL", "http://weather.yahooapis.com/forecastrss")
	cfg.GeoBaseURL = getenvDefault("GEO_BASE_URL", "http://where.yahooapis.com")
	cfg.GeoAppID = os.Getenv("GEO_APP_ID")

	connect, err := getenvDuration("CONNECT_TIMEOUT", "20s")
	if err != nil {
		return nil, err
	}
	cfg.ConnectTimeout = connect

	socket, err := getenvDuration("SOCKET_TIMEOUT", "20s")
	if err != nil {
		return nil, err
	}
	cfg.SocketTimeout = socket

	cfg.Unit = weather.ParseUnit(getenvDefault("WEATHER_UNIT", "c"))
	cfg.DownloadIcons = getenvBool("DOWNLOAD_ICONS", false)
	cfg.Debug = getenvBool("DEBUG", false)

	cfg.Places = splitPlaces(os.Getenv("WEATHER_PLACES"))

	if lat, lon, ok, err := loadGPSFix(); err != nil {
		return nil, err
	} else if ok {
		cfg.GPSLat, cfg.GPSLon, cfg.HasGPS = lat, lon, true
	}

	interval, err := getenvDuration("REFRESH_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = interval

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals

	maxAge, err := getenvDuration("STORE_MAX_AGE", "24h")
	if err != nil {
		return nil, err
	}
	cfg.StoreMaxAge = maxAge

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func splitPlaces(raw string) []string {
	if raw == "" {
		return nil
	}
	var places []string
	for _, p := range strings.Split(raw, ";") {
		p = strings.TrimSpace(p)
		if p != "" {
			places = append(places, p)
		}
	}
	return places
}

func loadGPSFix() (lat, lon float64, ok bool, err error) {
	latStr := os.Getenv("GPS_LAT")
	lonStr := os.Getenv("GPS_LON")
	if latStr == "" && lonStr == "" {
		return 0, 0, false, nil
	}
	if latStr == "" || lonStr == "" {
		return 0, 0, false, fmt.Errorf("GPS_LAT and GPS_LON must be set together")
	}
	lat, err = strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid GPS_LAT: %w", err)
	}
	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid GPS_LON: %w", err)
	}
	return lat, lon, true, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
