package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-feed-service/internal/pipeline"
	"github.com/i474232898/weather-feed-service/internal/store"
	"github.com/i474232898/weather-feed-service/internal/weather"
)

var validate = validator.New()

// queryTimeout bounds one live pipeline query issued from a request handler.
const queryTimeout = 60 * time.Second

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, pipe *pipeline.Pipeline, st *store.MemoryStore) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		req, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctx, cancel := contextWithTimeout(c)
		defer cancel()

		report, err := pipe.Query(ctx, req.toLocationQuery())
		if err != nil {
			return faultStatus(err)
		}
		if report == nil {
			return fiber.NewError(fiber.StatusNotFound, "no weather for requested location")
		}

		return c.JSON(report)
	})

	v1.Get("/weather/gps", func(c *fiber.Ctx) error {
		ctx, cancel := contextWithTimeout(c)
		defer cancel()

		report, err := pipe.QueryByGPS(ctx)
		if err != nil {
			return faultStatus(err)
		}
		if report == nil {
			return fiber.NewError(fiber.StatusNotFound, "no weather for current location")
		}

		return c.JSON(report)
	})

	v1.Get("/weather/latest", func(c *fiber.Ctx) error {
		place := c.Query("place")
		if place == "" {
			return fiber.NewError(fiber.StatusBadRequest, "place query parameter is required")
		}

		snapshot, err := st.GetLatest(place)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no stored weather for requested place")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch stored weather")
		}

		return c.JSON(snapshot)
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshots, err := st.GetRange(req.Place, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
		}

		return c.JSON(fiber.Map{
			"place":     req.Place,
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	})
}

func contextWithTimeout(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), queryTimeout)
}

// faultStatus maps pipeline faults to HTTP statuses: upstream/network trouble
// is 503, a feed we could not make sense of is 502.
func faultStatus(err error) error {
	switch {
	case errors.Is(err, weather.ErrNetworkUnavailable),
		errors.Is(err, weather.ErrTimeout),
		errors.Is(err, weather.ErrConnection):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, weather.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, weather.ErrParse):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

// weatherQuery holds query parameters identifying a location: either a place
// name, or a latitude/longitude pair. Unit optionally overrides the configured
// temperature unit for this request.
type weatherQuery struct {
	Place string `validate:"required_without=Lat"`
	Lat   string `validate:"required_without=Place,omitempty,latitude"`
	Lon   string `validate:"required_with=Lat,omitempty,longitude"`
	Unit  string `validate:"omitempty,oneof=c f C F"`
}

func (q weatherQuery) toLocationQuery() weather.LocationQuery {
	lq := weather.LatLon(q.Lat, q.Lon)
	if q.Place != "" {
		lq = weather.PlaceName(q.Place)
	}
	if q.Unit != "" {
		lq = lq.WithUnit(weather.ParseUnit(q.Unit))
	}
	return lq
}

func parseWeatherQuery(c *fiber.Ctx) (weatherQuery, error) {
	var q weatherQuery

	q.Place = c.Query("place")
	q.Lat = c.Query("lat")
	q.Lon = c.Query("lon")
	q.Unit = c.Query("unit")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Place string    `validate:"required"`
	From  time.Time `validate:"required"`
	To    time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	h.Place = c.Query("place")

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
