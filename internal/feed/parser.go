package feed

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/i474232898/weather-feed-service/internal/geo"
	"github.com/i474232898/weather-feed-service/internal/weather"
)

// providerErrorTitle is the literal channel title the feed uses in place of
// real data when the identifier is invalid.
const providerErrorTitle = "Yahoo! Weather - Error"

// fieldReader collects required feed fields, remembering the first failure.
// A report is all-or-nothing: one missing or malformed field voids the whole
// parse. Missing means the element or attribute is absent (nil); a present
// but empty value is copied verbatim.
type fieldReader struct {
	err error
}

func (r *fieldReader) str(name string, v *string) string {
	if v == nil {
		if r.err == nil {
			r.err = fmt.Errorf("%w: missing %s", weather.ErrParse, name)
		}
		return ""
	}
	return *v
}

func (r *fieldReader) num(name string, v *string) int {
	if v == nil {
		if r.err == nil {
			r.err = fmt.Errorf("%w: missing %s", weather.ErrParse, name)
		}
		return 0
	}
	n, err := strconv.Atoi(*v)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("%w: %s is not a number: %q", weather.ErrParse, name, *v)
	}
	return n
}

// Parse maps one feed XML document into a Report, folding in the place
// metadata from identifier resolution.
//
// The feed's error-sentinel document yields ErrProvider, which the pipeline
// collapses to "no report" without treating it as a parse fault. Everything
// else that deviates from the expected shape yields ErrParse.
func Parse(xmlText string, place geo.Place) (*weather.Report, error) {
	var doc feedDoc
	if err := xml.Unmarshal([]byte(xmlText), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrParse, err)
	}

	ch := doc.Channel
	if ch.Title != nil && *ch.Title == providerErrorTitle {
		return nil, fmt.Errorf("%w: %s", weather.ErrProvider, *ch.Title)
	}

	if len(ch.Item.Forecasts) < weather.ForecastSlots {
		return nil, fmt.Errorf("%w: feed has %d forecast entries, want %d",
			weather.ErrParse, len(ch.Item.Forecasts), weather.ForecastSlots)
	}

	r := &fieldReader{}
	report := &weather.Report{
		Title:         r.str("title", ch.Title),
		Description:   r.str("description", ch.Description),
		Language:      r.str("language", ch.Language),
		LastBuildDate: r.str("lastBuildDate", ch.LastBuildDate),
		Location: weather.Location{
			City:    r.str("location city", ch.Location.City),
			Region:  r.str("location region", ch.Location.Region),
			Country: r.str("location country", ch.Location.Country),
		},
		Wind: weather.Wind{
			Chill:     r.str("wind chill", ch.Wind.Chill),
			Direction: r.str("wind direction", ch.Wind.Direction),
			Speed:     r.str("wind speed", ch.Wind.Speed),
		},
		Atmosphere: weather.Atmosphere{
			Humidity:   r.str("atmosphere humidity", ch.Atmosphere.Humidity),
			Visibility: r.str("atmosphere visibility", ch.Atmosphere.Visibility),
			Pressure:   r.str("atmosphere pressure", ch.Atmosphere.Pressure),
			Rising:     r.str("atmosphere rising", ch.Atmosphere.Rising),
		},
		Astronomy: weather.Astronomy{
			Sunrise: r.str("astronomy sunrise", ch.Astronomy.Sunrise),
			Sunset:  r.str("astronomy sunset", ch.Astronomy.Sunset),
		},
		Condition: weather.CurrentCondition{
			Code:       r.num("condition code", ch.Item.Condition.Code),
			Text:       r.str("condition text", ch.Item.Condition.Text),
			Temp:       r.num("condition temp", ch.Item.Condition.Temp),
			ObservedAt: r.str("condition date", ch.Item.Condition.Date),
			Lat:        r.str("geo lat", ch.Item.Lat),
			Lon:        r.str("geo long", ch.Item.Long),
			Title:      r.str("item title", ch.Item.Title),
		},
		Place: weather.PlaceMeta{
			Neighborhood: place.Neighborhood,
			County:       place.County,
			State:        place.State,
			Country:      place.Country,
		},
	}

	for i := 0; i < weather.ForecastSlots; i++ {
		fc := ch.Item.Forecasts[i]
		slot := fmt.Sprintf("forecast[%d]", i)
		report.Forecast[i] = weather.ForecastDay{
			Code: r.num(slot+" code", fc.Code),
			Text: r.str(slot+" text", fc.Text),
			Date: r.str(slot+" date", fc.Date),
			Day:  r.str(slot+" day", fc.Day),
			High: r.num(slot+" high", fc.High),
			Low:  r.num(slot+" low", fc.Low),
		}
	}

	if r.err != nil {
		return nil, r.err
	}
	return report, nil
}
