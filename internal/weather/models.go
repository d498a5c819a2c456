package weather

// Unit selects the temperature unit requested from the feed. The feed returns
// temperatures already converted, so the unit affects the query string only.
type Unit string

const (
	UnitCelsius    Unit = "c"
	UnitFahrenheit Unit = "f"
)

// QueryParam returns the single-character unit flag used in the feed URL.
// Anything that is not Fahrenheit falls back to Celsius, the default.
func (u Unit) QueryParam() string {
	if u == UnitFahrenheit {
		return "f"
	}
	return "c"
}

// ParseUnit maps a configuration value ("f" or "c", case-insensitive) to a Unit.
func ParseUnit(s string) Unit {
	if s == "f" || s == "F" {
		return UnitFahrenheit
	}
	return UnitCelsius
}

// ForecastSlots is the number of forecast entries the feed is contracted to
// carry. Feeds with fewer entries are rejected as malformed.
const ForecastSlots = 5

// QueryKind discriminates the three ways a location can be given.
type QueryKind int

const (
	QueryByPlaceName QueryKind = iota
	QueryByLatLon
	QueryByGPS
)

// LocationQuery is a tagged union describing one weather lookup. Construct it
// with PlaceName, LatLon or GPS; only the fields for the chosen kind are set.
// Unit is optional and overrides the configured default when non-empty.
type LocationQuery struct {
	Kind  QueryKind
	Place string
	Lat   string
	Lon   string
	Unit  Unit
}

// PlaceName queries by a free-text place: a city ("Shanghai"), a city and
// country pair ("Tokyo, Japan"), or a landmark.
func PlaceName(place string) LocationQuery {
	return LocationQuery{Kind: QueryByPlaceName, Place: place}
}

// LatLon queries by a latitude/longitude pair given as decimal strings.
func LatLon(lat, lon string) LocationQuery {
	return LocationQuery{Kind: QueryByLatLon, Lat: lat, Lon: lon}
}

// GPS queries by the device location provider's current fix.
func GPS() LocationQuery {
	return LocationQuery{Kind: QueryByGPS}
}

// WithUnit returns a copy of the query requesting temperatures in the given
// unit instead of the configured default.
func (q LocationQuery) WithUnit(u Unit) LocationQuery {
	q.Unit = u
	return q
}

// Location identifies the place the feed reports on.
type Location struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// Wind carries the feed's wind readings. Values are copied verbatim.
type Wind struct {
	Chill     string `json:"chill"`
	Direction string `json:"direction"`
	Speed     string `json:"speed"`
}

// Atmosphere carries humidity, visibility and barometric readings.
type Atmosphere struct {
	Humidity   string `json:"humidity"`
	Visibility string `json:"visibility"`
	Pressure   string `json:"pressure"`
	Rising     string `json:"rising"`
}

// Astronomy carries sunrise and sunset times.
type Astronomy struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// CurrentCondition is the feed's "now" observation.
type CurrentCondition struct {
	Code       int    `json:"code"`
	Text       string `json:"text"`
	Temp       int    `json:"temp"`
	ObservedAt string `json:"observedAt"`
	Lat        string `json:"lat"`
	Lon        string `json:"lon"`
	Title      string `json:"title"`
	Icon       []byte `json:"icon,omitempty"`
}

// ForecastDay is one positional forecast slot, in feed order (today first).
type ForecastDay struct {
	Code int    `json:"code"`
	Text string `json:"text"`
	Date string `json:"date"`
	Day  string `json:"day"`
	High int    `json:"high"`
	Low  int    `json:"low"`
	Icon []byte `json:"icon,omitempty"`
}

// PlaceMeta is auxiliary place metadata carried over from identifier
// resolution into the final report.
type PlaceMeta struct {
	Neighborhood string `json:"neighborhood"`
	County       string `json:"county"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

// Report is the fully parsed weather report for one location. A Report is
// either completely populated or not produced at all; the only optional parts
// are the icon byte slices, which are best-effort enrichment.
type Report struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Language      string `json:"language"`
	LastBuildDate string `json:"lastBuildDate"`

	Location   Location         `json:"location"`
	Wind       Wind             `json:"wind"`
	Atmosphere Atmosphere       `json:"atmosphere"`
	Astronomy  Astronomy        `json:"astronomy"`
	Condition  CurrentCondition `json:"condition"`

	Forecast [ForecastSlots]ForecastDay `json:"forecast"`

	Place PlaceMeta `json:"place"`
}
