package feed

import "encoding/xml"

// Wire structs for the RSS-shaped weather feed. Fields are *string so a
// missing element or attribute (nil) stays distinguishable from a present but
// empty value; the parser treats only the former as fatal. Numeric fields stay
// text here; the parser converts and validates them. Tags match the elements'
// local names, which also covers the yweather:/geo: namespaced forms.
type feedDoc struct {
	XMLName xml.Name    `xml:"rss"`
	Channel feedChannel `xml:"channel"`
}

type feedChannel struct {
	Title         *string        `xml:"title"`
	Description   *string        `xml:"description"`
	Language      *string        `xml:"language"`
	LastBuildDate *string        `xml:"lastBuildDate"`
	Location      locationElem   `xml:"location"`
	Wind          windElem       `xml:"wind"`
	Atmosphere    atmosphereElem `xml:"atmosphere"`
	Astronomy     astronomyElem  `xml:"astronomy"`
	Item          feedItem       `xml:"item"`
}

type locationElem struct {
	City    *string `xml:"city,attr"`
	Region  *string `xml:"region,attr"`
	Country *string `xml:"country,attr"`
}

type windElem struct {
	Chill     *string `xml:"chill,attr"`
	Direction *string `xml:"direction,attr"`
	Speed     *string `xml:"speed,attr"`
}

type atmosphereElem struct {
	Humidity   *string `xml:"humidity,attr"`
	Visibility *string `xml:"visibility,attr"`
	Pressure   *string `xml:"pressure,attr"`
	Rising     *string `xml:"rising,attr"`
}

type astronomyElem struct {
	Sunrise *string `xml:"sunrise,attr"`
	Sunset  *string `xml:"sunset,attr"`
}

type feedItem struct {
	Title     *string        `xml:"title"`
	Lat       *string        `xml:"lat"`
	Long      *string        `xml:"long"`
	Condition conditionElem  `xml:"condition"`
	Forecasts []forecastElem `xml:"forecast"`
}

type conditionElem struct {
	Code *string `xml:"code,attr"`
	Text *string `xml:"text,attr"`
	Temp *string `xml:"temp,attr"`
	Date *string `xml:"date,attr"`
}

type forecastElem struct {
	Code *string `xml:"code,attr"`
	Text *string `xml:"text,attr"`
	Date *string `xml:"date,attr"`
	Day  *string `xml:"day,attr"`
	High *string `xml:"high,attr"`
	Low  *string `xml:"low,attr"`
}
