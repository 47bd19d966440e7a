package session

import (
	"net/url"
	"strings"
)

// Query is the shareable view state: which team and pitcher are
// selected, the camera preset and whether trails are shown.
type Query struct {
	Team    string
	Pitcher string
	View    string
	Trail   *bool // nil when the parameter is absent
}

// ParseQuery reads a query string with or without the leading "?".
// Malformed input yields an empty Query.
func ParseQuery(raw string) Query {
	vals, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return Query{}
	}
	q := Query{
		Team:    vals.Get("team"),
		Pitcher: vals.Get("pitcher"),
		View:    vals.Get("view"),
	}
	if t := vals.Get("trail"); t != "" {
		on := t == "1" || t == "true"
		q.Trail = &on
	}
	return q
}

// Encode renders the query with every parameter present, trail as "1"
// or "0".
func (q Query) Encode() string {
	trail := "0"
	if q.Trail != nil && *q.Trail {
		trail = "1"
	}
	return url.Values{
		"team":    {q.Team},
		"pitcher": {q.Pitcher},
		"view":    {q.View},
		"trail":   {trail},
	}.Encode()
}
