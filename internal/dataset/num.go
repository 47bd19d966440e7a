package dataset

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Num is an optional float64 decoded from a loosely typed JSON field.
// Numbers and numeric strings are accepted; null, missing, non-numeric,
// NaN and ±Inf values leave it absent. Decoding never fails.
type Num struct {
	v  float64
	ok bool
}

// Some returns a present Num. Non-finite values are treated as absent.
func Some(v float64) Num {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Num{}
	}
	return Num{v: v, ok: true}
}

// None returns an absent Num.
func None() Num { return Num{} }

// Get returns the value and whether it is present.
func (n Num) Get() (float64, bool) { return n.v, n.ok }

// IsSet reports whether the value is present.
func (n Num) IsSet() bool { return n.ok }

// Or returns the value, or def when absent.
func (n Num) Or(def float64) float64 {
	if !n.ok {
		return def
	}
	return n.v
}

// Scale multiplies a present value by k.
func (n Num) Scale(k float64) Num {
	if !n.ok {
		return n
	}
	return Some(n.v * k)
}

// First returns the first present value.
func First(ns ...Num) Num {
	for _, n := range ns {
		if n.ok {
			return n
		}
	}
	return Num{}
}

func (n *Num) UnmarshalJSON(data []byte) error {
	*n = Num{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = Some(f)
		}
		return nil
	}
	if f, err := strconv.ParseFloat(string(data), 64); err == nil {
		*n = Some(f)
	}
	return nil
}

func (n Num) MarshalJSON() ([]byte, error) {
	if !n.ok {
		return []byte("null"), nil
	}
	return json.Marshal(n.v)
}
