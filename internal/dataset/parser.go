package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Load reads a pitch dataset JSON file.
func Load(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	return ds, nil
}

// Decode parses the nested team → pitcher → key → record document.
func Decode(r io.Reader) (Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, err
	}
	if ds == nil {
		ds = Dataset{}
	}
	return ds, nil
}

// Teams returns team names in sorted order.
func (d Dataset) Teams() []string {
	return sortedKeys(d)
}

// Pitchers returns the team's pitcher names in sorted order.
func (d Dataset) Pitchers(team string) []string {
	return sortedKeys(d[team])
}

// Pitcher returns one pitcher's records.
func (d Dataset) Pitcher(team, name string) (Pitcher, bool) {
	t, ok := d[team]
	if !ok {
		return nil, false
	}
	p, ok := t[name]
	return p, ok
}

// Len returns the total number of records.
func (d Dataset) Len() int {
	n := 0
	for _, t := range d {
		for _, p := range t {
			n += len(p)
		}
	}
	return n
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
