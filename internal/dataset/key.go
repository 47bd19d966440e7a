package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Key identifies one pitch inside a pitcher's arsenal: pitch type plus
// strike-zone cell 1..9.
type Key struct {
	Type string
	Zone int
}

// ParseKey splits "FF 5" into its parts. Keys without a zone in 1..9
// are rejected.
func ParseKey(s string) (Key, bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Key{}, false
	}
	zone, err := strconv.Atoi(fields[1])
	if err != nil || zone < 1 || zone > 9 {
		return Key{}, false
	}
	return Key{Type: fields[0], Zone: zone}, true
}

func (k Key) String() string {
	return fmt.Sprintf("%s %d", k.Type, k.Zone)
}

// TypeOf returns the pitch-type part of a key such as "FF 5".
func TypeOf(key string) string {
	if i := strings.IndexByte(key, ' '); i >= 0 {
		return key[:i]
	}
	return key
}

// Group is every zone a pitcher threw one pitch type to.
type Group struct {
	Type  string
	Zones []Zone
}

// Zone is one cell of a Group.
type Zone struct {
	Zone   int
	Key    string
	Record PitchRecord
}

// Groups arranges a pitcher's records by pitch type (sorted) with zones
// ascending. Entries whose key does not parse are skipped.
func Groups(p Pitcher) []Group {
	byType := make(map[string][]Zone)
	for raw, rec := range p {
		k, ok := ParseKey(raw)
		if !ok {
			continue
		}
		byType[k.Type] = append(byType[k.Type], Zone{Zone: k.Zone, Key: k.String(), Record: rec})
	}

	groups := make([]Group, 0, len(byType))
	for typ, zones := range byType {
		sort.Slice(zones, func(i, j int) bool { return zones[i].Zone < zones[j].Zone })
		groups = append(groups, Group{Type: typ, Zones: zones})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Type < groups[j].Type })
	return groups
}
