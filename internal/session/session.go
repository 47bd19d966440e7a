// Package session applies user selections to an animation state: team and
// pitcher pickers, per-zone pitch toggles, group toggles, replay, trail
// and camera controls. It mirrors the selection rules of the interactive
// viewer so a headless render can reproduce any shared link.
package session

import (
	"fmt"

	"github.com/rs/zerolog"

	"pitch-renderer/internal/animation"
	"pitch-renderer/internal/dataset"
	"pitch-renderer/internal/metrics"
	"pitch-renderer/internal/scene"
)

// Session is a single viewer over one dataset.
type Session struct {
	data  dataset.Dataset
	state *animation.State
	panel *metrics.Panel
	log   zerolog.Logger

	team     string
	pitcher  string
	view     string
	camera   scene.Camera
	selected string // key whose record drives the panel
}

// New creates a session with nothing selected and the default camera.
func New(data dataset.Dataset, state *animation.State, log zerolog.Logger) *Session {
	cam, _ := scene.Preset(scene.DefaultView)
	return &Session{
		data:   data,
		state:  state,
		panel:  &metrics.Panel{},
		log:    log,
		view:   scene.DefaultView,
		camera: cam,
	}
}

// Open creates a session and restores it from a query string: a known
// team (and optionally a known pitcher of that team) is selected,
// otherwise the first team and its first pitcher. View and trail are
// applied when given.
func Open(data dataset.Dataset, state *animation.State, raw string, log zerolog.Logger) *Session {
	s := New(data, state, log)
	q := ParseQuery(raw)

	if _, ok := data[q.Team]; ok && q.Team != "" {
		s.SelectTeam(q.Team)
		if _, ok := data.Pitcher(q.Team, q.Pitcher); ok && q.Pitcher != "" {
			s.SelectPitcher(q.Pitcher)
		}
	} else if teams := data.Teams(); len(teams) > 0 {
		s.SelectTeam(teams[0])
	}

	if q.View != "" {
		s.SetView(q.View)
	}
	if q.Trail != nil {
		s.SetTrail(*q.Trail)
	}
	return s
}

// State returns the animation state the session drives.
func (s *Session) State() *animation.State { return s.state }

// Panel returns the metrics panel. It is also the telemetry sink to pass
// to animation.Step.
func (s *Session) Panel() *metrics.Panel { return s.panel }

// Team returns the selected team.
func (s *Session) Team() string { return s.team }

// Pitcher returns the selected pitcher.
func (s *Session) Pitcher() string { return s.pitcher }

// View returns the camera preset name as requested.
func (s *Session) View() string { return s.view }

// Camera returns the active camera.
func (s *Session) Camera() scene.Camera { return s.camera }

// Groups returns the selected pitcher's toggles grouped by pitch type.
func (s *Session) Groups() []dataset.Group {
	p, ok := s.data.Pitcher(s.team, s.pitcher)
	if !ok {
		return nil
	}
	return dataset.Groups(p)
}

// SelectTeam switches team and selects its first pitcher. Unknown teams
// leave the session with no pitcher.
func (s *Session) SelectTeam(team string) {
	s.team = team
	pitchers := s.data.Pitchers(team)
	if len(pitchers) == 0 {
		s.log.Warn().Str("team", team).Msg("team has no pitchers")
		s.SelectPitcher("")
		return
	}
	s.SelectPitcher(pitchers[0])
}

// SelectPitcher switches pitcher, clearing every ball and the panel.
func (s *Session) SelectPitcher(name string) {
	s.pitcher = name
	s.state.Balls.Clear()
	s.deselect()
	s.log.Debug().Str("team", s.team).Str("pitcher", name).Msg("pitcher selected")
}

// Toggle turns one pitch on or off. Turning a pitch on launches its ball
// at now and makes its record the panel's selection; turning off the
// selected pitch clears the panel.
func (s *Session) Toggle(key string, on bool, now float64) error {
	p, ok := s.data.Pitcher(s.team, s.pitcher)
	if !ok {
		return fmt.Errorf("session: toggle %s: no pitcher selected", key)
	}
	rec, ok := p[key]
	if !ok {
		return fmt.Errorf("session: toggle %s: unknown pitch for %s", key, s.pitcher)
	}

	if on {
		if _, added := s.state.Balls.Add(key, rec, now); added {
			s.selected = key
			s.panel.Select(rec)
		}
		return nil
	}

	s.state.Balls.RemoveByKey(key)
	if s.selected == key {
		s.deselect()
	}
	return nil
}

// ToggleGroup turns every zone of one pitch type on or off, zone order
// ascending, skipping zones already in the wanted state.
func (s *Session) ToggleGroup(pitchType string, on bool, now float64) error {
	for _, g := range s.Groups() {
		if g.Type != pitchType {
			continue
		}
		for _, z := range g.Zones {
			if s.Active(z.Key) == on {
				continue
			}
			if err := s.Toggle(z.Key, on, now); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("session: toggle group %s: unknown pitch type for %s", pitchType, s.pitcher)
}

// Active reports whether a pitch is currently displayed.
func (s *Session) Active(key string) bool {
	return s.state.Balls.Get(key) != nil
}

// ClearAll turns every pitch off and clears the panel.
func (s *Session) ClearAll() {
	s.state.Balls.Clear()
	s.deselect()
}

// Replay clears trails and restarts every active ball at now.
func (s *Session) Replay(now float64) {
	s.state.Trails.Clear()
	s.state.Balls.Replay(now)
}

// SetTrail shows or hides trail markers. Hiding discards existing ones.
func (s *Session) SetTrail(on bool) {
	s.state.Trails.SetEnabled(on)
}

// SetView switches camera preset. Unknown names use the default camera
// but are kept as requested so the query round-trips.
func (s *Session) SetView(name string) {
	cam, ok := scene.Preset(name)
	if !ok {
		s.log.Warn().Str("view", name).Msg("unknown camera view, using default")
	}
	s.view = name
	s.camera = cam
}

// Query returns the shareable state.
func (s *Session) Query() Query {
	trail := s.state.Trails.Enabled()
	return Query{Team: s.team, Pitcher: s.pitcher, View: s.view, Trail: &trail}
}

func (s *Session) deselect() {
	s.selected = ""
	s.panel.Deselect()
}
