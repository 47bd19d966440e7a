package dataset

// PitchRecord holds one averaged pitch as delivered by the dataset.
// Field presence varies by source, so every field is optional.
type PitchRecord struct {
	// Velocity
	ReleaseSpeed    Num `json:"release_speed"` // labeled ft/s by the source
	ReleaseSpeedMPH Num `json:"release_speed_mph"`
	MPH             Num `json:"mph"`
	Velocity        Num `json:"velocity"`
	Vel             Num `json:"vel"`

	// Kinematics (Statcast convention: x toward catcher's right, y toward
	// the mound, z up; velocities in ft/s, accelerations in ft/s²)
	VX0 Num `json:"vx0"`
	VY0 Num `json:"vy0"`
	VZ0 Num `json:"vz0"`
	AX  Num `json:"ax"`
	AY  Num `json:"ay"`
	AZ  Num `json:"az"`

	ReleasePosX      Num `json:"release_pos_x"`
	ReleasePosZ      Num `json:"release_pos_z"`
	ReleaseExtension Num `json:"release_extension"`

	// Spin
	ReleaseSpinRate Num `json:"release_spin_rate"`
	Spin            Num `json:"spin"`
	RPM             Num `json:"rpm"`
	SpinAxis        Num `json:"spin_axis"` // degrees

	// Vertical break
	InducedVerticalBreak Num `json:"inducedVerticalBreak"`
	IVB                  Num `json:"ivb"`
	IVBIn                Num `json:"ivb_in"`
	IVBInches            Num `json:"ivb_inches"`
	MovementVertical     Num `json:"movement_vertical"`    // ft
	MovementVerticalFt   Num `json:"movement_vertical_ft"` // ft
	VerticalMovementIn   Num `json:"vertical_movement_in"`
	TotalVerticalBreakIn Num `json:"total_vertical_break_in"`
	TimeToPlate          Num `json:"time_to_plate"`
	TimeToPlateAlt       Num `json:"timeToPlate"`
	TT                   Num `json:"tt"`
	PfxZ                 Num `json:"pfx_z"`
	VZBreak              Num `json:"vz_break"`
	VertBreak            Num `json:"vertBreak"`

	// Horizontal break
	HB                   Num `json:"hb"`
	HBIn                 Num `json:"hb_in"`
	HBInches             Num `json:"hb_inches"`
	HorizontalBreak      Num `json:"horizontalBreak"`
	HBreak               Num `json:"hbreak"`
	HorizontalBreakSnake Num `json:"horizontal_break"`
	PfxX                 Num `json:"pfx_x"`
	MovementHorizontal   Num `json:"movement_horizontal"`    // ft
	MovementHorizontalFt Num `json:"movement_horizontal_ft"` // ft
}

// Pitcher maps "<pitchType> <zone>" keys to records.
type Pitcher map[string]PitchRecord

// Team maps pitcher names to their pitches.
type Team map[string]Pitcher

// Dataset maps team names to teams.
type Dataset map[string]Team
