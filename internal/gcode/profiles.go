package gcode

// Profile describes the command dialect of a pen plotter controller.
type Profile struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Startup codes
	StartCode []string `json:"start_code"`

	// Pen commands. Empty means the pen is on the Z axis and is moved to
	// PlotSettings.PenUpZ / PenDownZ.
	PenUp   string `json:"pen_up"`
	PenDown string `json:"pen_down"`

	// Motion
	RapidMove string `json:"rapid_move"` // G0 or equivalent
	FeedMove  string `json:"feed_move"`  // G1 or equivalent
	ArcCW     string `json:"arc_cw"`     // G2 or equivalent

	// End codes
	EndCode []string `json:"end_code"`

	// Comment style
	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"`

	DecimalPlaces int `json:"decimal_places"`
}

// Built-in plotter profiles.
var Profiles = []Profile{
	{
		Name:          "Generic",
		Description:   "Z-axis pen lift, metric, absolute coordinates",
		StartCode:     []string{"G90", "G21", "G17"},
		RapidMove:     "G0",
		FeedMove:      "G1",
		ArcCW:         "G2",
		EndCode:       []string{"M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "GRBL Servo",
		Description:   "GRBL with a servo pen lift driven by the spindle PWM",
		StartCode:     []string{"G90", "G21", "G17"},
		PenUp:         "M5",
		PenDown:       "M3 S1000",
		RapidMove:     "G0",
		FeedMove:      "G1",
		ArcCW:         "G2",
		EndCode:       []string{"M5", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Mach3",
		Description:   "Mach3 style with parenthetical comments",
		StartCode:     []string{"G90", "G21", "G17", "G40"},
		RapidMove:     "G00",
		FeedMove:      "G01",
		ArcCW:         "G02",
		EndCode:       []string{"M30"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
	},
}

// GetProfile returns a built-in profile by name, or the first one if not found.
func GetProfile(name string) Profile {
	for _, p := range Profiles {
		if p.Name == name {
			return p
		}
	}
	return Profiles[0]
}

// GetProfileNames returns the names of the built-in profiles.
func GetProfileNames() []string {
	var names []string
	for _, p := range Profiles {
		names = append(names, p.Name)
	}
	return names
}

// PlotSettings controls how a placement result maps onto the plotter.
type PlotSettings struct {
	Profile string `json:"profile"`

	Scale      float64 `json:"scale"`       // mm per pixel
	FeedRate   float64 `json:"feed_rate"`   // mm/min while drawing
	PlungeRate float64 `json:"plunge_rate"` // mm/min for Z pen moves
	PenUpZ     float64 `json:"pen_up_z"`
	PenDownZ   float64 `json:"pen_down_z"`

	MinRadius float64 `json:"min_radius"` // mm; smaller circles are not drawn
	BandRows  int     `json:"band_rows"`  // Pixel rows per serpentine band

	// Bed size in mm. Zero uses the scaled canvas size.
	BedWidth  float64 `json:"bed_width"`
	BedHeight float64 `json:"bed_height"`
}

// DefaultPlotSettings returns settings for the Generic profile at 0.5 mm per pixel.
func DefaultPlotSettings() PlotSettings {
	return PlotSettings{
		Profile:    "Generic",
		Scale:      0.5,
		FeedRate:   3000,
		PlungeRate: 600,
		PenUpZ:     3,
		PenDownZ:   0,
		MinRadius:  0.5,
		BandRows:   32,
	}
}
