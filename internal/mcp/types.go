package mcp

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// DisplayInfo describes one display in real compositor coordinates.
type DisplayInfo struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Rotation int    `json:"rotation" jsonschema:"Rotation in degrees (0, 90, 180 or 270)"`
	Line     string `json:"line" jsonschema:"The monitor line that would be written for this display"`
}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Backend    string        `json:"backend"`
	ConfigPath string        `json:"config_path"`
	Displays   []DisplayInfo `json:"displays"`
}

// Move places a display at a real position.
type Move struct {
	Name string `json:"name" jsonschema:"required,Display name as reported by list_displays"`
	X    int    `json:"x" jsonschema:"required,Real x coordinate of the top-left corner"`
	Y    int    `json:"y" jsonschema:"required,Real y coordinate of the top-left corner"`
}

// Rotate sets a display's rotation.
type Rotate struct {
	Name    string `json:"name" jsonschema:"required,Display name as reported by list_displays"`
	Degrees int    `json:"degrees" jsonschema:"required,Absolute rotation: 0, 90, 180 or 270"`
}

// LayoutInput is the input for the preview_layout tool.
type LayoutInput struct {
	Moves     []Move   `json:"moves,omitempty" jsonschema:"Displays to reposition. Positions are clamped to the editor canvas."`
	Rotations []Rotate `json:"rotations,omitempty" jsonschema:"Displays to rotate"`
	Legacy    *bool    `json:"legacy,omitempty" jsonschema:"When true, omit the transform field from monitor lines. Defaults to the include_transform setting."`
}

// PreviewLayoutOutput is the output for the preview_layout tool.
type PreviewLayoutOutput struct {
	Path     string        `json:"path"`
	Text     string        `json:"text" jsonschema:"Monitor lines that save_layout would write"`
	Current  string        `json:"current" jsonschema:"Current content of the monitor config file"`
	Changed  bool          `json:"changed"`
	Displays []DisplayInfo `json:"displays"`
	Warnings []string      `json:"warnings,omitempty"`
}

// SaveLayoutInput is the input for the save_layout tool.
type SaveLayoutInput struct {
	Moves     []Move   `json:"moves,omitempty" jsonschema:"Displays to reposition. Positions are clamped to the editor canvas."`
	Rotations []Rotate `json:"rotations,omitempty" jsonschema:"Displays to rotate"`
	Legacy    *bool    `json:"legacy,omitempty" jsonschema:"When true, omit the transform field from monitor lines. Defaults to the include_transform setting."`
	Confirm   bool `json:"confirm" jsonschema:"required,Must be true. Call preview_layout first and review the text."`
}

// SaveLayoutOutput is the output for the save_layout tool.
type SaveLayoutOutput struct {
	Path        string   `json:"path"`
	Bytes       int      `json:"bytes"`
	Lines       int      `json:"lines"`
	Summary     string   `json:"summary"`
	Reloaded    bool     `json:"reloaded"`
	ReloadError string   `json:"reload_error,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}
