package water

// Preset is a named pair of water colors.
type Preset struct {
	Name    string
	Shallow [3]float32
	Deep    [3]float32
}

// Presets is an ordered, read-only preset table.
type Presets struct {
	list []Preset
}

// DefaultPresets returns the built-in table.
func DefaultPresets() *Presets {
	return &Presets{list: []Preset{
		{"caribbean", [3]float32{0.25, 0.85, 0.80}, [3]float32{0.00, 0.15, 0.35}},
		{"mediterranean", [3]float32{0.20, 0.65, 0.75}, [3]float32{0.05, 0.20, 0.40}},
		{"coral_reef", [3]float32{0.30, 0.95, 0.90}, [3]float32{0.00, 0.25, 0.50}},
		{"arctic_sea", [3]float32{0.35, 0.70, 0.85}, [3]float32{0.02, 0.10, 0.25}},
		{"icelandic_lake", [3]float32{0.70, 0.90, 0.95}, [3]float32{0.25, 0.45, 0.55}},
		{"fjord", [3]float32{0.20, 0.45, 0.55}, [3]float32{0.02, 0.12, 0.18}},
		{"north_sea", [3]float32{0.25, 0.45, 0.50}, [3]float32{0.05, 0.10, 0.20}},
		{"alpine_lake", [3]float32{0.30, 0.65, 0.55}, [3]float32{0.05, 0.20, 0.15}},
		{"great_lakes", [3]float32{0.20, 0.50, 0.60}, [3]float32{0.05, 0.12, 0.20}},
		{"volcanic_lake", [3]float32{0.40, 0.70, 0.65}, [3]float32{0.10, 0.20, 0.25}},
		{"river", [3]float32{0.30, 0.50, 0.35}, [3]float32{0.05, 0.15, 0.10}},
		{"amazon_river", [3]float32{0.45, 0.35, 0.20}, [3]float32{0.15, 0.10, 0.05}},
		{"swamp", [3]float32{0.40, 0.35, 0.20}, [3]float32{0.10, 0.12, 0.05}},
		{"desert_oasis", [3]float32{0.45, 0.80, 0.65}, [3]float32{0.10, 0.30, 0.30}},
		{"toxic_sludge", [3]float32{0.60, 1.00, 0.20}, [3]float32{0.10, 0.30, 0.05}},
		{"molten_lava", [3]float32{1.00, 0.40, 0.00}, [3]float32{0.30, 0.05, 0.00}},
		{"arcane_pool", [3]float32{0.50, 0.20, 1.00}, [3]float32{0.10, 0.00, 0.30}},
		{"industrial_sewage", [3]float32{0.40, 0.35, 0.15}, [3]float32{0.10, 0.08, 0.02}},
		{"cyberpunk_pool", [3]float32{0.00, 1.00, 1.00}, [3]float32{0.00, 0.20, 0.40}},
		{"blood_pool", [3]float32{0.80, 0.10, 0.10}, [3]float32{0.20, 0.00, 0.00}},
		{"alien_lake", [3]float32{0.20, 1.00, 0.80}, [3]float32{0.00, 0.20, 0.25}},
	}}
}

// Lookup finds a preset by name.
func (p *Presets) Lookup(name string) (Preset, bool) {
	for _, pr := range p.list {
		if pr.Name == name {
			return pr, true
		}
	}
	return Preset{}, false
}

// Names returns preset names in table order.
func (p *Presets) Names() []string {
	names := make([]string, len(p.list))
	for i, pr := range p.list {
		names[i] = pr.Name
	}
	return names
}

// Len returns the number of presets.
func (p *Presets) Len() int { return len(p.list) }

// At returns the i-th preset.
func (p *Presets) At(i int) Preset { return p.list[i] }
