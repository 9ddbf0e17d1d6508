package config

// Presets are ready-made runs on the built-in reference rotation field.
var Presets = map[string]*Config{
	"midlat": {
		Interp: "nearest", Steps: 10,
		Start: StartConfig{Lat: 40.0, Lon: -120.0},
	},
	"equator": {
		Interp: "nearest", Steps: 20,
		Start: StartConfig{Lat: 0.0, Lon: 0.0},
	},
	"southern": {
		Interp: "nearest", Steps: 15,
		Start: StartConfig{Lat: -45.0, Lon: 60.0},
	},
	"smooth": {
		Interp: "bilinear", Steps: 30,
		Start: StartConfig{Lat: 25.0, Lon: -40.0},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
