package radhydro

import (
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// ThermoParameters holds the spec §6 configuration options recognised
// by the thermodynamics integrator.
type ThermoParameters struct {
	ThermoSubcycling     bool
	ThermoHIISwitch      float64
	HeatingAmplification float64
	MassFractionH        float64
	MinTempInitialState  bool
}

// Config is the full set of run parameters, collected via viper from
// flags/env/file the same way teacher inmaputil/cmd.go assembles its
// options — a flat list of named options cast from viper's generic
// storage into the typed struct below.
type Config struct {
	Thermo ThermoParameters

	NRank     int
	Ncells    int
	DtMax     float64
	Tmax      float64
	NCheckpoints int

	RadiationOn bool
	CoolingOn   bool

	Dfloor float64
	Pfloor float64
	Tfloor float64

	v *viper.Viper
}

// NewConfig returns a Config with spec-consistent defaults: thermo
// subcycling disabled, solar metallicity mass fraction of hydrogen,
// and a flat T_min floor rather than the initial-state field.
func NewConfig() *Config {
	return &Config{
		Thermo: ThermoParameters{
			ThermoSubcycling:     false,
			ThermoHIISwitch:      1e-2,
			HeatingAmplification: 1.0,
			MassFractionH:        0.7,
			MinTempInitialState:  false,
		},
		NRank:        1,
		DtMax:        1e10,
		NCheckpoints: 1,
		Dfloor:       1e-24,
		Pfloor:       1e-14,
		Tfloor:       100,
	}
}

// RegisterFlags binds this Config's options to pflag, for a cobra
// command's flag set, mirroring inmaputil/cmd.go's option table.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool("thermoSubcycling", c.Thermo.ThermoSubcycling, "enable internal stiff-ODE subcycling")
	fs.Float64("thermoHII_Switch", c.Thermo.ThermoHIISwitch, "ADV threshold below which thermodynamics is inactive")
	fs.Float64("heatingAmplification", c.Thermo.HeatingAmplification, "final multiplier on the thermodynamics RATE")
	fs.Float64("massFractionH", c.Thermo.MassFractionH, "hydrogen mass fraction X_H")
	fs.Bool("minTempInitialState", c.Thermo.MinTempInitialState, "use per-cell T from the initial state as T_min, rather than a flat floor")
	fs.Int("nrank", c.NRank, "number of simulated MPI ranks")
	fs.Float64("dtmax", c.DtMax, "maximum time step, seconds")
	fs.Float64("tmax", c.Tmax, "simulation end time, seconds")
	fs.Int("ncheckpoints", c.NCheckpoints, "number of checkpoints to write")
	fs.Bool("radiation", c.RadiationOn, "enable the radiation component")
	fs.Bool("cooling", c.CoolingOn, "enable the thermodynamics component")
	fs.Int("ncells", c.Ncells, "number of grid cells for a self-contained run")
	fs.Float64("dfloor", c.Dfloor, "density floor")
	fs.Float64("pfloor", c.Pfloor, "pressure floor")
	fs.Float64("tfloor", c.Tfloor, "temperature floor")
}

// Load populates Config from a viper instance that has already read
// flags/env/a YAML or TOML file, using spf13/cast the way
// inmaputil/cmd.go casts generic viper values into typed fields.
func (c *Config) Load(v *viper.Viper) error {
	c.v = v
	var err error
	get := func(key string, dst *float64) {
		if err != nil || !v.IsSet(key) {
			return
		}
		var f float64
		f, err = cast.ToFloat64E(v.Get(key))
		if err == nil {
			*dst = f
		}
	}
	getBool := func(key string, dst *bool) {
		if err != nil || !v.IsSet(key) {
			return
		}
		var b bool
		b, err = cast.ToBoolE(v.Get(key))
		if err == nil {
			*dst = b
		}
	}
	getInt := func(key string, dst *int) {
		if err != nil || !v.IsSet(key) {
			return
		}
		var i int
		i, err = cast.ToIntE(v.Get(key))
		if err == nil {
			*dst = i
		}
	}

	getBool("thermoSubcycling", &c.Thermo.ThermoSubcycling)
	get("thermoHII_Switch", &c.Thermo.ThermoHIISwitch)
	get("heatingAmplification", &c.Thermo.HeatingAmplification)
	get("massFractionH", &c.Thermo.MassFractionH)
	getBool("minTempInitialState", &c.Thermo.MinTempInitialState)
	getInt("nrank", &c.NRank)
	get("dtmax", &c.DtMax)
	get("tmax", &c.Tmax)
	getInt("ncheckpoints", &c.NCheckpoints)
	getBool("radiation", &c.RadiationOn)
	getBool("cooling", &c.CoolingOn)
	getInt("ncells", &c.Ncells)
	get("dfloor", &c.Dfloor)
	get("pfloor", &c.Pfloor)
	get("tfloor", &c.Tfloor)

	if err != nil {
		return &ConfigError{Key: "thermo/run parameters", Err: err}
	}
	return nil
}

// FormatIsTOML reports whether filename's extension indicates a TOML
// configuration file rather than the default YAML.
func FormatIsTOML(filename string) bool {
	return strings.HasSuffix(filename, ".toml")
}
