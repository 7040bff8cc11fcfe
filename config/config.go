// Package config loads the YAML configuration of the frontier command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/frontier/emitter"
	"github.com/katalvlaran/frontier/laser"
	"github.com/katalvlaran/frontier/logger"
	"github.com/katalvlaran/frontier/render"
	"github.com/katalvlaran/frontier/transform"
)

// ErrInvalidConfig wraps every validation problem found by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the root of the YAML document. Every section is optional;
// missing keys keep their Default values.
//
// Frame.Scale is the resolution of simulated worlds; their size and
// offsets follow the world map.
type Config struct {
	Frame  transform.Frame `yaml:"frame"`
	Laser  Laser           `yaml:"laser"`
	Search Search          `yaml:"search"`
	Render Render          `yaml:"render"`
	MQTT   MQTT            `yaml:"mqtt"`
	Log    logger.Config   `yaml:"log"`
}

// Laser is the sensor model plus mapper rasterisation.
type Laser struct {
	laser.Model `yaml:",inline"`
	Step        float64 `yaml:"step"`
	Thickness   int     `yaml:"thickness"`
}

// Search toggles search diagnostics.
type Search struct {
	// Trace logs candidate updates and run summaries at debug level.
	Trace bool `yaml:"trace"`
}

// Render controls image output.
type Render struct {
	Scale   int               `yaml:"scale"`
	Palette map[string]string `yaml:"palette,omitempty"`
}

// MQTT enables and configures target publishing.
type MQTT struct {
	Enabled        bool `yaml:"enabled"`
	emitter.Config `yaml:",inline"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	opts := laser.DefaultMapperOptions()
	return Config{
		Frame:  transform.DefaultFrame(),
		Laser:  Laser{Model: laser.URG04LX(), Step: opts.Step, Thickness: opts.Thickness},
		Render: Render{Scale: 1},
		MQTT:   MQTT{Config: emitter.DefaultConfig()},
		// Log stays empty so logger.New can fall back to LOG_LEVEL and LOG_FORMAT.
	}
}

// Load reads path over Default and validates the result. Unknown keys are
// rejected.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a YAML document over Default and validates the result.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate collects every problem into one error wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	if err := c.Frame.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Laser.Model.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !(c.Laser.Step > 0) {
		errs = append(errs, fmt.Errorf("laser.step must be positive (%v)", c.Laser.Step))
	}
	if c.Laser.Thickness < 0 {
		errs = append(errs, fmt.Errorf("laser.thickness cannot be negative (%d)", c.Laser.Thickness))
	}
	if c.Render.Scale < 1 {
		errs = append(errs, fmt.Errorf("render.scale must be >= 1 (%d)", c.Render.Scale))
	}
	if _, err := render.ParsePalette(c.Render.Palette); err != nil {
		errs = append(errs, err)
	}
	if c.MQTT.Enabled {
		if err := c.MQTT.Config.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// MapperOptions returns the laser.Mapper options of the Laser section.
func (c Config) MapperOptions() []laser.Option {
	return []laser.Option{laser.WithStep(c.Laser.Step), laser.WithThickness(c.Laser.Thickness)}
}

// Palette returns the render palette with the configured overrides.
func (c Config) Palette() (render.Palette, error) {
	return render.ParsePalette(c.Render.Palette)
}

// String renders the configuration back to YAML.
func (c Config) String() string {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	_ = enc.Close()
	return buf.String()
}
