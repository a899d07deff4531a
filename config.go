package svgico

import (
	"fmt"
	"os"

	"github.com/esimov/svgico/icon"
	"github.com/pelletier/go-toml/v2"
)

// Default directories, relative to the working directory.
const (
	DefaultSrc       = "./data/SVG"
	DefaultRasterDst = "./data/PNG"
	DefaultIconDst   = "./data/ICO"
)

// Config mirrors the command line options and can be loaded from a TOML file:
//
//	input      = "assets/svg"
//	raster     = "build/png"
//	output     = "build/ico"
//	format     = "png"
//	entry      = "auto"
//	verify     = true
//	keep_going = false
type Config struct {
	Input     string `toml:"input"`
	Raster    string `toml:"raster"`
	Output    string `toml:"output"`
	Format    string `toml:"format"`
	Entry     string `toml:"entry"`
	Lenient   bool   `toml:"lenient"`
	Verify    bool   `toml:"verify"`
	KeepGoing bool   `toml:"keep_going"`
	Quiet     bool   `toml:"quiet"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Input:  DefaultSrc,
		Raster: DefaultRasterDst,
		Output: DefaultIconDst,
		Format: string(FormatPNG),
		Entry:  icon.Auto.String(),
	}
}

// LoadConfig reads a TOML file on top of the defaults. Keys missing from
// the file keep their default value; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Build validates the configuration and turns it into a processor and its operations.
func (c Config) Build() (*Processor, *Ops, error) {
	rf, err := ParseRasterFormat(c.Format)
	if err != nil {
		return nil, nil, err
	}
	ef, err := icon.ParseFormat(c.Entry)
	if err != nil {
		return nil, nil, err
	}
	if c.Input == "" || c.Raster == "" || c.Output == "" {
		return nil, nil, fmt.Errorf("input, raster and output directories must be set")
	}
	proc := &Processor{
		RasterFormat: rf,
		EntryFormat:  ef,
		Lenient:      c.Lenient,
		Verify:       c.Verify,
	}
	op := &Ops{
		Src:       c.Input,
		RasterDst: c.Raster,
		IconDst:   c.Output,
		KeepGoing: c.KeepGoing,
	}
	return proc, op, nil
}
