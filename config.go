package vkc

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Config describes a compute job: how to open the device, which stages to run and where
// their shaders and image files live.
//
//	shader_dir = "shaders"
//
//	[app]
//	name = "offset"
//	validation = true
//
//	[[stage]]
//	shader = "add_offset.spv"
//	dispatch = [5, 1, 1]
//
//	[image]
//	input = "~/in.png"
//	output = "out.png"
type Config struct {
	App       AppConfig     `toml:"app"`
	ShaderDir string        `toml:"shader_dir"`
	Stages    []StageConfig `toml:"stage"`
	Image     *ImageConfig  `toml:"image"`
}

type AppConfig struct {
	Name               string   `toml:"name"`
	Validation         bool     `toml:"validation"`
	Device             int      `toml:"device"`
	InstanceExtensions []string `toml:"instance_extensions"`
	DeviceExtensions   []string `toml:"device_extensions"`
}

type StageConfig struct {
	Shader   string   `toml:"shader"`
	Dispatch []uint32 `toml:"dispatch"`
}

type ImageConfig struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
}

// ParseConfig decodes and validates a TOML job. Unknown keys are rejected and paths
// starting with ~ are expanded.
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := c.expand(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadConfig reads a job file. Relative paths in it are taken relative to the directory
// holding the file.
func LoadConfig(path string) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading job file")
	}
	c, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	c.resolve(filepath.Dir(path))
	return c, nil
}

func (c *Config) validate() error {
	if len(c.Stages) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no stages")
	}
	for i, s := range c.Stages {
		if s.Shader == "" {
			return errors.Wrapf(ErrInvalidConfig, "stage %d has no shader", i)
		}
		if len(s.Dispatch) != 3 {
			return errors.Wrapf(ErrInvalidConfig, "stage %d dispatch needs 3 values, has %d", i, len(s.Dispatch))
		}
		for _, v := range s.Dispatch {
			if v == 0 {
				return errors.Wrapf(ErrInvalidConfig, "stage %d dispatch %v has a zero dimension", i, s.Dispatch)
			}
		}
	}
	if c.App.Device < 0 {
		return errors.Wrapf(ErrInvalidConfig, "device index %d", c.App.Device)
	}
	return nil
}

func (c *Config) expand() error {
	var err error
	if c.ShaderDir, err = homedir.Expand(c.ShaderDir); err != nil {
		return err
	}
	if c.Image != nil {
		if c.Image.Input, err = homedir.Expand(c.Image.Input); err != nil {
			return err
		}
		if c.Image.Output, err = homedir.Expand(c.Image.Output); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) resolve(base string) {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	if c.ShaderDir == "" {
		c.ShaderDir = base
	} else {
		c.ShaderDir = join(c.ShaderDir)
	}
	if c.Image != nil {
		c.Image.Input = join(c.Image.Input)
		c.Image.Output = join(c.Image.Output)
	}
}

// Options returns the context options of the job
func (c *Config) Options() Options {
	return Options{
		Name:               c.App.Name,
		Validation:         c.App.Validation,
		DeviceIndex:        c.App.Device,
		InstanceExtensions: c.App.InstanceExtensions,
		DeviceExtensions:   c.App.DeviceExtensions,
	}
}

// Shaders returns the shader names in stage order
func (c *Config) Shaders() []string {
	ret := make([]string, len(c.Stages))
	for i, s := range c.Stages {
		ret[i] = s.Shader
	}
	return ret
}

// Extents returns the dispatch extents in stage order
func (c *Config) Extents() []Extent {
	ret := make([]Extent, len(c.Stages))
	for i, s := range c.Stages {
		ret[i] = Extent{X: s.Dispatch[0], Y: s.Dispatch[1], Z: s.Dispatch[2]}
	}
	return ret
}

// ShaderLoader returns a loader reading from the shader directory
func (c *Config) ShaderLoader() ShaderLoader {
	dir := c.ShaderDir
	if dir == "" {
		dir = "."
	}
	return DirShaderLoader(dir)
}
