// Package config loads demo settings from an optional .env file and the
// process environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrInvalid = errors.New("config: invalid value")

const prefix = "KEYFRAME_"

type Config struct {
	Width      int
	Height     int
	Title      string
	Loop       bool
	TimeScale  float64
	Mute       bool
	SampleRate int
}

func Default() Config {
	return Config{
		Width:      960,
		Height:     640,
		Title:      "Keyframe: 2D transform timeline",
		Loop:       true,
		TimeScale:  1,
		SampleRate: 48000,
	}
}

// Load reads path (skipped when it does not exist) and then the environment
func Load(path string) (Config, error) {
	vars := map[string]string{}
	if path != "" {
		fileVars, err := godotenv.Read(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		default:
			vars = fileVars
		}
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, prefix) {
			vars[k] = v
		}
	}
	return parse(vars)
}

func parse(vars map[string]string) (Config, error) {
	c := Default()
	var err error
	for key, raw := range vars {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		v := strings.TrimSpace(raw)
		switch strings.TrimPrefix(key, prefix) {
		case "WIDTH":
			c.Width, err = strconv.Atoi(v)
		case "HEIGHT":
			c.Height, err = strconv.Atoi(v)
		case "TITLE":
			c.Title = v
		case "LOOP":
			c.Loop, err = strconv.ParseBool(v)
		case "TIMESCALE":
			c.TimeScale, err = strconv.ParseFloat(v, 64)
		case "MUTE":
			c.Mute, err = strconv.ParseBool(v)
		case "SAMPLE_RATE":
			c.SampleRate, err = strconv.Atoi(v)
		default:
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, raw, err)
		}
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.TimeScale == 0 || math.IsNaN(c.TimeScale) || math.IsInf(c.TimeScale, 0) {
		return fmt.Errorf("%w: time scale must be finite and non-zero, got %v", ErrInvalid, c.TimeScale)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalid, c.SampleRate)
	}
	return nil
}
