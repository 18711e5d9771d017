package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/KevinWang15/go-json5"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bob-anderson-ok/IOTAinterferometer/imagebuf"
	"github.com/bob-anderson-ok/IOTAinterferometer/synthesis"
)

// envPrefix is prepended to upper-cased parameter names to form the
// environment variables that override the parameter file.
const envPrefix = "INTERFEROMETER"

// ObservationParams is everything read from the parameter file: the
// observation itself plus what to write out and show.
type ObservationParams struct {
	synthesis.Config `mapstructure:",squash"`

	Out              string `mapstructure:"out"` // dirty image; the extension picks the format
	SaveSky          bool   `mapstructure:"save_sky"`
	SaveUVPlot       bool   `mapstructure:"save_uv_plot"`
	SaveRaw16        bool   `mapstructure:"save_raw16"`
	MetricsFile      string `mapstructure:"metrics_file"`
	WindowSizePixels int    `mapstructure:"window_size_pixels"` // 0 disables the viewer
	LogLevel         string `mapstructure:"log_level"`
	Title            string `mapstructure:"title"`
}

func setDefaults(v *viper.Viper) {
	def := synthesis.DefaultConfig()
	v.SetDefault("sky", def.Sky)
	v.SetDefault("stars", def.Stars)
	v.SetDefault("count", def.Count)
	v.SetDefault("duration_hours", def.DurationHours)
	v.SetDefault("time_samples", def.TimeSamples)
	v.SetDefault("wavelength_m", def.WavelengthM)
	v.SetDefault("dish_size_m", def.DishSizeM)
	v.SetDefault("image_size", def.ImageSize)
	v.SetDefault("array_type", def.ArrayType)
	v.SetDefault("scale_m", def.ScaleM)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("workers", def.Workers)

	v.SetDefault("out", "out.jpg")
	v.SetDefault("save_sky", false)
	v.SetDefault("save_uv_plot", false)
	v.SetDefault("save_raw16", false)
	v.SetDefault("metrics_file", "")
	v.SetDefault("window_size_pixels", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("title", "Dirty image")
}

// parseParamFile reads the parameter file into a generic table. Files ending
// in .toml are TOML; everything else is treated as JSON5 (plain JSON included).
func parseParamFile(path string, data []byte) (map[string]interface{}, error) {
	table := map[string]interface{}{}
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &table)
	} else {
		err = json.Unmarshal(data, &table)
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}

// buildParams layers defaults, the parameter table and environment
// overrides, then decodes and validates the result. Unknown keys are errors.
func buildParams(table map[string]interface{}) (ObservationParams, error) {
	var params ObservationParams

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.MergeConfigMap(table); err != nil {
		return params, err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &params,
	})
	if err != nil {
		return params, err
	}
	if err := dec.Decode(v.AllSettings()); err != nil {
		return params, err
	}

	if err := params.validate(); err != nil {
		return params, err
	}
	return params, nil
}

func (p ObservationParams) validate() error {
	var errs []error
	if err := p.Config.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !imagebuf.Supported(p.Out) {
		errs = append(errs, fmt.Errorf("out: %q has no supported image extension (png, jpg, bmp, tif)", p.Out))
	}
	if p.WindowSizePixels < 0 {
		errs = append(errs, fmt.Errorf("window_size_pixels must not be negative, got %d", p.WindowSizePixels))
	}
	if _, err := logrus.ParseLevel(p.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}
