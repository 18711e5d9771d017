package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bob-anderson-ok/IOTAinterferometer/synthesis"
)

func TestEmptyTableGivesDefaults(t *testing.T) {
	params, err := buildParams(map[string]interface{}{})
	require.NoError(t, err)

	assert.Equal(t, synthesis.DefaultConfig(), params.Config)
	assert.Equal(t, "out.jpg", params.Out)
	assert.False(t, params.SaveSky)
	assert.Equal(t, 0, params.WindowSizePixels)
	assert.Equal(t, "info", params.LogLevel)
}

func TestParseJSON5ParamFile(t *testing.T) {
	data := []byte(`{
		// a short run
		"count": 4,
		"duration_hours": 2.5,
		"image_size": 64,
		"save_sky": true,
		"out": "m31.png"
	}`)
	table, err := parseParamFile("run.json5", data)
	require.NoError(t, err)

	params, err := buildParams(table)
	require.NoError(t, err)
	assert.Equal(t, 4, params.Count)
	assert.Equal(t, 2.5, params.DurationHours)
	assert.Equal(t, 64, params.ImageSize)
	assert.True(t, params.SaveSky)
	assert.Equal(t, "m31.png", params.Out)
	assert.Equal(t, 0.21, params.WavelengthM)
}

func TestParseTOMLParamFile(t *testing.T) {
	data := []byte(`
count = 6
wavelength_m = 0.5
array_type = "spiral"
seed = 42
`)
	table, err := parseParamFile("run.TOML", data)
	require.NoError(t, err)

	params, err := buildParams(table)
	require.NoError(t, err)
	assert.Equal(t, 6, params.Count)
	assert.Equal(t, 0.5, params.WavelengthM)
	assert.Equal(t, "spiral", params.ArrayType)
	assert.Equal(t, int64(42), params.Seed)
}

func TestParseParamFileFormatError(t *testing.T) {
	_, err := parseParamFile("bad.json5", []byte(`{"count": `))
	assert.Error(t, err)

	_, err = parseParamFile("bad.toml", []byte(`count = = 3`))
	assert.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("INTERFEROMETER_IMAGE_SIZE", "32")
	t.Setenv("INTERFEROMETER_SAVE_RAW16", "true")

	params, err := buildParams(map[string]interface{}{"image_size": 64.0})
	require.NoError(t, err)
	assert.Equal(t, 32, params.ImageSize)
	assert.True(t, params.SaveRaw16)
}

func TestUnknownKeyRejected(t *testing.T) {
	_, err := buildParams(map[string]interface{}{"num_dishes": 10.0})
	assert.ErrorContains(t, err, "num_dishes")
}

func TestWrongTypeRejected(t *testing.T) {
	_, err := buildParams(map[string]interface{}{"count": "many"})
	assert.Error(t, err)
}

func TestInvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		table map[string]interface{}
	}{
		{"unsupported output", map[string]interface{}{"out": "image.gif"}},
		{"no output extension", map[string]interface{}{"out": "image"}},
		{"negative window", map[string]interface{}{"window_size_pixels": -1.0}},
		{"bad log level", map[string]interface{}{"log_level": "chatty"}},
		{"zero antennas", map[string]interface{}{"count": 0.0}},
		{"zero dish", map[string]interface{}{"dish_size_m": 0.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildParams(tt.table)
			assert.Error(t, err)
		})
	}
}
