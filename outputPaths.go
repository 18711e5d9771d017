package main

import (
	"path/filepath"
	"strings"
)

func outputBase(out string) string {
	return strings.TrimSuffix(out, filepath.Ext(out))
}

// skyPath is where the sky is written next to the dirty image: out.jpg
// becomes out-sky.jpg.
func skyPath(out string) string {
	return outputBase(out) + "-sky" + filepath.Ext(out)
}

func uvPlotPath(out string) string {
	return outputBase(out) + "-uv.png"
}

func raw16Path(out string) string {
	return outputBase(out) + "-16bit.png"
}
