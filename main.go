package main

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/bob-anderson-ok/IOTAinterferometer/antenna"
	"github.com/bob-anderson-ok/IOTAinterferometer/imagebuf"
	"github.com/bob-anderson-ok/IOTAinterferometer/metrics"
	"github.com/bob-anderson-ok/IOTAinterferometer/sky"
	"github.com/bob-anderson-ok/IOTAinterferometer/synthesis"
)

// !!!!! This MUST match the app name given in the run configuration !!!!!
const version = "1_0_0"

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

func main() {

	programStart := time.Now()

	args := os.Args

	if len(args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: interferometer <parameter-file>")
		os.Exit(1)
	}

	path := args[1]

	// Read the json5 (or json, or toml) parameter file
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to read input file %q failed: %w\n", path, err))
		os.Exit(2)
	}

	// Parse the parameter file into a generic container
	table, err := parseParamFile(path, data)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tFormat error in file %q: %w\n", path, err))
		os.Exit(3)
	}

	params, err := buildParams(table)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tInvalid parameters in file %q: %w\n", path, err))
		os.Exit(4)
	}

	logger := newLogger(params.LogLevel)
	logger.Infof("Version %s", version)

	seed := params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.WithField("seed", seed).Info("random generator seeded (set seed to repeat this run)")
	rng := rand.New(rand.NewSource(seed))

	skyImage, known, err := sky.FromSource(params.Sky, params.Stars, params.ImageSize, rng)
	if err != nil {
		logger.WithError(err).Error("building the sky failed")
		os.Exit(5)
	}
	if !known {
		logger.WithField("sky", params.Sky).Warnf("sky source not implemented, using %q", sky.SourceStars)
	}

	if params.SaveSky {
		p := skyPath(params.Out)
		if err := skyImage.Save(p); err != nil {
			logger.WithError(err).Errorf("writing of %q failed", p)
			os.Exit(6)
		}
		logger.WithField("path", p).Info("sky image written")
	}

	array, err := antenna.Generate(antenna.Layout(params.ArrayType), params.Count, params.ScaleM, params.DishSizeM, rng, logger)
	if err != nil {
		logger.WithError(err).Error("building the antenna array failed")
		os.Exit(7)
	}

	pipeline, err := synthesis.New(params.Config, logger)
	if err != nil {
		logger.WithError(err).Error("building the pipeline failed")
		os.Exit(8)
	}
	logger.WithFields(logrus.Fields{
		"antennas":  params.Count,
		"samples":   params.TimeSamples,
		"beamwidth": params.Beamwidth(),
		"pixels":    pipeline.Beam().Len(),
	}).Info("observation starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	result, err := pipeline.Run(ctx, skyImage, array)
	stop()
	if err != nil {
		logger.WithError(err).Error("observation failed")
		os.Exit(9)
	}

	if err := result.Dirty.Save(params.Out); err != nil {
		logger.WithError(err).Errorf("writing of %q failed", params.Out)
		os.Exit(10)
	}
	logger.WithField("path", params.Out).Info("dirty image written")

	if params.SaveRaw16 {
		p := raw16Path(params.Out)
		// Full scale is the image peak; the scale is logged so intensities can be recovered.
		scale := 1.0
		if peak := floats.Max(result.Dirty.ToVector()); peak > 0 {
			scale = 65535 / peak
		}
		if err := result.Dirty.SaveGray16(p, scale); err != nil {
			logger.WithError(err).Errorf("writing of %q failed", p)
			os.Exit(11)
		}
		logger.WithFields(logrus.Fields{"path": p, "scale": scale}).Info("16-bit dirty image written")
	}

	var uvImage image.Image
	if params.SaveUVPlot || params.WindowSizePixels > 0 {
		uvImage, err = makeUVCoverageImage(result.History.Baselines(), "UV coverage", 800, 800)
		if err != nil {
			logger.WithError(err).Error("creation of the UV coverage plot failed")
			os.Exit(12)
		}
	}
	if params.SaveUVPlot {
		p := uvPlotPath(params.Out)
		if err := imagebuf.WriteImage(p, uvImage); err != nil {
			logger.WithError(err).Errorf("writing of %q failed", p)
			os.Exit(12)
		}
		logger.WithField("path", p).Info("UV coverage plot written")
	}

	if params.MetricsFile != "" {
		if err := metrics.WriteTextfile(params.MetricsFile); err != nil {
			logger.WithError(err).Errorf("writing of %q failed", params.MetricsFile)
			os.Exit(13)
		}
	}

	logger.WithField("elapsed", time.Since(programStart).String()).Info("total program run time")

	if params.WindowSizePixels > 0 {
		size := params.WindowSizePixels

		dirtyPreview, err := result.Dirty.Preview(size)
		if err != nil {
			logger.WithError(err).Error("creation of the display image failed")
			os.Exit(14)
		}
		images := []namedImage{{title: params.Title, img: dirtyPreview}}

		if skyPreview, err := skyImage.Preview(size); err == nil {
			images = append(images, namedImage{title: "Sky", img: skyPreview})
		}
		images = append(images, namedImage{title: "UV coverage", img: uvImage})

		showImages(size, images)
	}
}
