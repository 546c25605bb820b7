package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/avinterp/config"
	"github.com/xaionaro-go/avinterp/engine"
	_ "github.com/xaionaro-go/avinterp/engine/blend"
	_ "github.com/xaionaro-go/avinterp/engine/nearest"
	"github.com/xaionaro-go/avinterp/interp"
	"github.com/xaionaro-go/avinterp/logger"
	"github.com/xaionaro-go/avinterp/types"
	"github.com/xaionaro-go/observability"
)

type flags struct {
	ConfigPath        string
	Engine            string
	Model             string
	Mode              string
	SlowMotionFactor  float64
	OutputRate        types.Rational
	Device            int
	Instances         int
	VRAM              float64
	Download          bool
	DrainRounds       uint
	EngineCallTimeout time.Duration
	NetPprofAddr      string
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags] <input> <output>\n", os.Args[0])
		pflag.PrintDefaults()
	}

	defaults := config.Default()
	var f flags
	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	pflag.StringVar(&f.ConfigPath, "config", "", "path to a YAML config; flags override its values")
	pflag.StringVar(&f.Engine, "engine", defaults.Engine, "the inference engine: "+strings.Join(engine.Names(), ", "))
	pflag.StringVar(&f.Model, "model", defaults.EngineParams.Model, "the model short name; its family selects the mode (chr/chf: chronos, apo/apf/aion: apollo)")
	pflag.StringVar(&f.Mode, "mode", "", "override the mode derived from the model: chronos or apollo")
	pflag.Float64Var(&f.SlowMotionFactor, "slowmo", defaults.Interpolation.SlowMotionFactor, "the slow motion factor [0.1, 16]")
	pflag.Var(&f.OutputRate, "fps", "the output frame rate (e.g. 60, 60000/1001 or ~59.94); the input rate if not set")
	pflag.IntVar(&f.Device, "device", defaults.EngineParams.Device, "the device index: -2 is auto, -1 is CPU")
	pflag.IntVar(&f.Instances, "instances", defaults.EngineParams.Instances, "the amount of extra processing instances [0, 3]")
	pflag.Float64Var(&f.VRAM, "vram", defaults.EngineParams.VRAM, "the share of the device memory to use [0.1, 1]")
	pflag.BoolVar(&f.Download, "download", defaults.EngineParams.Download, "allow downloading the model")
	pflag.UintVar(&f.DrainRounds, "drain-rounds", defaults.Interpolation.DrainRounds, "the amount of frames extrapolated at the end of the stream")
	pflag.DurationVar(&f.EngineCallTimeout, "engine-timeout", 0, "the time limit of every engine call; 0 means no limit")
	pflag.StringVar(&f.NetPprofAddr, "net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	pflag.Parse()
	if len(pflag.Args()) != 2 {
		pflag.Usage()
		os.Exit(1)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.SetDefault(func() logger.Logger {
		return l
	})
	defer belt.Flush(ctx)

	if f.NetPprofAddr != "" {
		observability.Go(ctx, func(ctx context.Context) { l.Error(http.ListenAndServe(f.NetPprofAddr, nil)) })
	}

	astiav.SetLogLevel(logger.LevelToAstiav(l.Level()))
	astiav.SetLogCallback(func(c astiav.Classer, level astiav.LogLevel, fmt, msg string) {
		var cs string
		if c != nil {
			if cl := c.Class(); cl != nil {
				cs = " - class: " + cl.String()
			}
		}
		l.Logf(
			logger.LevelFromAstiav(level),
			"%s%s",
			strings.TrimSpace(msg), cs,
		)
	})

	cfg, err := loadConfig(f)
	if err != nil {
		logger.Fatalf(ctx, "%v", err)
	}
	logger.Debugf(ctx, "config: %s", configYAML(cfg))

	if err := run(ctx, cfg, pflag.Arg(0), pflag.Arg(1)); err != nil {
		logger.Fatalf(ctx, "%v", err)
	}
}

// loadConfig reads the config file (if any) and applies the flags which were
// set explicitly.
func loadConfig(f flags) (config.Config, error) {
	cfg := config.Default()
	if f.ConfigPath != "" {
		var err error
		cfg, err = config.ReadFile(f.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	var changed []string
	pflag.Visit(func(flag *pflag.Flag) {
		changed = append(changed, flag.Name)
	})
	sort.Strings(changed)
	for _, name := range changed {
		switch name {
		case "engine":
			cfg.Engine = f.Engine
		case "model":
			cfg.EngineParams.Model = f.Model
		case "mode":
			cfg.Interpolation.Mode = f.Mode
		case "slowmo":
			cfg.Interpolation.SlowMotionFactor = f.SlowMotionFactor
		case "fps":
			cfg.Interpolation.OutputRate = &f.OutputRate
		case "device":
			cfg.EngineParams.Device = f.Device
		case "instances":
			cfg.EngineParams.Instances = f.Instances
		case "vram":
			cfg.EngineParams.VRAM = f.VRAM
		case "download":
			cfg.EngineParams.Download = f.Download
		case "drain-rounds":
			cfg.Interpolation.DrainRounds = f.DrainRounds
		case "engine-timeout":
			cfg.Interpolation.EngineCallTimeout = f.EngineCallTimeout
		}
	}
	return cfg, nil
}

func configYAML(cfg config.Config) string {
	b, err := cfg.Bytes()
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(b)
}

func run(
	ctx context.Context,
	cfg config.Config,
	inputURL string,
	outputURL string,
) (_err error) {
	logger.Debugf(ctx, "run(ctx, '%s', '%s')", inputURL, outputURL)
	defer func() { logger.Debugf(ctx, "/run(ctx, '%s', '%s'): %v", inputURL, outputURL, _err) }()

	kernelCfg, err := cfg.FrameInterpolatorConfig()
	if err != nil {
		return err
	}
	if kernelCfg.EngineParams.Scale != 1 {
		return interp.ErrInvalidConfig{Err: fmt.Errorf("the shipped engines do not upscale, scale must be 1")}
	}

	closer := astikit.NewCloser()
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Errorf(ctx, "unable to close: %v", err)
		}
	}()

	in, err := openInput(ctx, closer, inputURL)
	if err != nil {
		return err
	}

	t, err := newTranscoder(ctx, closer, in, outputURL, kernelCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := t.Close(ctx); err != nil {
			logger.Errorf(ctx, "unable to close the transcoder: %v", err)
		}
	}()

	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()
	observability.Go(ctx, func(ctx context.Context) {
		printProgress(ctx, t)
	})

	err = in.ReadFrames(ctx, func(f *astiav.Frame) error {
		return t.SendInputFrame(ctx, f)
	})
	if err != nil {
		return errors.Join(err, t.Abort(ctx))
	}
	if err := t.Finish(ctx); err != nil {
		return err
	}
	printSummary(ctx, t)
	return nil
}
