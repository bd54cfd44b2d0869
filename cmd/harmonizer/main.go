// Command harmonizer runs a generated test signal through the harmonizer
// processor and either prints a level report or plays the result.
//
// Usage:
//
//	harmonizer [flags]
//
// Examples:
//
//	harmonizer -signal burst -harmony-mix 0.4
//	harmonizer -preset bright.json -duration 5 -play
//	harmonizer -signal noise -cutoff 800 -drywet 1
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-harmonizer/dsp/core"
	"github.com/cwbudde/algo-harmonizer/harmonizer"
	"github.com/cwbudde/algo-harmonizer/preset"
	"github.com/sirupsen/logrus"
)

type options struct {
	preset     string
	sampleRate int
	block      int
	duration   float64
	signal     string
	freq       float64
	gain       float64
	cutoff     float64
	dryWet     float64
	harmonyMix float64
	play       bool
	verbose    bool
}

func main() {
	var o options
	flag.StringVar(&o.preset, "preset", "", "JSON preset file")
	flag.IntVar(&o.sampleRate, "sample-rate", 48000, "sample rate in Hz")
	flag.IntVar(&o.block, "block", 256, "processing block size in frames")
	flag.Float64Var(&o.duration, "duration", 2, "signal length in seconds")
	flag.StringVar(&o.signal, "signal", "burst", "test signal: sine, noise or burst")
	flag.Float64Var(&o.freq, "freq", 440, "test tone frequency in Hz")
	flag.Float64Var(&o.gain, "gain", harmonizer.GainDefault, "wet gain")
	flag.Float64Var(&o.cutoff, "cutoff", harmonizer.FrequencyDefault, "lowpass cutoff in Hz")
	flag.Float64Var(&o.dryWet, "drywet", harmonizer.DryWetDefault, "dry/wet mix in [0, 1]")
	flag.Float64Var(&o.harmonyMix, "harmony-mix", 0, "grain harmony level in [0, 1]; 0 disables the granular path")
	flag.BoolVar(&o.play, "play", false, "play the result instead of printing a report")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: harmonizer [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs a test signal through the harmonizer.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	if o.verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, o, set); err != nil {
		log.WithFields(logrus.Fields{"error": err}).Error("harmonizer failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logrus.Logger, o options, set map[string]bool) error {
	p, err := loadPreset(o, set)
	if err != nil {
		return err
	}

	proc, err := newProcessor(log, p, o)
	if err != nil {
		return err
	}

	src, err := newSource(o.signal, o.freq, float64(o.sampleRate))
	if err != nil {
		return err
	}

	r := newRenderer(proc, src, o.block, int(o.duration*float64(o.sampleRate)))

	if o.play {
		return play(ctx, log, r, o.sampleRate)
	}

	if err := r.drain(ctx); err != nil {
		return err
	}
	printReport(os.Stdout, r)

	return nil
}

// loadPreset resolves the preset file and applies explicitly set flags on
// top of it.
func loadPreset(o options, set map[string]bool) (*preset.Preset, error) {
	p := preset.Default()
	if o.preset != "" {
		loaded, err := preset.LoadJSON(o.preset)
		if err != nil {
			return nil, err
		}
		p = loaded
	}

	var f preset.File
	if set["gain"] {
		f.Gain = &o.gain
	}
	if set["cutoff"] {
		f.Frequency = &o.cutoff
	}
	if set["drywet"] {
		f.DryWet = &o.dryWet
	}
	if set["harmony-mix"] {
		f.HarmonyMix = &o.harmonyMix
	}
	if err := preset.ApplyFile(p, &f); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	return p, nil
}

// newProcessor builds a stereo processor and starts it at the preset values
// without ramping.
func newProcessor(log *logrus.Logger, p *preset.Preset, o options) (*harmonizer.Processor, error) {
	if o.sampleRate <= 0 || o.block <= 0 {
		return nil, fmt.Errorf("sample rate and block size must be > 0")
	}

	opts := append(p.Options(),
		harmonizer.WithLogger(log),
		harmonizer.WithStream(
			core.WithSampleRate(float64(o.sampleRate)),
			core.WithBlockSize(o.block),
			core.WithChannels(2),
		),
	)

	proc, err := harmonizer.New(opts...)
	if err != nil {
		return nil, err
	}

	proc.ApplyEvents(p.Events())
	if err := proc.Activate(float64(o.sampleRate), o.block); err != nil {
		return nil, err
	}

	return proc, nil
}
