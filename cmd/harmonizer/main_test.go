package main

import (
	"bytes"
	"context"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-harmonizer/harmonizer"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testOptions() options {
	return options{
		sampleRate: 48000,
		block:      128,
		duration:   0.25,
		signal:     "burst",
		freq:       440,
		gain:       harmonizer.GainDefault,
		cutoff:     harmonizer.FrequencyDefault,
		dryWet:     harmonizer.DryWetDefault,
	}
}

func TestLoadPresetAppliesSetFlags(t *testing.T) {
	o := testOptions()
	o.cutoff = 3000
	o.harmonyMix = 0.5

	p, err := loadPreset(o, map[string]bool{"cutoff": true, "harmony-mix": true})
	if err != nil {
		t.Fatalf("loadPreset: %v", err)
	}
	if p.Params[harmonizer.ParamFrequency] != 3000 {
		t.Fatalf("cutoff = %v, want 3000", p.Params[harmonizer.ParamFrequency])
	}
	if p.Config.HarmonyMix != 0.5 {
		t.Fatalf("harmony mix = %v, want 0.5", p.Config.HarmonyMix)
	}
}

func TestLoadPresetRejectsOutOfRangeFlag(t *testing.T) {
	o := testOptions()
	o.dryWet = 2

	if _, err := loadPreset(o, map[string]bool{"drywet": true}); err == nil {
		t.Fatal("expected error for dry/wet 2")
	}
}

func TestNewSource(t *testing.T) {
	for _, name := range []string{"sine", "Noise", " burst "} {
		if _, err := newSource(name, 440, 48000); err != nil {
			t.Fatalf("newSource(%q): %v", name, err)
		}
	}

	if _, err := newSource("square", 440, 48000); err == nil {
		t.Fatal("expected error for unknown signal")
	}
	if _, err := newSource("sine", 30000, 48000); err == nil {
		t.Fatal("expected error above Nyquist")
	}
}

func TestRendererReadsWholeSignal(t *testing.T) {
	o := testOptions()
	p, err := loadPreset(o, nil)
	if err != nil {
		t.Fatal(err)
	}
	proc, err := newProcessor(quietLogger(), p, o)
	if err != nil {
		t.Fatal(err)
	}
	src, err := newSource(o.signal, o.freq, float64(o.sampleRate))
	if err != nil {
		t.Fatal(err)
	}

	const total = 1000
	r := newRenderer(proc, src, o.block, total)

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(data) != total*channels*4 {
		t.Fatalf("read %d bytes, want %d", len(data), total*channels*4)
	}
	if st := proc.Stats(); st.Frames != total {
		t.Fatalf("processed %d frames, want %d", st.Frames, total)
	}
	if r.peak <= 0 || r.peak > 1/0.7 || math.IsNaN(r.rms()) {
		t.Fatalf("peak = %v rms = %v", r.peak, r.rms())
	}
}

func TestRunPrintsReport(t *testing.T) {
	o := testOptions()
	o.harmonyMix = 0.4

	p, err := loadPreset(o, map[string]bool{"harmony-mix": true})
	if err != nil {
		t.Fatal(err)
	}
	proc, err := newProcessor(quietLogger(), p, o)
	if err != nil {
		t.Fatal(err)
	}
	src, _ := newSource(o.signal, o.freq, float64(o.sampleRate))

	r := newRenderer(proc, src, o.block, int(o.duration*float64(o.sampleRate)))
	if err := r.drain(context.Background()); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	printReport(&out, r)

	for _, want := range []string{"Frames", "12000", "250 ms", "Frequency", "1.0 kHz", "Peak", "Filter at 440 Hz", "Triggers"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("report missing %q:\n%s", want, out.String())
		}
	}
}

func TestDrainStopsOnCancel(t *testing.T) {
	o := testOptions()
	p, _ := loadPreset(o, nil)
	proc, err := newProcessor(quietLogger(), p, o)
	if err != nil {
		t.Fatal(err)
	}
	src, _ := newSource("sine", 440, 48000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRenderer(proc, src, o.block, 48000)
	if err := r.drain(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
