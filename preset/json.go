// Package preset loads harmonizer presets from JSON files.
package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-harmonizer/dsp/harmony"
	"github.com/cwbudde/algo-harmonizer/harmonizer"
)

// File is the JSON schema for harmonizer presets. Absent fields keep their
// defaults.
type File struct {
	Gain      *float64 `json:"gain"`
	Frequency *float64 `json:"frequency"`
	DryWet    *float64 `json:"dry_wet"`

	HarmonyMix    *float64 `json:"harmony_mix"`
	Mode          string   `json:"mode"`
	Voices        *int     `json:"voices"`
	PoolSize      *int     `json:"pool_size"`
	BasePitch     *float64 `json:"base_pitch"`
	GrainMs       *float64 `json:"grain_ms"`
	MinIntervalMs *float64 `json:"min_interval_ms"`
	RingSeconds   *float64 `json:"ring_seconds"`

	Onset *OnsetSetting `json:"onset"`
}

// OnsetSetting is a partial onset detector override.
type OnsetSetting struct {
	FrameSize       *int     `json:"frame_size"`
	EnergyThreshold *float32 `json:"energy_threshold"`
	RatioThreshold  *float32 `json:"ratio_threshold"`
	FluxThreshold   *float32 `json:"flux_threshold"`
	Spectral        *bool    `json:"spectral"`
}

// Preset is a resolved preset: the granular path configuration and the
// initial parameter values.
type Preset struct {
	Config harmonizer.Config
	Params [harmonizer.ParamCount]float64
}

// Default returns the processor defaults.
func Default() *Preset {
	p := &Preset{Config: harmonizer.DefaultConfig()}
	for _, info := range harmonizer.Params() {
		p.Params[info.ID] = info.Default
	}
	return p
}

// LoadJSON loads a preset JSON file and applies it on top of the defaults.
func LoadJSON(path string) (*Preset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}

	p := Default()
	if err := ApplyFile(p, &f); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}
	return p, nil
}

// ApplyFile applies a parsed preset file onto an existing preset. The
// resulting configuration is validated.
func ApplyFile(dst *Preset, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination preset")
	}
	if f == nil {
		return nil
	}

	params := []struct {
		id harmonizer.ParamID
		v  *float64
	}{
		{harmonizer.ParamGain, f.Gain},
		{harmonizer.ParamFrequency, f.Frequency},
		{harmonizer.ParamDryWet, f.DryWet},
	}
	for _, p := range params {
		if p.v == nil {
			continue
		}
		info, _ := harmonizer.Info(p.id)
		if *p.v < info.Min || *p.v > info.Max {
			return fmt.Errorf("%s must be in [%g, %g]", jsonName(p.id), info.Min, info.Max)
		}
		dst.Params[p.id] = *p.v
	}

	cfg := &dst.Config
	if f.HarmonyMix != nil {
		cfg.HarmonyMix = *f.HarmonyMix
	}
	if f.Mode != "" {
		m, err := harmony.ParseMode(strings.ToLower(strings.TrimSpace(f.Mode)))
		if err != nil {
			return err
		}
		cfg.Mode = m
	}
	if f.Voices != nil {
		cfg.Voices = *f.Voices
	}
	if f.PoolSize != nil {
		cfg.PoolSize = *f.PoolSize
	}
	if f.BasePitch != nil {
		cfg.BasePitch = *f.BasePitch
	}
	if f.GrainMs != nil {
		cfg.GrainMs = *f.GrainMs
	}
	if f.MinIntervalMs != nil {
		cfg.MinIntervalMs = *f.MinIntervalMs
	}
	if f.RingSeconds != nil {
		cfg.RingSeconds = *f.RingSeconds
	}

	if o := f.Onset; o != nil {
		if o.FrameSize != nil {
			cfg.Onset.FrameSize = *o.FrameSize
		}
		if o.EnergyThreshold != nil {
			cfg.Onset.EnergyThreshold = *o.EnergyThreshold
		}
		if o.RatioThreshold != nil {
			cfg.Onset.RatioThreshold = *o.RatioThreshold
		}
		if o.FluxThreshold != nil {
			cfg.Onset.FluxThreshold = *o.FluxThreshold
		}
		if o.Spectral != nil {
			cfg.Onset.Spectral = *o.Spectral
		}
	}

	return cfg.Validate()
}

// Events returns the parameter values as host events in ID order.
func (p *Preset) Events() []harmonizer.ParamEvent {
	events := make([]harmonizer.ParamEvent, 0, len(p.Params))
	for id, v := range p.Params {
		events = append(events, harmonizer.ParamEvent{ID: harmonizer.ParamID(id), Value: v})
	}
	return events
}

// Options returns the processor options that install the preset
// configuration.
func (p *Preset) Options() []harmonizer.Option {
	return []harmonizer.Option{harmonizer.WithConfig(p.Config)}
}

func jsonName(id harmonizer.ParamID) string {
	switch id {
	case harmonizer.ParamGain:
		return "gain"
	case harmonizer.ParamFrequency:
		return "frequency"
	case harmonizer.ParamDryWet:
		return "dry_wet"
	default:
		return id.String()
	}
}
