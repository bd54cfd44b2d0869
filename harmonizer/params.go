package harmonizer

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-harmonizer/dsp/core"
)

// ParamID identifies a host-automatable parameter.
type ParamID uint32

const (
	ParamGain ParamID = iota
	ParamFrequency
	ParamDryWet

	// ParamCount is the number of parameters.
	ParamCount
)

// Parameter ranges and defaults.
const (
	GainMin     = 0.0
	GainMax     = 2.0
	GainDefault = 1.0

	FrequencyMin     = 20.0
	FrequencyMax     = 20000.0
	FrequencyDefault = 1000.0

	DryWetMin     = 0.0
	DryWetMax     = 1.0
	DryWetDefault = 0.5
)

// ParamInfo describes one parameter.
type ParamInfo struct {
	ID      ParamID
	Name    string
	Min     float64
	Max     float64
	Default float64
}

var paramInfos = [ParamCount]ParamInfo{
	ParamGain:      {ID: ParamGain, Name: "Gain", Min: GainMin, Max: GainMax, Default: GainDefault},
	ParamFrequency: {ID: ParamFrequency, Name: "Frequency", Min: FrequencyMin, Max: FrequencyMax, Default: FrequencyDefault},
	ParamDryWet:    {ID: ParamDryWet, Name: "Dry/Wet", Min: DryWetMin, Max: DryWetMax, Default: DryWetDefault},
}

// Params returns the parameter catalogue in ID order.
func Params() []ParamInfo {
	out := make([]ParamInfo, ParamCount)
	copy(out, paramInfos[:])
	return out
}

// Info returns the description of id.
func Info(id ParamID) (ParamInfo, bool) {
	if id >= ParamCount {
		return ParamInfo{}, false
	}
	return paramInfos[id], true
}

// Clamp limits v to the parameter range. NaN maps to the default.
func (p ParamInfo) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return p.Default
	}
	return core.Clamp(v, p.Min, p.Max)
}

// String returns the parameter name.
func (id ParamID) String() string {
	if info, ok := Info(id); ok {
		return info.Name
	}
	return fmt.Sprintf("ParamID(%d)", uint32(id))
}

// FormatValue renders v for display: gain as "1.00x", frequency as
// "500 Hz" or "1.5 kHz" and dry/wet as a percentage.
func FormatValue(id ParamID, v float64) string {
	switch id {
	case ParamGain:
		return fmt.Sprintf("%.2fx", v)
	case ParamFrequency:
		if v >= 1000 {
			return fmt.Sprintf("%.1f kHz", v/1000)
		}
		return fmt.Sprintf("%.0f Hz", v)
	case ParamDryWet:
		return fmt.Sprintf("%.0f%%", v*100)
	default:
		return fmt.Sprintf("%g", v)
	}
}

// ParamEvent is a host parameter change.
type ParamEvent struct {
	ID    ParamID
	Value float64
}

// Status is returned by Process.
type Status int

const (
	// StatusContinue asks the host to keep calling Process.
	StatusContinue Status = iota
	// StatusStop is part of the host contract; Process never returns it.
	StatusStop
)

func defaultRaw() [ParamCount]float64 {
	var raw [ParamCount]float64
	for i, info := range paramInfos {
		raw[i] = info.Default
	}
	return raw
}
