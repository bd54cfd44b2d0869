package harmonizer

import (
	"math"
	"testing"
)

func TestParamsCatalogue(t *testing.T) {
	ps := Params()
	if len(ps) != int(ParamCount) {
		t.Fatalf("len(Params()) = %d, want %d", len(ps), ParamCount)
	}

	want := []struct {
		name          string
		min, max, def float64
	}{
		{"Gain", 0, 2, 1},
		{"Frequency", 20, 20000, 1000},
		{"Dry/Wet", 0, 1, 0.5},
	}
	for i, w := range want {
		p := ps[i]
		if p.ID != ParamID(i) || p.Name != w.name || p.Min != w.min || p.Max != w.max || p.Default != w.def {
			t.Fatalf("Params()[%d] = %+v, want %+v", i, p, w)
		}
	}

	if _, ok := Info(ParamCount); ok {
		t.Fatal("Info(ParamCount) reported ok")
	}
	if ParamDryWet.String() != "Dry/Wet" || ParamID(9).String() != "ParamID(9)" {
		t.Fatal("unexpected ParamID names")
	}
}

func TestParamInfoClamp(t *testing.T) {
	tests := []struct {
		id   ParamID
		in   float64
		want float64
	}{
		{ParamGain, 5, 2},
		{ParamGain, -1, 0},
		{ParamGain, 0.7, 0.7},
		{ParamFrequency, 5, 20},
		{ParamFrequency, 1e6, 20000},
		{ParamFrequency, math.Inf(1), 20000},
		{ParamDryWet, 2, 1},
		{ParamDryWet, -0.0001, 0},
		{ParamDryWet, math.NaN(), 0.5},
	}
	for _, tt := range tests {
		info, _ := Info(tt.id)
		if got := info.Clamp(tt.in); got != tt.want {
			t.Fatalf("%v.Clamp(%v) = %v, want %v", tt.id, tt.in, got, tt.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		id   ParamID
		v    float64
		want string
	}{
		{ParamGain, 1, "1.00x"},
		{ParamGain, 0.5, "0.50x"},
		{ParamFrequency, 500, "500 Hz"},
		{ParamFrequency, 999.4, "999 Hz"},
		{ParamFrequency, 1000, "1.0 kHz"},
		{ParamFrequency, 15300, "15.3 kHz"},
		{ParamDryWet, 0.5, "50%"},
		{ParamDryWet, 1, "100%"},
		{ParamID(7), 3, "3"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.id, tt.v); got != tt.want {
			t.Fatalf("FormatValue(%v, %v) = %q, want %q", tt.id, tt.v, got, tt.want)
		}
	}
}
