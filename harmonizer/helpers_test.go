package harmonizer

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/cwbudde/algo-harmonizer/dsp/core"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestProcessor(t *testing.T, opts ...Option) *Processor {
	t.Helper()

	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	p, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func encodeState(magic, version uint32, values ...float64) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, magic)
	_ = binary.Write(&buf, binary.LittleEndian, version)
	for _, v := range values {
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

// snapParams loads gain, frequency and dry/wet without ramping.
func snapParams(t *testing.T, p *Processor, gain, freq, dryWet float64) {
	t.Helper()

	if err := p.LoadState(bytes.NewReader(encodeState(StateMagic, StateVersion, gain, freq, dryWet))); err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	p.Process(nil, nil, 0)
}

func planes(channels, frames int) [][]float32 {
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
	}
	return out
}

func stereo48k(block int) Option {
	return WithStream(core.WithSampleRate(48000), core.WithBlockSize(block), core.WithChannels(2))
}
