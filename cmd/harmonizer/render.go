package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-harmonizer/dsp/core"
	"github.com/cwbudde/algo-harmonizer/dsp/filter/biquad"
	"github.com/cwbudde/algo-harmonizer/harmonizer"
	"github.com/go-audio/audio"
)

const channels = 2

// renderer pulls blocks from a source through the processor. It implements
// io.Reader over the interleaved float32 little-endian output.
type renderer struct {
	proc *harmonizer.Processor
	src  *source
	buf  *audio.Float32Buffer

	// remaining counts frames still to render.
	remaining int
	// off is the next unread byte of the current block.
	off   int
	block []byte

	frames int
	peak   float64
	sumSq  float64
}

func newRenderer(proc *harmonizer.Processor, src *source, blockFrames, totalFrames int) *renderer {
	return &renderer{
		proc: proc,
		src:  src,
		buf: &audio.Float32Buffer{
			Format: &audio.Format{NumChannels: channels, SampleRate: int(proc.SampleRate())},
			Data:   make([]float32, blockFrames*channels),
		},
		remaining: max(0, totalFrames),
		block:     make([]byte, 0, blockFrames*channels*4),
	}
}

// next renders one block and reports false once the signal is exhausted.
func (r *renderer) next() bool {
	if r.remaining == 0 {
		return false
	}

	n := min(r.remaining, len(r.buf.Data)/channels)
	data := r.buf.Data[:n*channels]
	for i := 0; i < n; i++ {
		x := r.src.next()
		data[i*channels] = x
		data[i*channels+1] = x
	}

	view := audio.Float32Buffer{Format: r.buf.Format, Data: data}
	r.proc.ProcessBuffer(&view)

	r.block = r.block[:0]
	for _, y := range data {
		r.block = binary.LittleEndian.AppendUint32(r.block, math.Float32bits(y))

		a := math.Abs(float64(y))
		r.peak = math.Max(r.peak, a)
		r.sumSq += a * a
	}
	r.off = 0
	r.frames += n
	r.remaining -= n

	return true
}

func (r *renderer) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if r.off >= len(r.block) && !r.next() {
			break
		}
		c := copy(p[n:], r.block[r.off:])
		r.off += c
		n += c
	}

	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// drain renders the whole signal without playing it.
func (r *renderer) drain(ctx context.Context) error {
	for r.next() {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) rms() float64 {
	if r.frames == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.frames*channels))
}

func printReport(w io.Writer, r *renderer) {
	st := r.proc.Stats()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Frames\t%d\n", st.Frames)
	fmt.Fprintf(tw, "Duration\t%.0f ms\n", core.SamplesToMs(int(st.Frames), st.SampleRate))
	fmt.Fprintf(tw, "Blocks\t%d\n", st.Blocks)
	fmt.Fprintf(tw, "Sample rate\t%.0f Hz\n", st.SampleRate)
	for _, info := range harmonizer.Params() {
		fmt.Fprintf(tw, "%s\t%s\n", info.Name, harmonizer.FormatValue(info.ID, r.proc.ParamValue(info.ID)))
	}
	lp := biquad.Lowpass(st.Cutoff, st.SampleRate)
	fmt.Fprintf(tw, "Filter at %.0f Hz\t%.2f dB\n", r.src.freq, lp.MagnitudeDB(r.src.freq, st.SampleRate))
	fmt.Fprintf(tw, "Peak\t%.2f dBFS\n", core.LinearToDB(r.peak))
	fmt.Fprintf(tw, "RMS\t%.2f dBFS\n", core.LinearToDB(r.rms()))
	if r.proc.Config().Enabled() {
		fmt.Fprintf(tw, "Onsets\t%d\n", st.Onsets)
		fmt.Fprintf(tw, "Triggers\t%d\n", st.Triggers)
		fmt.Fprintf(tw, "Active voices\t%d\n", st.ActiveVoices)
	}
	tw.Flush()
}
