package harmonizer

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-harmonizer/dsp/clip"
	"github.com/cwbudde/algo-harmonizer/dsp/core"
	"github.com/cwbudde/algo-harmonizer/dsp/filter/biquad"
	"github.com/cwbudde/algo-harmonizer/dsp/smooth"
	"github.com/go-audio/audio"
	"github.com/sirupsen/logrus"
)

// Processor is one processing session. Create it with New.
type Processor struct {
	log    logrus.FieldLogger
	cfg    Config
	stream core.ProcessorConfig

	// Raw parameter values as math.Float64bits, shared with non-audio
	// goroutines.
	raw         [ParamCount]atomic.Uint64
	pendingSnap atomic.Bool

	bank   *smooth.Bank
	filter *biquad.Stereo
	grains *granularPath

	// Interleaved adapter planes, sized at configure.
	inPlanes, outPlanes [MaxChannels][]float32
	inViews, outViews   [MaxChannels][]float32

	// Per-chunk scratch for the summed voices and one channel's filter
	// output.
	voiceBuf, wetBuf []float32

	clock uint64

	stats struct {
		sampleRate   atomic.Uint64
		blocks       atomic.Uint64
		frames       atomic.Uint64
		onsets       atomic.Uint64
		triggers     atomic.Uint64
		activeVoices atomic.Int64
		lastEnergy   atomic.Uint32
		lastFlux     atomic.Uint32
		cutoff       atomic.Uint64
	}
}

// Stats is a snapshot of processing counters.
type Stats struct {
	SampleRate   float64
	Blocks       uint64
	Frames       uint64
	Cutoff       float64
	Onsets       uint64
	Triggers     uint64
	ActiveVoices int
	LastEnergy   float32
	LastFlux     float32
}

// New creates a processor with default parameter values at 44.1 kHz.
func New(opts ...Option) (*Processor, error) {
	s := settings{
		config: DefaultConfig(),
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	log := s.logger.WithFields(logrus.Fields{"function": "New"})

	if err := s.config.Validate(); err != nil {
		log.WithFields(logrus.Fields{"error": err}).Error("Configuration rejected")
		return nil, err
	}

	stream := core.ApplyProcessorOptions(s.stream...)
	if err := stream.Validate(MaxChannels); err != nil {
		log.WithFields(logrus.Fields{"error": err}).Error("Configuration rejected")
		return nil, err
	}

	bank, err := smooth.NewBank(int(ParamCount))
	if err != nil {
		return nil, err
	}
	bank.Watch(int(ParamFrequency))

	p := &Processor{
		log:    s.logger,
		cfg:    s.config,
		stream: stream,
		bank:   bank,
		filter: biquad.NewStereo(FrequencyDefault, stream.SampleRate),
	}

	for i, v := range defaultRaw() {
		p.raw[i].Store(math.Float64bits(v))
	}

	if err := p.configure(stream.SampleRate, stream.BlockSize); err != nil {
		log.WithFields(logrus.Fields{"error": err}).Error("Initial configuration failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"sample_rate": stream.SampleRate,
		"block_size":  stream.BlockSize,
		"channels":    stream.Channels,
		"granular":    s.config.Enabled(),
	}).Info("Processor created")

	return p, nil
}

// Activate prepares the processor for a stream at sampleRate with blocks of
// at most maxFrames. It recomputes the smoothing coefficient, snaps the
// smoothed values to the raw ones and clears all filter, history and voice
// state.
func (p *Processor) Activate(sampleRate float64, maxFrames int) error {
	log := p.log.WithFields(logrus.Fields{
		"function":    "Activate",
		"sample_rate": sampleRate,
		"max_frames":  maxFrames,
	})

	if !core.IsFinitePositive(sampleRate) {
		err := fmt.Errorf("harmonizer sample rate must be > 0: %v", sampleRate)
		log.WithFields(logrus.Fields{"error": err}).Error("Activation rejected")
		return err
	}
	if maxFrames <= 0 {
		err := fmt.Errorf("harmonizer max frames must be > 0: %d", maxFrames)
		log.WithFields(logrus.Fields{"error": err}).Error("Activation rejected")
		return err
	}

	if err := p.configure(sampleRate, maxFrames); err != nil {
		log.WithFields(logrus.Fields{"error": err}).Error("Activation failed")
		return err
	}

	log.Info("Processor activated")

	return nil
}

func (p *Processor) configure(sampleRate float64, maxFrames int) error {
	raw := p.rawValues()
	if err := p.bank.Configure(sampleRate, raw[:]); err != nil {
		return err
	}
	p.pendingSnap.Store(false)

	var grains *granularPath
	if p.cfg.Enabled() {
		g, err := newGranularPath(p.cfg, sampleRate)
		if err != nil {
			return err
		}
		grains = g
	}

	for ch := range p.inPlanes {
		p.inPlanes[ch] = core.EnsureLen32(p.inPlanes[ch], maxFrames)
		p.outPlanes[ch] = core.EnsureLen32(p.outPlanes[ch], maxFrames)
	}
	p.voiceBuf = core.EnsureLen32(p.voiceBuf, maxFrames)
	p.wetBuf = core.EnsureLen32(p.wetBuf, maxFrames)

	p.stream.SampleRate = sampleRate
	p.stream.BlockSize = maxFrames
	p.stats.sampleRate.Store(math.Float64bits(sampleRate))
	p.grains = grains
	p.clock = 0

	p.filter.Reset()
	p.refreshFilter()

	return nil
}

// SampleRate returns the active sample rate.
func (p *Processor) SampleRate() float64 { return p.stream.SampleRate }

// Config returns the granular path configuration.
func (p *Processor) Config() Config { return p.cfg }

// SetParam clamps value into the range of id, stores it as the raw value and
// starts a smoothing ramp. It returns false for an unknown id.
//
// SetParam retargets the smoothing bank and must only be called from the
// audio thread, never concurrently with Process. Other goroutines use
// LoadState.
func (p *Processor) SetParam(id ParamID, value float64) bool {
	if !p.storeParam(id, value) {
		return false
	}

	raw := p.rawValues()
	p.bank.Trigger(raw[:])

	return true
}

// ApplyEvents applies a block's parameter events in order. Unknown IDs are
// ignored. Like SetParam it is audio-thread only.
func (p *Processor) ApplyEvents(events []ParamEvent) {
	changed := false
	for _, ev := range events {
		if p.storeParam(ev.ID, ev.Value) {
			changed = true
		}
	}

	if changed {
		raw := p.rawValues()
		p.bank.Trigger(raw[:])
	}
}

func (p *Processor) storeParam(id ParamID, value float64) bool {
	info, ok := Info(id)
	if !ok {
		return false
	}

	p.raw[id].Store(math.Float64bits(info.Clamp(value)))

	return true
}

// ParamValue returns the raw (unsmoothed) value of id, or 0 for an unknown
// id. It is safe to call from any goroutine.
func (p *Processor) ParamValue(id ParamID) float64 {
	if id >= ParamCount {
		return 0
	}
	return math.Float64frombits(p.raw[id].Load())
}

// SmoothedValue returns the smoothed value of id as used by the last block.
// Audio thread only.
func (p *Processor) SmoothedValue(id ParamID) float64 {
	if id >= ParamCount {
		return 0
	}
	return p.bank.Current(int(id))
}

func (p *Processor) rawValues() [ParamCount]float64 {
	var raw [ParamCount]float64
	for i := range raw {
		raw[i] = math.Float64frombits(p.raw[i].Load())
	}
	return raw
}

// Process filters frames samples per channel from in to out. in and out may
// alias. Channel 0 uses the left filter and channel 1 the right.
//
// A block with no channels, more than MaxChannels channels, differing
// input and output channel counts or a channel shorter than frames is
// skipped: the usable output channels are zeroed. frames == 0 is a no-op.
func (p *Processor) Process(in, out [][]float32, frames int) Status {
	if p.pendingSnap.CompareAndSwap(true, false) {
		raw := p.rawValues()
		p.bank.Snap(raw[:])
	}

	if frames <= 0 {
		return StatusContinue
	}

	if !buffersValid(in, out, frames) {
		silence(out, frames)
		return StatusContinue
	}

	p.bank.Advance(frames)
	if p.bank.Dirty() {
		p.refreshFilter()
	}

	gain := float32(p.bank.Current(int(ParamGain)))
	mix := float32(p.bank.Current(int(ParamDryWet)))
	channels := len(in)

	for off := 0; off < frames; off += len(p.voiceBuf) {
		n := min(frames-off, len(p.voiceBuf))

		// Voices read the input before any channel of this chunk is
		// overwritten, so in and out may alias.
		voices := p.voiceBuf[:n]
		for i := range voices {
			voices[i] = 0
			if p.grains != nil {
				voices[i] = p.grains.tick(midSample(in, off+i), float64(p.clock)/p.stream.SampleRate)
			}
			p.clock++
		}

		wet := p.wetBuf[:n]
		for ch := 0; ch < channels; ch++ {
			src := in[ch][off : off+n]
			dst := out[ch][off : off+n]

			copy(wet, src)
			p.filter.Channel(ch).ProcessBlock(wet)
			for i, x := range src {
				dst[i] = clip.Mix(x, wet[i]*gain, mix) + voices[i]
			}
			clip.SoftClipBlock(dst)
		}
	}

	p.publishStats(frames)

	return StatusContinue
}

// ProcessBuffer runs an interleaved buffer through Process in blocks of at
// most the activated block size. A nil buffer, missing format or channel
// count different from the configured one zeroes the data.
func (p *Processor) ProcessBuffer(buf *audio.Float32Buffer) Status {
	if buf == nil {
		return StatusContinue
	}

	channels := 0
	if buf.Format != nil {
		channels = buf.Format.NumChannels
	}

	if channels != p.stream.Channels || channels <= 0 {
		core.Zero32(buf.Data)
		return StatusContinue
	}

	frames := len(buf.Data) / channels
	block := p.stream.BlockSize

	for off := 0; off < frames; off += block {
		n := min(block, frames-off)
		data := buf.Data[off*channels : (off+n)*channels]

		for ch := 0; ch < channels; ch++ {
			p.inViews[ch] = p.inPlanes[ch][:n]
			p.outViews[ch] = p.outPlanes[ch][:n]
		}

		in := p.inViews[:channels]
		out := p.outViews[:channels]

		core.Deinterleave(in, data, channels, n)
		p.Process(in, out, n)
		core.Interleave(data, out, channels, n)
	}

	return StatusContinue
}

// Reset clears filter taps, grain history, onset state and voices.
// Parameters and their ramps are kept.
func (p *Processor) Reset() {
	p.filter.Reset()
	if p.grains != nil {
		p.grains.reset()
	}
	p.clock = 0
}

// Stats returns a snapshot of the processing counters. It is safe to call
// from any goroutine.
func (p *Processor) Stats() Stats {
	return Stats{
		SampleRate:   math.Float64frombits(p.stats.sampleRate.Load()),
		Blocks:       p.stats.blocks.Load(),
		Frames:       p.stats.frames.Load(),
		Cutoff:       math.Float64frombits(p.stats.cutoff.Load()),
		Onsets:       p.stats.onsets.Load(),
		Triggers:     p.stats.triggers.Load(),
		ActiveVoices: int(p.stats.activeVoices.Load()),
		LastEnergy:   math.Float32frombits(p.stats.lastEnergy.Load()),
		LastFlux:     math.Float32frombits(p.stats.lastFlux.Load()),
	}
}

func (p *Processor) refreshFilter() {
	cutoff := p.bank.Commit()
	p.filter.Recompute(cutoff, p.stream.SampleRate)
	p.stats.cutoff.Store(math.Float64bits(cutoff))
}

func (p *Processor) publishStats(frames int) {
	p.stats.blocks.Add(1)
	p.stats.frames.Add(uint64(frames))

	if g := p.grains; g != nil {
		p.stats.onsets.Store(g.detector.Onsets())
		p.stats.triggers.Store(g.triggers)
		p.stats.activeVoices.Store(int64(g.pool.Active()))
		p.stats.lastEnergy.Store(math.Float32bits(g.detector.LastEnergy()))
		p.stats.lastFlux.Store(math.Float32bits(g.detector.LastFlux()))
	}
}

func buffersValid(in, out [][]float32, frames int) bool {
	if len(in) == 0 || len(in) > MaxChannels || len(in) != len(out) {
		return false
	}

	for ch := range in {
		if len(in[ch]) < frames || len(out[ch]) < frames {
			return false
		}
	}

	return true
}

func silence(out [][]float32, frames int) {
	for _, ch := range out {
		core.Zero32(ch[:min(len(ch), frames)])
	}
}

func midSample(in [][]float32, i int) float32 {
	if len(in) == 1 {
		return in[0][i]
	}

	var sum float32
	for ch := range in {
		sum += in[ch][i]
	}

	return sum / float32(len(in))
}
