package harmonizer

import (
	"math"

	"github.com/cwbudde/algo-harmonizer/dsp/core"
	"github.com/cwbudde/algo-harmonizer/dsp/grain"
	"github.com/cwbudde/algo-harmonizer/dsp/harmony"
	"github.com/cwbudde/algo-harmonizer/dsp/onset"
	"github.com/cwbudde/algo-harmonizer/dsp/ring"
)

// granularPath records the input mid signal, watches it for onsets and on
// each accepted trigger starts one grain per consonant harmony ratio.
type granularPath struct {
	mix       float32
	mode      harmony.Mode
	voices    int
	basePitch float32

	grainLen    int
	minInterval float64 // seconds

	history  *ring.Buffer
	detector *onset.Detector
	gate     onset.TriggerGate
	pool     *grain.Pool

	// anchor holds the ring write position at which each voice started;
	// voice reads are relative to it, not to the live cursor.
	anchor [grain.MaxVoices]int

	triggers uint64
}

func newGranularPath(cfg Config, sampleRate float64) (*granularPath, error) {
	grainLen := max(1, core.MsToSamples(cfg.GrainMs, sampleRate))
	ringLen := max(int(math.Ceil(cfg.RingSeconds*sampleRate)), 2*grainLen+1)

	history, err := ring.New(ringLen)
	if err != nil {
		return nil, err
	}

	detector, err := onset.NewDetector(cfg.Onset)
	if err != nil {
		return nil, err
	}

	pool, err := grain.NewPool(cfg.PoolSize)
	if err != nil {
		return nil, err
	}

	return &granularPath{
		mix:         float32(cfg.HarmonyMix),
		mode:        cfg.Mode,
		voices:      cfg.Voices,
		basePitch:   float32(cfg.BasePitch),
		grainLen:    grainLen,
		minInterval: cfg.MinIntervalMs / 1000,
		history:     history,
		detector:    detector,
		pool:        pool,
	}, nil
}

// tick consumes one input sample at time now (seconds) and returns the sum
// of all active voices.
func (g *granularPath) tick(x float32, now float64) float32 {
	g.history.Write(x)

	if g.detector.Push(x) && g.gate.ShouldTrigger(now, g.minInterval) {
		g.trigger()
	}

	return g.render()
}

// render sums one sample of every voice.
func (g *granularPath) render() float32 {
	var sum float32
	for h := grain.Handle(0); int(h) < g.pool.Cap(); h++ {
		sum += g.pool.Render(h, g.history, g.anchor[h])
	}
	return sum
}

func (g *granularPath) trigger() {
	ratios := harmony.FilterConsonant(harmony.RatiosFor(g.mode, g.voices), g.basePitch)
	amp := g.mix / float32(ratios.Len())

	for _, r := range ratios.Slice() {
		g.startVoice(r, amp)
	}

	g.triggers++
}

// startVoice starts a grain one grain length behind the current write
// position.
func (g *granularPath) startVoice(ratio, amp float32) grain.Handle {
	h := g.pool.Allocate()
	g.anchor[h] = g.history.WritePos()
	g.pool.Start(h, float32(g.grainLen), ratio, g.grainLen, amp)
	return h
}

func (g *granularPath) reset() {
	g.history.Reset()
	g.detector.Reset()
	g.gate.Reset()
	g.pool.Reset()
	g.anchor = [grain.MaxVoices]int{}
	g.triggers = 0
}
