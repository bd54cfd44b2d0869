package onset

import "fmt"

// Config configures a streaming [Detector].
type Config struct {
	// FrameSize is the analysis frame length in samples.
	FrameSize int
	// EnergyThreshold is the absolute mean-square energy a frame must exceed.
	EnergyThreshold float32
	// RatioThreshold is the energy ratio versus the previous frame that
	// must be exceeded.
	RatioThreshold float32
	// FluxThreshold, when > 0, additionally requires the frame flux to
	// exceed it.
	FluxThreshold float32
	// Spectral selects FFT magnitude flux instead of time-domain flux.
	// FrameSize must then be a power of two >= 64.
	Spectral bool
}

// DefaultConfig returns 512-sample frames, energy threshold 0.01 and
// ratio threshold 2 with time-domain flux.
func DefaultConfig() Config {
	return Config{
		FrameSize:       512,
		EnergyThreshold: 0.01,
		RatioThreshold:  2,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.FrameSize <= 0 {
		return fmt.Errorf("onset frame size must be > 0: %d", c.FrameSize)
	}
	if !(c.EnergyThreshold >= 0) {
		return fmt.Errorf("onset energy threshold must be >= 0: %v", c.EnergyThreshold)
	}
	if !(c.RatioThreshold >= 0) {
		return fmt.Errorf("onset ratio threshold must be >= 0: %v", c.RatioThreshold)
	}
	if !(c.FluxThreshold >= 0) {
		return fmt.Errorf("onset flux threshold must be >= 0: %v", c.FluxThreshold)
	}
	return nil
}

// Detector collects samples into consecutive frames and evaluates each
// completed frame against the one before it.
type Detector struct {
	cfg Config

	current  []float32
	previous []float32
	fill     int

	spectral *SpectralAnalyzer

	previousEnergy float32
	lastEnergy     float32
	lastFlux       float32
	frames         uint64
	onsets         uint64
}

// NewDetector allocates a detector for cfg.
func NewDetector(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Detector{
		cfg:      cfg,
		current:  make([]float32, cfg.FrameSize),
		previous: make([]float32, cfg.FrameSize),
	}

	if cfg.Spectral {
		s, err := NewSpectralAnalyzer(cfg.FrameSize)
		if err != nil {
			return nil, err
		}
		d.spectral = s
	}

	return d, nil
}

// Config returns the detector settings.
func (d *Detector) Config() Config { return d.cfg }

// Push appends one sample. When it completes a frame, the frame is
// evaluated and Push reports whether it is an onset.
func (d *Detector) Push(x float32) bool {
	d.current[d.fill] = x
	d.fill++
	if d.fill < len(d.current) {
		return false
	}

	d.fill = 0
	return d.evaluate()
}

func (d *Detector) evaluate() bool {
	energy := Energy(d.current)

	var flux float32
	if d.spectral != nil {
		// Frame size was validated at construction, so Flux cannot fail.
		flux, _ = d.spectral.Flux(d.current)
	} else {
		flux = SpectralFlux(d.current, d.previous)
	}

	onset := Detect(energy, d.previousEnergy, d.cfg.EnergyThreshold, d.cfg.RatioThreshold)
	if onset && d.cfg.FluxThreshold > 0 && flux <= d.cfg.FluxThreshold {
		onset = false
	}

	d.previousEnergy = energy
	d.lastEnergy = energy
	d.lastFlux = flux
	d.frames++
	if onset {
		d.onsets++
	}

	d.current, d.previous = d.previous, d.current

	return onset
}

// LastEnergy returns the energy of the most recently completed frame.
func (d *Detector) LastEnergy() float32 { return d.lastEnergy }

// LastFlux returns the flux of the most recently completed frame.
func (d *Detector) LastFlux() float32 { return d.lastFlux }

// Frames returns the number of completed frames.
func (d *Detector) Frames() uint64 { return d.frames }

// Onsets returns the number of frames flagged as onsets.
func (d *Detector) Onsets() uint64 { return d.onsets }

// Reset discards the partial frame and the frame history.
func (d *Detector) Reset() {
	for i := range d.current {
		d.current[i] = 0
		d.previous[i] = 0
	}

	d.fill = 0
	d.previousEnergy = 0
	d.lastEnergy = 0
	d.lastFlux = 0
	d.frames = 0
	d.onsets = 0

	if d.spectral != nil {
		d.spectral.Reset()
	}
}
