package core

import "fmt"

// ProcessorConfig defines common DSP processing settings.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
	Channels   int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the settings used before the host activates
// the stream: 44.1 kHz stereo with 512-frame blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 44100,
		BlockSize:  512,
		Channels:   2,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if IsFinitePositive(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the maximum processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithChannels sets the channel count used by interleaved adapters.
func WithChannels(channels int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports settings outside [1, maxChannels] channels or a
// non-positive rate or block size.
func (c ProcessorConfig) Validate(maxChannels int) error {
	if !IsFinitePositive(c.SampleRate) {
		return fmt.Errorf("stream sample rate must be > 0: %v", c.SampleRate)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("stream block size must be > 0: %d", c.BlockSize)
	}
	if c.Channels < 1 || c.Channels > maxChannels {
		return fmt.Errorf("stream channels must be in [1, %d]: %d", maxChannels, c.Channels)
	}
	return nil
}
