package harmonizer

import (
	"github.com/cwbudde/algo-harmonizer/dsp/core"
	"github.com/sirupsen/logrus"
)

// Option configures a Processor at construction.
type Option func(*settings)

type settings struct {
	stream []core.ProcessorOption
	config Config
	logger logrus.FieldLogger
}

// WithLogger sets the logger used by non-real-time entry points.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConfig replaces the granular path configuration.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.config = cfg
	}
}

// WithStream sets the initial sample rate, block size and channel count.
func WithStream(opts ...core.ProcessorOption) Option {
	return func(s *settings) {
		s.stream = append(s.stream, opts...)
	}
}
