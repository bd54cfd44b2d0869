package harmonizer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

const (
	// StateMagic prefixes every state record ("STAR").
	StateMagic uint32 = 0x53544152
	// StateVersion is the record layout written by SaveState.
	StateVersion uint32 = 1
)

var (
	// ErrBadMagic is returned when a state record has the wrong magic.
	ErrBadMagic = errors.New("harmonizer: state magic mismatch")
	// ErrBadVersion is returned for an unsupported record version.
	ErrBadVersion = errors.New("harmonizer: unsupported state version")
	// ErrTruncated is returned when a record ends early.
	ErrTruncated = errors.New("harmonizer: truncated state")
)

// stateRecord is the little-endian wire layout: magic, version, then gain,
// frequency and dry/wet as float64.
type stateRecord struct {
	Magic   uint32
	Version uint32
	Values  [ParamCount]float64
}

// SaveState writes the raw parameter values.
func (p *Processor) SaveState(w io.Writer) error {
	rec := stateRecord{
		Magic:   StateMagic,
		Version: StateVersion,
		Values:  p.rawValues(),
	}

	if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
		p.log.WithFields(logrus.Fields{
			"function": "SaveState",
			"error":    err,
		}).Error("State write failed")
		return fmt.Errorf("harmonizer: write state: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"function":  "SaveState",
		"gain":      rec.Values[ParamGain],
		"frequency": rec.Values[ParamFrequency],
		"dry_wet":   rec.Values[ParamDryWet],
	}).Debug("State saved")

	return nil
}

// LoadState reads a record written by SaveState. Values are clamped to
// their ranges and take effect without ramping on the next Process call.
// On any error the processor is left unchanged.
func (p *Processor) LoadState(r io.Reader) error {
	rec, err := readStateRecord(r)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"function": "LoadState",
			"error":    err,
		}).Warn("State rejected")
		return err
	}

	for i, v := range rec.Values {
		p.raw[i].Store(math.Float64bits(paramInfos[i].Clamp(v)))
	}
	p.pendingSnap.Store(true)

	p.log.WithFields(logrus.Fields{
		"function":  "LoadState",
		"gain":      p.ParamValue(ParamGain),
		"frequency": p.ParamValue(ParamFrequency),
		"dry_wet":   p.ParamValue(ParamDryWet),
	}).Info("State loaded")

	return nil
}

func readStateRecord(r io.Reader) (stateRecord, error) {
	var rec stateRecord

	if err := binary.Read(r, binary.LittleEndian, &rec.Magic); err != nil {
		return rec, truncated(err)
	}
	if rec.Magic != StateMagic {
		return rec, fmt.Errorf("%w: %#08x", ErrBadMagic, rec.Magic)
	}

	if err := binary.Read(r, binary.LittleEndian, &rec.Version); err != nil {
		return rec, truncated(err)
	}
	if rec.Version != StateVersion {
		return rec, fmt.Errorf("%w: %d", ErrBadVersion, rec.Version)
	}

	if err := binary.Read(r, binary.LittleEndian, &rec.Values); err != nil {
		return rec, truncated(err)
	}

	return rec, nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return fmt.Errorf("harmonizer: read state: %w", err)
}
