// Package stream adapts an eq.Engine to the beep audio streaming API.
package stream

import (
	"errors"
	"fmt"

	"github.com/gopxl/beep"

	"github.com/cwbudde/algo-peq/dsp/eq"
)

// ErrInvalidArgument is returned by New for a missing source or engine or
// an unusable format or block size.
var ErrInvalidArgument = errors.New("stream: invalid argument")

// Streamer filters the stereo frames of a wrapped beep.Streamer through an
// eq.Engine. Band updates on the engine take effect within one block.
type Streamer struct {
	source beep.Streamer
	engine *eq.Engine
	block  [2][]float64
	planar [][]float64
}

// New prepares e for stereo processing at format's sample rate with the
// given block size and returns a Streamer reading from s.
func New(s beep.Streamer, format beep.Format, e *eq.Engine, blockSize int) (*Streamer, error) {
	if s == nil || e == nil {
		return nil, fmt.Errorf("%w: nil streamer or engine", ErrInvalidArgument)
	}

	if format.SampleRate <= 0 || blockSize <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d, block size %d", ErrInvalidArgument, format.SampleRate, blockSize)
	}

	if err := e.Prepare(float64(format.SampleRate), blockSize, 2); err != nil {
		return nil, err
	}

	return &Streamer{
		source: s,
		engine: e,
		block:  [2][]float64{make([]float64, blockSize), make([]float64, blockSize)},
		planar: make([][]float64, 2),
	}, nil
}

// Stream fills samples from the source and equalizes the frames it got.
func (st *Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = st.source.Stream(samples)
	frames := samples[:n]

	size := len(st.block[0])
	for start := 0; start < len(frames); start += size {
		chunk := frames[start:min(start+size, len(frames))]
		left, right := st.block[0][:len(chunk)], st.block[1][:len(chunk)]

		for i, f := range chunk {
			left[i], right[i] = f[0], f[1]
		}

		// Prepared in New, so Process cannot fail.
		st.planar[0], st.planar[1] = left, right
		_ = st.engine.Process(st.planar)

		for i := range chunk {
			chunk[i] = [2]float64{left[i], right[i]}
		}
	}

	return n, ok
}

// Err propagates the source's error.
func (st *Streamer) Err() error {
	return st.source.Err()
}
