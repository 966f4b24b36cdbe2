package stream

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/internal/testutil"
)

var format = beep.Format{SampleRate: 48000, NumChannels: 2, Precision: 2}

func newEngine(t *testing.T) *eq.Engine {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	e, err := eq.New(eq.WithLogger(log))
	require.NoError(t, err)

	return e
}

// source plays left and right to completion.
func source(left, right []float64) beep.Streamer {
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(left) {
			return 0, false
		}

		n := min(len(samples), len(left)-pos)
		for i := range n {
			samples[i] = [2]float64{left[pos+i], right[pos+i]}
		}

		pos += n

		return n, true
	})
}

type failing struct{ err error }

func (f failing) Stream([][2]float64) (int, bool) { return 0, false }
func (f failing) Err() error                      { return f.err }

func TestNew_InvalidArguments(t *testing.T) {
	e := newEngine(t)
	s := source(nil, nil)

	_, err := New(nil, format, e, 128)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(s, format, nil, 128)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(s, beep.Format{}, e, 128)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(s, format, e, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.False(t, e.Prepared())
}

func TestNew_PreparesEngine(t *testing.T) {
	e := newEngine(t)

	_, err := New(source(nil, nil), format, e, 256)
	require.NoError(t, err)

	assert.True(t, e.Prepared())
	assert.Equal(t, 48000.0, e.SampleRate())
	assert.Equal(t, 2, e.Channels())
	assert.Equal(t, 256, e.MaxBlockSize())
}

func TestStream_TransparentEngine(t *testing.T) {
	left := testutil.DeterministicNoise(1, 0.5, 1000)
	right := testutil.DeterministicSine(440, 48000, 0.5, 1000)

	st, err := New(source(left, right), format, newEngine(t), 64)
	require.NoError(t, err)

	buf := make([][2]float64, 1000)
	n, ok := st.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 1000, n)

	for i := range n {
		assert.Equal(t, left[i], buf[i][0])
		assert.Equal(t, right[i], buf[i][1])
	}
}

func TestStream_MatchesEngineProcess(t *testing.T) {
	const frames = 2000

	left := testutil.DeterministicNoise(2, 0.5, frames)
	right := testutil.DeterministicNoise(3, 0.5, frames)

	e := newEngine(t)
	st, err := New(source(left, right), format, e, 100)
	require.NoError(t, err)
	require.NoError(t, e.UpdateBand(1, 300, 6, 1))
	require.NoError(t, e.UpdateBand(4, 6000, -4, 2))

	ref := newEngine(t)
	require.NoError(t, ref.Prepare(48000, frames, 2))
	require.NoError(t, ref.UpdateBand(1, 300, 6, 1))
	require.NoError(t, ref.UpdateBand(4, 6000, -4, 2))

	wantL := append([]float64(nil), left...)
	wantR := append([]float64(nil), right...)
	require.NoError(t, ref.Process([][]float64{wantL, wantR}))

	got := make([][2]float64, 0, frames)
	buf := make([][2]float64, 333)

	for {
		n, ok := st.Stream(buf)
		got = append(got, buf[:n]...)

		if !ok {
			break
		}
	}

	require.Len(t, got, frames)

	for i := range got {
		assert.InDelta(t, wantL[i], got[i][0], 1e-12)
		assert.InDelta(t, wantR[i], got[i][1], 1e-12)
	}
}

func TestStream_EndOfSource(t *testing.T) {
	st, err := New(source([]float64{1}, []float64{1}), format, newEngine(t), 16)
	require.NoError(t, err)

	buf := make([][2]float64, 4)

	n, ok := st.Stream(buf)
	assert.Equal(t, 1, n)
	assert.True(t, ok)

	n, ok = st.Stream(buf)
	assert.Equal(t, 0, n)
	assert.False(t, ok)
	assert.NoError(t, st.Err())
}

func TestStream_PropagatesErr(t *testing.T) {
	want := errors.New("decoder broke")

	st, err := New(failing{err: want}, format, newEngine(t), 16)
	require.NoError(t, err)

	n, ok := st.Stream(make([][2]float64, 8))
	assert.Zero(t, n)
	assert.False(t, ok)
	assert.ErrorIs(t, st.Err(), want)
}

func TestStream_PeakBoostsCenter(t *testing.T) {
	const frames = 48000

	sine := testutil.DeterministicSine(1000, 48000, 0.25, frames)

	e := newEngine(t)
	st, err := New(source(sine, sine), format, e, 512)
	require.NoError(t, err)
	require.NoError(t, e.UpdateBand(2, 1000, 12, 1))

	buf := make([][2]float64, frames)
	n, _ := st.Stream(buf)
	require.Equal(t, frames, n)

	var peak float64
	for _, f := range buf[frames-4800:] {
		peak = math.Max(peak, math.Abs(f[0]))
	}

	assert.InDelta(t, 0.25*math.Pow(10, 12.0/20), peak, 0.01)
}
