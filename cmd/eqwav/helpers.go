package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	log "github.com/sirupsen/logrus"
)

const pcmFormat = 1

type wavInput struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
}

// openWAVInput opens a PCM WAV file and reads its format.
func openWAVInput(path string, logger log.FieldLogger) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := dec.Format()
	in := &wavInput{
		file:     f,
		decoder:  dec,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: int(dec.BitDepth),
	}

	if _, ok := fullScale(in.bitDepth); !ok || in.channels <= 0 {
		_ = f.Close()
		return nil, fmt.Errorf("unsupported WAV format: %d channels, %d-bit", in.channels, in.bitDepth)
	}

	logger.WithFields(log.Fields{
		"rate":     in.rate,
		"channels": in.channels,
		"bits":     in.bitDepth,
	}).Debug("opened input")

	return in, nil
}

// read fills buf from the decoder and returns the samples read. io.EOF is
// reported as a zero count.
func (in *wavInput) read(buf *audio.IntBuffer) (int, error) {
	buf.Data = buf.Data[:cap(buf.Data)]
	n, err := in.decoder.PCMBuffer(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("failed to read audio data: %w", err)
	}
	buf.Data = buf.Data[:n]
	return n, nil
}

func (in *wavInput) Close() error {
	return in.file.Close()
}

type wavOutput struct {
	file    *os.File
	encoder *wav.Encoder
}

// createWAVOutput creates path as a PCM WAV file with the given format.
func createWAVOutput(path string, rate, bitDepth, channels int) (*wavOutput, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutput{
		file:    f,
		encoder: wav.NewEncoder(f, rate, bitDepth, channels, pcmFormat),
	}, nil
}

func (out *wavOutput) write(buf *audio.IntBuffer) error {
	if err := out.encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return nil
}

// Close finalizes the WAV header and closes the file.
func (out *wavOutput) Close() error {
	encErr := out.encoder.Close()
	fileErr := out.file.Close()
	if encErr != nil {
		return fmt.Errorf("failed to finalize WAV: %w", encErr)
	}
	return fileErr
}

// fullScale returns the largest positive sample value for bitDepth.
func fullScale(bitDepth int) (float64, bool) {
	switch bitDepth {
	case 8, 16, 24, 32:
		return math.Exp2(float64(bitDepth-1)) - 1, true
	default:
		return 0, false
	}
}

// intsToFloats scales PCM integers into [-1, 1]. 8-bit WAV data is unsigned.
func intsToFloats(dst []float64, src []int, bitDepth int) {
	scale, _ := fullScale(bitDepth)
	inv := 1 / scale
	for i, v := range src {
		if bitDepth == 8 {
			v -= 128
		}
		dst[i] = float64(v) * inv
	}
}

// floatsToInts is the inverse of intsToFloats with rounding and clipping.
// It returns the number of clipped samples.
func floatsToInts(dst []int, src []float64, bitDepth int) int {
	scale, _ := fullScale(bitDepth)
	clipped := 0
	for i, v := range src {
		s := math.Round(v * scale)
		switch {
		case s > scale:
			s = scale
			clipped++
		case s < -scale-1:
			s = -scale - 1
			clipped++
		}
		dst[i] = int(s)
		if bitDepth == 8 {
			dst[i] += 128
		}
	}
	return clipped
}
