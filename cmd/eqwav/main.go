// Command eqwav filters a PCM WAV file through the six-band EQ.
//
// Usage:
//
//	eqwav -in input.wav -out output.wav [-band index:freq:gain:q[:off] ...]
//
// Examples:
//
//	eqwav -in mix.wav -out mix-eq.wav -band 0:30:0:0.707 -band 2:350:-3:1.4
//	eqwav -v -block 1024 -in voice.wav -out voice-eq.wav -band 4:5000:4:0.8
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	log "github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/internal/bandflag"
)

var errUsage = errors.New("eqwav: invalid arguments")

type options struct {
	input   string
	output  string
	block   int
	verbose bool
	bands   bandflag.List
}

type stats struct {
	frames  int64
	inPeak  float64
	outPeak float64
	clipped int
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("eqwav", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.input, "in", "", "input WAV file")
	fs.StringVar(&opts.output, "out", "", "output WAV file")
	fs.IntVar(&opts.block, "block", core.DefaultProcessorConfig().BlockSize, "frames per processing block")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	fs.Var(&opts.bands, "band", "band as index:freq:gain:q[:off] (repeatable)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: eqwav -in input.wav -out output.wav [flags]\n\n")
		fmt.Fprintf(stderr, "Filters a PCM WAV file through a six-band EQ.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.input == "" || opts.output == "" {
		return nil, fmt.Errorf("%w: -in and -out are required", errUsage)
	}
	if opts.block <= 0 {
		return nil, fmt.Errorf("%w: -block must be positive", errUsage)
	}

	return opts, nil
}

func run(args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := log.New()
	logger.SetOutput(stderr)
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	st, err := processFile(opts, logger)
	if err != nil {
		return err
	}

	logger.WithFields(log.Fields{
		"frames":      st.frames,
		"in_peak_db":  fmt.Sprintf("%.2f", core.LinearToDB(st.inPeak)),
		"out_peak_db": fmt.Sprintf("%.2f", core.LinearToDB(st.outPeak)),
		"clipped":     st.clipped,
	}).Info("done")

	if st.clipped > 0 {
		logger.Warnf("%d samples clipped", st.clipped)
	}

	return nil
}

func processFile(opts *options, logger log.FieldLogger) (st stats, err error) {
	in, err := openWAVInput(opts.input, logger)
	if err != nil {
		return st, err
	}
	defer in.Close()

	e, err := eq.New(eq.WithLogger(logger))
	if err != nil {
		return st, err
	}
	if err := e.Prepare(float64(in.rate), opts.block, in.channels); err != nil {
		return st, err
	}
	if err := opts.bands.Apply(e); err != nil {
		return st, err
	}

	out, err := createWAVOutput(opts.output, in.rate, in.bitDepth, in.channels)
	if err != nil {
		return st, err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	ibuf := &audio.IntBuffer{
		Data: make([]int, opts.block*in.channels),
		Format: &audio.Format{
			NumChannels: in.channels,
			SampleRate:  in.rate,
		},
		SourceBitDepth: in.bitDepth,
	}
	fbuf := make([]float64, len(ibuf.Data))

	for {
		n, err := in.read(ibuf)
		if err != nil {
			return st, err
		}
		if n == 0 {
			break
		}

		samples := fbuf[:n]
		intsToFloats(samples, ibuf.Data, in.bitDepth)
		st.inPeak = max(st.inPeak, vecmath.MaxAbs(samples))

		if err := e.ProcessInterleaved(samples); err != nil {
			return st, err
		}
		st.outPeak = max(st.outPeak, vecmath.MaxAbs(samples))

		st.clipped += floatsToInts(ibuf.Data, samples, in.bitDepth)
		if err := out.write(ibuf); err != nil {
			return st, err
		}
		st.frames += int64(n / in.channels)
	}

	return st, nil
}
