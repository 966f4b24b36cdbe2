// Command eqcurve prints the magnitude response of a six-band EQ setting.
//
// Usage:
//
//	eqcurve [flags]
//
// Bands are given as index:freq:gain:q[:off] and may be repeated. Bands not
// mentioned stay transparent.
//
// Examples:
//
//	eqcurve -band 1:100:4:0.8 -band 3:2500:-3:2
//	eqcurve -rate 96000 -points 64 -min 10 -max 40000 -band 0:30:0:0.707
//	eqcurve -measure -fft 16384 -band 2:700:-6:2
//	eqcurve -each -band 1:100:4:0.8 -band 4:6000:-3:1.5:off
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/internal/bandflag"
	"github.com/cwbudde/algo-peq/measure/response"
)

var errUsage = errors.New("eqcurve: invalid arguments")

type options struct {
	rate    float64
	points  int
	minHz   float64
	maxHz   float64
	floorDB float64
	measure bool
	each    bool
	fftSize int
	verbose bool
	bands   bandflag.List
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("eqcurve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&opts.rate, "rate", 48000, "sample rate in Hz")
	fs.IntVar(&opts.points, "points", 31, "number of log-spaced frequencies")
	fs.Float64Var(&opts.minHz, "min", 20, "lowest frequency in Hz")
	fs.Float64Var(&opts.maxHz, "max", 20000, "highest frequency in Hz")
	fs.Float64Var(&opts.floorDB, "floor", -120, "dB floor for the printed curve")
	fs.BoolVar(&opts.measure, "measure", false, "add a column measured from the impulse response")
	fs.BoolVar(&opts.each, "each", false, "add one column per band (bypass ignored)")
	fs.IntVar(&opts.fftSize, "fft", 8192, "FFT size for -measure")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	fs.Var(&opts.bands, "band", "band as index:freq:gain:q[:off] (repeatable)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: eqcurve [flags]\n\n")
		fmt.Fprintf(stderr, "Prints the magnitude response of a six-band EQ.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}
	if opts.points < 2 {
		return nil, fmt.Errorf("%w: -points must be at least 2", errUsage)
	}
	if !(opts.minHz > 0 && opts.maxHz > opts.minHz) {
		return nil, fmt.Errorf("%w: need 0 < -min < -max", errUsage)
	}

	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := log.New()
	logger.SetOutput(stderr)
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	e, err := eq.New(eq.WithLogger(logger))
	if err != nil {
		return err
	}

	block := core.DefaultProcessorConfig().BlockSize
	if opts.measure {
		block = opts.fftSize
	}
	if err := e.Prepare(opts.rate, block, 1); err != nil {
		return err
	}
	if err := opts.bands.Apply(e); err != nil {
		return err
	}

	freqs := eq.LogFrequencies(opts.points, opts.minHz, opts.maxHz)
	curve := e.MagnitudeCurveDB(nil, freqs, opts.rate, opts.floorDB)

	var perBand [][]float64
	if opts.each {
		perBand = make([][]float64, eq.NumBands)
		for b := range perBand {
			perBand[b] = make([]float64, len(freqs))
			for i, f := range freqs {
				m, err := e.MagnitudeForBand(b, f, opts.rate)
				if err != nil {
					return err
				}
				perBand[b][i] = core.LinearToDBFloor(m, opts.floorDB)
			}
		}
	}

	var measured *response.Response
	if opts.measure {
		measured, err = response.Measure(response.ProcessorFunc(func(buf []float64) {
			if err := e.Process([][]float64{buf}); err != nil {
				logger.WithError(err).Warn("impulse processing failed")
			}
		}), opts.rate, opts.fftSize)
		if err != nil {
			return err
		}
	}

	logger.WithFields(log.Fields{
		"rate":   opts.rate,
		"bands":  len(opts.bands),
		"points": len(freqs),
	}).Debug("computed response")

	return printCurve(stdout, freqs, curve, perBand, measured, opts.rate)
}

func printCurve(w io.Writer, freqs, curve []float64, perBand [][]float64, measured *response.Response, rate float64) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	header := "Freq(Hz)\tMag(dB)\t"
	for b := range perBand {
		header += fmt.Sprintf("B%d\t", b)
	}
	if measured != nil {
		header += "Measured(dB)\t"
	}
	fmt.Fprintln(tw, header)

	for i, f := range freqs {
		line := fmt.Sprintf("%.1f\t%s\t", f, formatDB(curve[i]))
		for _, col := range perBand {
			line += formatDB(col[i]) + "\t"
		}
		if measured != nil {
			m := "-"
			if f < rate/2 {
				m = formatDB(measured.MagnitudeDBAt(f))
			}
			line += m + "\t"
		}
		fmt.Fprintln(tw, line)
	}

	return tw.Flush()
}

func formatDB(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%.2f", v)
}
