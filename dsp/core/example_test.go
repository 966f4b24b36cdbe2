package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(96000),
		core.WithBlockSize(128),
		core.WithChannels(1),
	)

	fmt.Printf("%.0f Hz, %d frames, %d channel\n", cfg.SampleRate, cfg.BlockSize, cfg.Channels)
	fmt.Println(cfg.Validate())

	// Output:
	// 96000 Hz, 128 frames, 1 channel
	// <nil>
}

func ExampleLinearToDBFloor() {
	fmt.Printf("%.2f dB\n", core.LinearToDBFloor(core.DBToLinear(6), -120))
	fmt.Printf("%.0f dB\n", core.LinearToDBFloor(0, -120))
	fmt.Printf("%.0f dB\n", core.Clamp(24, -18, 18))

	// Output:
	// 6.00 dB
	// -120 dB
	// 18 dB
}
