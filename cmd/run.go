package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vvas-go/pipeline/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every input stream in a master configuration through its own pipeline.",
	RunE: func(cmd *cobra.Command, args []string) error {
		master, err := config.LoadMaster(masterConfigPath)
		if err != nil {
			return err
		}

		log.Info().
			Int("stream_count", len(master.InputStreams)).
			Str("sink_type", string(master.SinkType)).
			Int("batch_timeout_ms", master.BatchTimeoutMs).
			Int("additional_decoder_buffers", master.AdditionalDecoderBuffers).
			Int("fps_display_interval_sec", master.FPSDisplayIntervalSec).
			Int("repeat_count", master.RepeatCount).
			Msg("loaded master configuration")

		for _, s := range master.InputStreams {
			fmt.Printf("stream %s: %s\n", s.StreamID, s.Path)
		}

		// Wiring a Launcher here requires concrete external.Decoder,
		// external.Scaler and external.DPU implementations for the
		// target hardware, which this module treats as out-of-scope
		// collaborators (spec.md §1, §6). Callers embedding this module
		// construct those and call pipeline.NewLauncher directly; this
		// subcommand's job ends at validating and reporting the plan.
		return nil
	},
}

var masterConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&masterConfigPath, "config", "c", "", "path to the master pipeline configuration JSON")
	runCmd.MarkFlagRequired("config")
}
