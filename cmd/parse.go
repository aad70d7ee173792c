package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvas-go/pipeline/h264"
	"github.com/vvas-go/pipeline/h265"
	"github.com/vvas-go/pipeline/internal/errs"
	"github.com/vvas-go/pipeline/nal"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse an Annex-B bitstream file and report its access-unit boundaries.",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(parseFilePath)
		if err != nil {
			return err
		}
		defer f.Close()

		var codec nal.Decoder
		switch parseCodec {
		case "h264":
			codec = h264.NewParser()
		case "h265":
			codec = h265.NewParser()
		default:
			return fmt.Errorf("unknown codec %q, want h264 or h265", parseCodec)
		}

		assembler := nal.NewAssembler(codec)
		buf := make([]byte, 64*1024)
		auCount := 0

		for {
			n, readErr := f.Read(buf)
			eof := readErr == io.EOF
			if readErr != nil && !eof {
				return readErr
			}

			chunk := buf[:n]
			for {
				au, kind := assembler.Feed(chunk, eof)
				chunk = nil
				if kind == errs.KindNeedMoreData {
					break
				}
				if au != nil {
					auCount++
					fmt.Printf("AU %d: %d bytes\n", auCount, len(au))
				}
				if kind == errs.KindEOS {
					fmt.Printf("total access units: %d\n", auCount)
					return nil
				}
			}
			if eof {
				fmt.Printf("total access units: %d\n", auCount)
				return nil
			}
		}
	},
}

var (
	parseFilePath string
	parseCodec    string
)

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseFilePath, "file", "f", "", "path to an Annex-B bitstream file")
	parseCmd.MarkFlagRequired("file")
	parseCmd.Flags().StringVar(&parseCodec, "codec", "h264", "codec of the input stream: h264 or h265")
}
