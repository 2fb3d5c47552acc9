package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vodub/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <path>",
		Short: "Summarize a media file with ffprobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), args[0])
			if err != nil {
				return fmt.Errorf("probe %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Container: %s\n", result.Format.FormatName)
			fmt.Fprintf(out, "Duration:  %.2fs\n", result.DurationSeconds())
			fmt.Fprintf(out, "Streams:   %d video, %d audio\n", result.VideoStreamCount(), result.AudioStreamCount())
			for _, stream := range result.Streams {
				switch stream.CodecType {
				case "video":
					fmt.Fprintf(out, "  #%d video %s %dx%d\n", stream.Index, stream.CodecName, stream.Width, stream.Height)
				case "audio":
					detail := stream.CodecName
					if rate := strings.TrimSpace(stream.SampleRate); rate != "" {
						detail += " " + rate + "Hz"
					}
					if stream.Channels > 0 {
						detail += fmt.Sprintf(" %dch", stream.Channels)
					}
					fmt.Fprintf(out, "  #%d audio %s\n", stream.Index, detail)
				default:
					fmt.Fprintf(out, "  #%d %s %s\n", stream.Index, stream.CodecType, stream.CodecName)
				}
			}
			return nil
		},
	}
}
