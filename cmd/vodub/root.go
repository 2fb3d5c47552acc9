package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)
	opts := &dubOptions{}

	rootCmd := &cobra.Command{
		Use:   "vodub",
		Short: "Dub a video into another language with a cloned voice",
		Long: "vodub downloads or accepts a local video, transcribes its speech,\n" +
			"translates the transcript, synthesizes a dubbed track in a cloned\n" +
			"voice, and muxes the new audio back onto the video.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The root invocation validates its flags before touching the
			// config file, so input errors surface first; runDub loads the
			// config itself.
			if cmd.Parent() == nil || shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.empty() {
				return cmd.Help()
			}
			return runDub(cmd, ctx, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	opts.register(rootCmd)

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newProbeCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newTestNotifyCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
