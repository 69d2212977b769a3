package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/rm-hull/screenshot-redactor/cmd"
	"github.com/spf13/cobra"
)

func main() {
	var configPath string
	var inputPath string
	var outputPath string
	var blockSize int
	var quality int
	var verbose bool
	var comparePath string
	var frameDelay float64
	var port int
	var debug bool

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	rootCmd := &cobra.Command{
		Use:          "screenshot-redactor",
		Long:         `Pixelate sensitive regions in screenshot images`,
		SilenceUsage: true,
	}

	redactCmd := &cobra.Command{
		Use:   "redact [--config <path>] [--input <path>] [--output <path>]",
		Short: "Pixelate the configured regions of an image",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.Redact(configPath, inputPath, outputPath, blockSize, quality, verbose)
		},
	}

	redactCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config (falls back to $REDACTOR_CONFIG, then built-in defaults)")
	redactCmd.Flags().StringVar(&inputPath, "input", "", "Input image, overrides the configured path")
	redactCmd.Flags().StringVar(&outputPath, "output", "", "Output image, overrides the configured path")
	redactCmd.Flags().IntVar(&blockSize, "block-size", 0, "Pixelation block size, overrides the configured value")
	redactCmd.Flags().IntVar(&quality, "quality", -1, "JPEG quality (0-100), overrides the configured value")
	redactCmd.Flags().BoolVar(&verbose, "verbose", false, "Log version, user and environment details")

	inspectCmd := &cobra.Command{
		Use:   "inspect <image>",
		Short: "Report the dimensions of an image, to aid region selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Inspect(args[0])
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare <original> <redacted>",
		Short: "Build an animated PNG flipping between original and redacted images",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Compare(args[0], args[1], comparePath, frameDelay)
		},
	}

	compareCmd.Flags().StringVar(&comparePath, "output", "comparison.png", "Path to write the animated PNG to")
	compareCmd.Flags().Float64Var(&frameDelay, "frame-delay", 1.0, "Seconds each frame is shown for")

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--config <path>] [--port <port>] [--debug]",
		Short: "Start HTTP API server",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.ApiServer(configPath, port, debug)
		},
	}

	apiServerCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config (falls back to $REDACTOR_CONFIG, then built-in defaults)")
	apiServerCmd.Flags().IntVar(&port, "port", 8080, "Port to run HTTP server on")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	rootCmd.AddCommand(redactCmd, inspectCmd, compareCmd, apiServerCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
