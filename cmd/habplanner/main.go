package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/heliosworks/habplanner/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "habplanner",
		Short:         "Lunar habitat layout design and optimization engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(optimizeCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a seed mission configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "seed_config.yaml", "output config path (.yaml or .json)")
	return cmd
}

func generateCmd() *cobra.Command {
	var configPath, out, settingsPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an initial feasible layout from a mission config",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runGenerate(configPath, out, settingsPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "mission config file")
	cmd.Flags().StringVar(&out, "out", "", "output layout file (JSON)")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "constraint settings override file")
	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("out")
	return cmd
}

func validateCmd() *cobra.Command {
	var in, settingsPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the hard-constraint validator against a layout",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate(in, settingsPath)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "layout file (JSON)")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "constraint settings override file")
	cmd.MarkFlagRequired("in")
	return cmd
}

func scoreCmd() *cobra.Command {
	var in, weightsPath, settingsPath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute metrics and the weighted score for a layout",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runScore(in, weightsPath, settingsPath)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "layout file (JSON)")
	cmd.Flags().StringVar(&weightsPath, "weights", "", "score weights file")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "constraint settings override file")
	cmd.MarkFlagRequired("in")
	return cmd
}

func optimizeCmd() *cobra.Command {
	var in, out, weightsPath, settingsPath string
	var iters int
	var seed int64

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Improve a layout with constraint-aware simulated annealing",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runOptimize(in, out, iters, seed, weightsPath, settingsPath)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "layout file (JSON)")
	cmd.Flags().StringVar(&out, "out", "", "output layout file (JSON)")
	cmd.Flags().IntVar(&iters, "iters", 3000, "annealing iterations")
	cmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed (0 = layout's recorded seed)")
	cmd.Flags().StringVar(&weightsPath, "weights", "", "score weights file")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "constraint settings override file")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")
	return cmd
}

func exportCmd() *cobra.Command {
	var in, format, out, weightsPath, settingsPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a layout summary (md, json, or csv)",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runExport(in, format, out, weightsPath, settingsPath)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "layout file (JSON)")
	cmd.Flags().StringVar(&format, "format", "", "export format: md, json, or csv")
	cmd.Flags().StringVar(&out, "out", "", "output path (default stdout)")
	cmd.Flags().StringVar(&weightsPath, "weights", "", "score weights file")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "constraint settings override file")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("format")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local dev server exposing the design API",
		RunE: func(_ *cobra.Command, _ []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync()

			srv := server.New(port, logger)
			return srv.Start()
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
