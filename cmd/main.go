package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/routewatch/routewatch/internal/config"
	"github.com/routewatch/routewatch/internal/logger"
	"github.com/routewatch/routewatch/internal/monitor"
	"github.com/routewatch/routewatch/internal/recorder"
	"github.com/routewatch/routewatch/internal/routetable"
	"github.com/routewatch/routewatch/internal/source"
	"github.com/routewatch/routewatch/internal/topology"
)

var (
	version = "1.0.0"

	configFile  string
	interval    int
	outputDir   string
	noConsole   bool
	filePrefix  string
	testMode    bool
	verboseMode bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "routewatch",
		Short: "Routing table change monitor",
		Long:  `Polls the host routing table at a fixed interval, detects added and removed routes, and records every change to a log file and CSV.`,
		RunE:  runMonitor,

		SilenceUsage: true,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version, build information and system details.`,
		Run:   showVersion,
	}

	rootCmd.Flags().IntVarP(&interval, "interval", "i", 10, "Monitoring interval in seconds (minimum 1)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory for log and CSV files")
	rootCmd.Flags().BoolVar(&noConsole, "no-console", false, "Disable console output")
	rootCmd.Flags().StringVarP(&filePrefix, "prefix", "p", "", "Prefix for log and CSV filenames")
	rootCmd.Flags().BoolVarP(&testMode, "test", "t", false, "Run once against embedded example route tables")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "Verbose mode (debug level logging)")

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	// Flags set on the command line override the config file.
	if cmd.Flags().Changed("interval") {
		cfg.Interval = interval
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("prefix") {
		cfg.Prefix = filePrefix
	}
	if noConsole {
		cfg.Console = false
	}
	if verboseMode {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel)

	rec, err := recorder.New(cfg.OutputDir, cfg.Prefix)
	if err != nil {
		return err
	}

	rend, err := topology.NewDotRenderer(cfg.OutputDir, cfg.Prefix, log)
	if err != nil {
		return err
	}
	defer rend.Close()

	if testMode {
		src := source.NewReplay(routetable.ExampleBefore(), routetable.ExampleAfter())
		return monitor.New(cfg, src, rec, rend, log).RunOnce()
	}

	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)
	defer stop()

	return monitor.New(cfg, source.NewIPRoute(), rec, rend, log).Run(ctx)
}

func showVersion(_ *cobra.Command, _ []string) {
	fmt.Printf("routewatch v%s\n", version)
	fmt.Printf("Runtime: %s\n", runtime.Version())
	fmt.Printf("Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
