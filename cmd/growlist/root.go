package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vajrock/growlist/internal/config"
	"github.com/vajrock/growlist/internal/runner"
)

var errProcessing = errors.New("some scripts could not be processed")

type rootFlags struct {
	configPath   string
	capacity     int
	growth       string
	removal      string
	strictRender bool
	write        bool
	list         bool
	verbose      bool
	logLevel     string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "growlist [flags] [path ...]",
		Short: "Run container scripts and print their transcripts",
		Long: `growlist runs .gl scripts against a resizable array container.

Examples:
  # Run every script under the current directory
  growlist ./...

  # Write transcripts next to the scripts using doubling growth
  growlist --growth doubling -w ./testdata/scripts

  # List scripts that have failing operations
  growlist -l ./...`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "path to a TOML configuration file")
	f.IntVar(&flags.capacity, "capacity", config.DefaultConfig().InitialCapacity, "initial container capacity")
	f.StringVar(&flags.growth, "growth", "linear", "growth policy: linear or doubling")
	f.StringVar(&flags.removal, "removal", "filter", "remove-by-value mode: filter or scan")
	f.BoolVar(&flags.strictRender, "strict-render", false, "fail render on a container without elements")
	f.BoolVarP(&flags.write, "write", "w", false, "write transcripts to <script>.out instead of stdout")
	f.BoolVarP(&flags.list, "list", "l", false, "list scripts with failing operations")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output")
	f.StringVar(&flags.logLevel, "log-level", "warning", "log level: trace, debug, info, warning, error")

	return cmd
}

func run(cmd *cobra.Command, args []string, flags *rootFlags, stdout, stderr io.Writer) error {
	log, err := newLogger(stderr, flags)
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd, flags)
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		return err
	}
	log.WithFields(logrus.Fields{
		"capacity": cfg.InitialCapacity,
		"growth":   cfg.Growth,
		"removal":  cfg.Removal,
		"strict":   cfg.StrictRender,
	}).Debug("configuration")

	// Get paths to process
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	r := runner.NewRunner(cfg)

	var (
		totalScripts  int
		totalOps      int
		totalFailures int
		totalCopied   int
		hasErrors     bool
	)
	for _, path := range paths {
		for _, result := range processPath(r, path, cfg) {
			entry := log.WithFields(logrus.Fields{
				"file":   result.FilePath,
				"run_id": result.RunID.String(),
			})
			if result.Error != nil {
				entry.WithError(result.Error).Error("failed to process script")
				hasErrors = true
				continue
			}

			totalScripts++
			totalOps += result.Ops
			totalFailures += result.Failures
			totalCopied += result.Stats.SlotsCopied
			entry.WithFields(logrus.Fields{
				"ops":      result.Ops,
				"failures": result.Failures,
				"grows":    result.Stats.Grows,
			}).Debug("script finished")

			if cfg.List {
				if result.Failures > 0 {
					if _, err := io.WriteString(stdout, result.FilePath+"\n"); err != nil {
						return err
					}
				}
				continue
			}

			if err := r.WriteResult(stdout, result); err != nil {
				entry.WithError(err).Error("failed to write transcript")
				hasErrors = true
				continue
			}
			if cfg.Write {
				entry.Info("wrote " + result.FilePath + runner.TranscriptSuffix)
			}
		}
	}

	// Print summary
	log.Infof("total: %s operations, %s failures in %d scripts, %s slots copied by growth",
		humanize.Comma(int64(totalOps)),
		humanize.Comma(int64(totalFailures)),
		totalScripts,
		humanize.Comma(int64(totalCopied)),
	)

	if hasErrors {
		return errProcessing
	}
	return nil
}

func newLogger(stderr io.Writer, flags *rootFlags) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(flags.logLevel)
	if err != nil {
		return nil, errors.Wrap(err, "invalid --log-level")
	}
	if flags.verbose && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	return log, nil
}

// buildConfig loads the configuration file, if any, and applies the flags
// that were set explicitly on top of it.
func buildConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if flags.configPath != "" {
		var err error
		cfg, err = config.LoadFile(flags.configPath)
		if err != nil {
			return nil, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("capacity") {
		cfg.InitialCapacity = flags.capacity
	}
	if changed("growth") {
		cfg.Growth = flags.growth
	}
	if changed("removal") {
		cfg.Removal = flags.removal
	}
	if changed("strict-render") {
		cfg.StrictRender = flags.strictRender
	}
	cfg.Write = flags.write
	cfg.List = flags.list
	cfg.Verbose = flags.verbose

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// processPath processes a single path (file or directory).
func processPath(r *runner.Runner, path string, cfg *config.Config) []*runner.Result {
	// Expand ... wildcard
	if strings.HasSuffix(path, "/...") {
		dir := strings.TrimSuffix(path, "/...")
		return r.ProcessDirectory(dir)
	}

	// Check if it's a directory
	info, err := os.Stat(path)
	if err != nil {
		return []*runner.Result{{
			FilePath: path,
			Error:    errors.Wrap(err, "cannot access path"),
		}}
	}

	if info.IsDir() {
		return r.ProcessDirectory(path)
	}

	// Single file
	if filepath.Ext(path) == cfg.Extension {
		return []*runner.Result{r.ProcessFile(path)}
	}

	return nil
}
