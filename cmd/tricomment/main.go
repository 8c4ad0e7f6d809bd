package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Hanaasagi/tricomment/cmd"
	"github.com/Hanaasagi/tricomment/internal"
	"github.com/Hanaasagi/tricomment/internal/logger"
	"github.com/Hanaasagi/tricomment/pkg/formula"
)

const (
	appName     = "tricomment"
	defaultSize = 4096
)

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

var appDir = filepath.Join(xdg.StateHome, appName)

func init() {
	// Initialize logging
	if err := os.MkdirAll(appDir, 0755); err != nil {
		panic(fmt.Sprintf("Error creating log directory: %v", err))
	}

	logFilePath := filepath.Join(appDir, appName+".log")
	logger.InitLogger(logFilePath, "info")

	// Initialize crash reporting
	crashFilePath := filepath.Join(appDir, "crash")
	if f, err := os.Create(crashFilePath); err == nil {
		_ = debug.SetCrashOutput(f, debug.CrashOptions{})
	}
}

// AppConfig holds application configuration
type AppConfig struct {
	configFile  string
	dictFile    string
	punctFile   string
	level       int
	inspect     bool
	inputFile   string
	target      string
	showVersion bool
}

func defaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// readCandidates reads the candidate stream from file or stdin with
// buffering. Blank lines are skipped; malformed lines are logged and
// dropped, never fatal.
func readCandidates(inputFile string) ([]internal.Candidate, error) {
	var reader io.Reader
	var closer io.Closer

	if inputFile != "" {
		file, err := os.Open(inputFile)
		if err != nil {
			return nil, fmt.Errorf("opening input file: %w", err)
		}
		reader = file
		closer = file
	} else {
		reader = os.Stdin
	}

	defer func() {
		if closer != nil {
			closer.Close() // nolint: errcheck
		}
	}()

	var candidates []internal.Candidate
	scanner := bufio.NewScanner(bufio.NewReaderSize(reader, defaultSize))
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\n")
		if line == "" {
			continue
		}
		c, err := internal.DecodeCandidate(line)
		if err != nil {
			slog.Warn("skipping candidate line", "error", err)
			continue
		}
		candidates = append(candidates, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading candidates: %w", err)
	}

	return candidates, nil
}

// writeCandidates writes the annotated stream to the target file or stdout.
func writeCandidates(target string, candidates []internal.Candidate) error {
	var writer *bufio.Writer
	if target == "" {
		writer = bufio.NewWriterSize(os.Stdout, defaultSize)
	} else {
		file, err := os.Create(target)
		if err != nil {
			return fmt.Errorf("creating target file: %w", err)
		}
		defer file.Close() // nolint: errcheck
		writer = bufio.NewWriterSize(file, defaultSize)
	}
	defer writer.Flush() // nolint: errcheck

	for _, c := range candidates {
		if _, err := writer.WriteString(internal.EncodeCandidate(c) + "\n"); err != nil {
			return fmt.Errorf("writing candidate: %w", err)
		}
	}
	return nil
}

// loadStore is a fatal wrapper for required dictionaries; the punctuation
// store may be absent and falls back to an empty map.
func loadStore(path string, required bool) (*internal.Store, error) {
	if path == "" {
		if required {
			return nil, fmt.Errorf("no reverse-lookup dictionary configured")
		}
		return internal.NewStore(nil), nil
	}
	return internal.LoadStore(path)
}

// buildPipeline assembles the annotation pipeline from configuration. Any
// error here is a startup error: the annotation feature cannot be enabled.
func buildPipeline(config *Config, appConfig *AppConfig) (*internal.Pipeline, *internal.Keymap, error) {
	table, err := formula.BuildTable(config.TableEntries())
	if err != nil {
		return nil, nil, err
	}

	dictPath := appConfig.dictFile
	if dictPath == "" {
		dictPath = config.Dicts.Reverse
	}
	store, err := loadStore(dictPath, true)
	if err != nil {
		return nil, nil, err
	}

	punctPath := appConfig.punctFile
	if punctPath == "" {
		punctPath = config.Dicts.Punct
	}
	punct, err := loadStore(punctPath, false)
	if err != nil {
		return nil, nil, err
	}

	keymap, err := internal.NewKeymap(config.Keys.CycleForward, config.Keys.CycleBackward, config.Keys.Switch)
	if err != nil {
		return nil, nil, err
	}

	opts := internal.NewOptionGroup(config.Options.Flags, config.Options.Default)
	pipeline := internal.NewPipeline(
		opts,
		internal.NewComposer(table, store),
		store,
		punct,
		config.Core.EnablePhrase,
		config.Core.MixedInputFlags > 1,
	)
	if appConfig.level >= 0 {
		opts.Activate(appConfig.level + 1)
	}

	slog.Info("pipeline ready",
		"dict_entries", store.Len(),
		"punct_entries", punct.Len(),
		"rule_lengths", table.Len(),
		"active_option", opts.ActiveName(),
	)
	return pipeline, keymap, nil
}

// runApp runs the main application logic
func runApp(appConfig *AppConfig) error {
	if appConfig.showVersion {
		fmt.Printf("%s version: %s\n", appName, FullVersion)
		return nil
	}

	config, err := LoadConfigFromFile(appConfig.configFile)
	if err != nil {
		return err
	}
	logger.SetLevel(config.Core.LogLevel)

	pipeline, keymap, err := buildPipeline(config, appConfig)
	if err != nil {
		return err
	}

	candidates, err := readCandidates(appConfig.inputFile)
	if err != nil {
		return err
	}

	if appConfig.inspect {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("--inspect needs a terminal on stdout")
		}
		inspector := internal.NewInspector(pipeline, keymap, candidates)
		annotated, err := inspector.Run()
		if err != nil {
			return err
		}
		return writeCandidates(appConfig.target, annotated)
	}

	annotated := slices.Collect(pipeline.Annotate(slices.Values(candidates)))
	return writeCandidates(appConfig.target, annotated)
}

func main() {
	appConfig := &AppConfig{}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Structural and phonetic annotations for input-method candidates",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Annotates input-method candidates with structural/phonetic decompositions. %s",
			color.New(color.FgBlue).Sprintf("(%s)", FullVersion),
		),
		Example: "  engine-dump | tricomment --dict reverse.tsv --level 3",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(appConfig)
		},
	}

	rootCmd.Flags().StringVarP(&appConfig.configFile, "config", "c", defaultConfigPath(), "Path to the TOML configuration")
	rootCmd.Flags().StringVarP(&appConfig.dictFile, "dict", "d", "", "Reverse-lookup dictionary path (overrides config)")
	rootCmd.Flags().StringVar(&appConfig.punctFile, "punct-dict", "", "Punctuation code dictionary path (overrides config)")
	rootCmd.Flags().IntVarP(&appConfig.level, "level", "l", -1, "Verbosity level: 0 off, 1 spelling, 2 +codes, 3 full")
	rootCmd.Flags().BoolVarP(&appConfig.inspect, "inspect", "I", false, "Interactively inspect annotations, cycling verbosity with the bound keys")
	rootCmd.Flags().StringVarP(&appConfig.inputFile, "input-file", "i", "", "Read candidates from file instead of stdin")
	rootCmd.Flags().StringVarP(&appConfig.target, "target", "t", "", "Write the annotated stream to the specified path")
	rootCmd.Flags().BoolVarP(&appConfig.showVersion, "version", "v", false, "Print version and exit")

	rootCmd.SetHelpTemplate(cmd.HelpTemplate)
	rootCmd.SetUsageFunc(func(c *cobra.Command) error {
		return cmd.ColorUsageFunc(c.OutOrStderr(), c)
	})

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Error executing command", "error", err)
		os.Exit(1)
	}
}
