package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/CTAG07/wordchain/pkg/markov"
	"github.com/CTAG07/wordchain/pkg/source"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app carries the state shared by every command once flags are parsed.
type app struct {
	configPath string
	config     *Config
	logger     *slog.Logger
	closeLog   func() error
	stderr     io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{stderr: os.Stderr}
	root := newRootCmd(a)
	err := root.ExecuteContext(ctx)
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if err != nil {
		a.logger.Error("Program failed", "error", err)
	}
	if a.closeLog != nil {
		_ = a.closeLog()
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The root command reproduces the
// classic pipeline: build from a book, export the word pairs, generate text.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "wordchain <book> <pairs.csv>",
		Short:         "Generate text using Markov chains from EPUB books",
		Long:          "Builds a word pair Markov chain from the paragraphs of an EPUB (or plain text) book, saves the pairs as CSV and prints generated text.",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := a.build(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := chain.ExportFile(args[1]); err != nil {
				return err
			}
			return a.generate(cmd.OutOrStdout(), chain)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "./wordchain.json", "Path to the JSON configuration file.")
	pf.String("log-level", "", "Log level: debug, info, warn or error.")
	pf.String("log-file", "", "File that log records are also appended to; empty disables it.")
	pf.Int("workers", 0, "Number of goroutines used to build the chain.")
	pf.Bool("skip-license", false, "Leave out Project Gutenberg license pages.")
	addGenerateFlags(root)

	exportCmd := &cobra.Command{
		Use:   "export <book> <pairs.csv>",
		Short: "Build the chain and save the word pairs without generating",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := a.build(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return chain.ExportFile(args[1])
		},
	}

	generateCmd := &cobra.Command{
		Use:   "generate <pairs.csv>",
		Short: "Generate text from previously saved word pairs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := a.load(args[0])
			if err != nil {
				return err
			}
			return a.generate(cmd.OutOrStdout(), chain)
		},
	}
	addGenerateFlags(generateCmd)

	statsCmd := &cobra.Command{
		Use:   "stats <book>",
		Short: "Build the chain and print its statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := a.build(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), chain.Stats())
			return nil
		},
	}

	root.AddCommand(exportCmd, generateCmd, statsCmd)
	return root
}

func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("start-word", "", "Word to start generation with.")
	f.Int("length", 0, "Number of words to generate.")
	f.Uint64("seed", 0, "Seed for reproducible output; 0 picks a random one.")
}

// setup loads the configuration, applies explicitly set flags over it and
// creates the logger.
func (a *app) setup(cmd *cobra.Command) error {
	config, err := LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := applyFlags(cmd, config); err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.config = config

	logger, closeLog, err := newLogger(a.stderr, parseLevel(config.LogLevel), config.LogFile)
	if err != nil {
		return err
	}
	a.logger = logger
	a.closeLog = closeLog
	return nil
}

// applyFlags copies every flag the user set on the command line into config.
func applyFlags(cmd *cobra.Command, config *Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("log-level") {
		config.LogLevel, err = flags.GetString("log-level")
	}
	if err == nil && flags.Changed("log-file") {
		config.LogFile, err = flags.GetString("log-file")
	}
	if err == nil && flags.Changed("workers") {
		config.Workers, err = flags.GetInt("workers")
	}
	if err == nil && flags.Changed("skip-license") {
		config.SkipLicense, err = flags.GetBool("skip-license")
	}
	if err == nil && flags.Changed("start-word") {
		config.StartWord, err = flags.GetString("start-word")
	}
	if err == nil && flags.Changed("length") {
		config.Length, err = flags.GetInt("length")
	}
	if err == nil && flags.Changed("seed") {
		config.Seed, err = flags.GetUint64("seed")
	}
	return err
}

// build reads the book at path and builds its chain.
func (a *app) build(ctx context.Context, path string) (*markov.Chain, error) {
	paragraphs := source.Open(path,
		source.WithSkipLicense(a.config.SkipLicense),
		source.WithLogger(a.logger),
	)
	chain, err := markov.Build(ctx, paragraphs,
		markov.WithWorkers(a.config.Workers),
		markov.WithLogger(a.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("error processing %s: %w", path, err)
	}
	return chain, nil
}

// load reads a word pair CSV written by a previous export.
func (a *app) load(path string) (*markov.Chain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error loading word pairs: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	chain, err := markov.ReadCSV(f, markov.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("error loading word pairs from %s: %w", path, err)
	}
	return chain, nil
}

// generate normalizes the configured start word, walks the chain and prints
// the result.
func (a *app) generate(w io.Writer, chain *markov.Chain) error {
	tokens := chain.Tokenizer().Tokens(a.config.StartWord)
	if len(tokens) != 1 {
		return fmt.Errorf("start word %q must be exactly one word after normalization", a.config.StartWord)
	}

	var opts []markov.GenerateOption
	if a.config.Seed != 0 {
		opts = append(opts, markov.WithSeed(a.config.Seed))
	}
	text, err := chain.Generate(tokens[0], a.config.Length, opts...)
	if err != nil {
		return fmt.Errorf("error generating text: %w", err)
	}

	_, err = fmt.Fprintf(w, "\nGenerated text:\n%s\n", text)
	return err
}

func printStats(w io.Writer, s markov.Stats) {
	_, _ = fmt.Fprintf(w, "unique words:    %d\n", s.Keys)
	_, _ = fmt.Fprintf(w, "word pairs:      %d\n", s.Adjacencies)
	_, _ = fmt.Fprintf(w, "vocabulary:      %d\n", s.Vocabulary)
	_, _ = fmt.Fprintf(w, "terminal words:  %d\n", s.TerminalTokens)
	_, _ = fmt.Fprintf(w, "widest fan-out:  %d (%s)\n", s.MaxFanOut, s.MaxFanOutToken)
}
