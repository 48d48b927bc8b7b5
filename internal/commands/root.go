package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/moasq/termpick/internal/config"
	"github.com/moasq/termpick/internal/logging"
	"github.com/moasq/termpick/internal/terminal"
)

// Version is set at build time.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "termpick [option...]",
	Short: "Pick one line from a keyboard-driven terminal menu",
	Long: "termpick shows a scrollable menu of options and prints the one you pick.\n" +
		"Options come from a YAML/TOML menu file and from the arguments.\n\n" +
		"Keys: j/k or arrows move, Enter picks, a adds, d deletes, y copies, q/Esc quits.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPick,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Flag values.
var (
	fileFlag     string
	cancelFlag   string
	refreshFlag  string
	logFileFlag  string
	logLevelFlag string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "menu file (.yaml, .yml or .toml); defaults to $"+config.EnvConfig)
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "append structured logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&cancelFlag, "cancel", "", "value printed when the menu is quit without picking")
	rootCmd.Flags().StringVar(&refreshFlag, "refresh", "", "idle redraw interval, e.g. 200ms")

	rootCmd.AddCommand(checkCmd)
}

// loadConfig reads --file, the default menu file, or the built-in defaults.
func loadConfig() (*config.Config, error) {
	path := fileFlag
	if path == "" {
		if p, ok := config.FindDefault(); ok {
			path = p
		}
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// setupLogging opens --log-file. Without it logs are discarded, since the
// terminal belongs to the menu.
func setupLogging() (func(), error) {
	level, err := logging.ParseLevel(logLevelFlag)
	if err != nil {
		return nil, err
	}
	if logFileFlag == "" {
		logging.InitForCLI(level, nil)
		return func() {}, nil
	}

	f, err := os.OpenFile(logFileFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logging.InitForCLI(level, f)
	return func() { f.Close() }, nil
}

func runPick(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Options = append(cfg.Options, args...)
	if cmd.Flags().Changed("cancel") {
		cfg.Cancel = cancelFlag
	}
	if refreshFlag != "" {
		cfg.Refresh = refreshFlag
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if len(cfg.Options) == 0 {
		return config.ErrNoOptions
	}

	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	term, err := terminal.Open()
	if err != nil {
		if errors.Is(err, terminal.ErrNotTerminal) {
			return fmt.Errorf("termpick needs an interactive terminal: %w", err)
		}
		return err
	}

	p, err := newPicker(term, cfg)
	if err != nil {
		term.Close()
		return err
	}
	result, runErr := p.run()
	if err := term.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to restore terminal: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	if p.copyErr != nil {
		terminal.Warning(fmt.Sprintf("Clipboard unavailable: %v", p.copyErr))
	}
	return printResult(cmd.OutOrStdout(), result)
}

func printResult(w io.Writer, result string) error {
	_, err := fmt.Fprintln(w, result)
	return err
}
