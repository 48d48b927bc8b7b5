package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/moasq/termpick/internal/config"
	"github.com/moasq/termpick/internal/terminal"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a menu file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := fileFlag
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			p, ok := config.FindDefault()
			if !ok {
				return fmt.Errorf("no menu file given and none found (set --file or $%s)", config.EnvConfig)
			}
			path = p
		}
		return checkFile(path)
	},
}

func checkFile(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if len(cfg.Options) == 0 {
		return fmt.Errorf("%s: %w", path, config.ErrNoOptions)
	}

	keys, err := cfg.Keys.Resolve()
	if err != nil {
		return err
	}

	terminal.Success(fmt.Sprintf("%s is valid", path))
	terminal.Detail("options", strconv.Itoa(len(cfg.Options)))
	terminal.Detail("refresh", cfg.RefreshInterval().String())
	terminal.Detail("keys", fmt.Sprintf("up=%c down=%c add=%c delete=%c copy=%c quit=%c",
		keys.Up, keys.Down, keys.Add, keys.Delete, keys.Copy, keys.Quit))
	if cfg.Cancel != "" {
		terminal.Detail("cancel", cfg.Cancel)
	}
	return nil
}
