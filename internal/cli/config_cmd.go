package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/amirbrooks/assistant/internal/config"
	"github.com/amirbrooks/assistant/internal/store"
)

func newConfigCmd(flags *config.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Show or change workspace settings",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return usageError(errors.New("usage: assistant config <show|set> ..."))
		},
	}
	cmd.AddCommand(newConfigShowCmd(flags), newConfigSetCmd(flags))
	return cmd
}

func newConfigShowCmd(flags *config.Flags) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print config.json with defaults applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(*flags)
			if err != nil {
				return err
			}
			cfg := ws.Config()
			cfgPath := filepath.Join(ws.Root, "config.json")
			_, statErr := os.Stat(cfgPath)
			exists := statErr == nil
			out := cmd.OutOrStdout()

			if plain {
				w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
				fmt.Fprintln(w, "KEY\tVALUE")
				fmt.Fprintf(w, "root\t%s\n", ws.Root)
				fmt.Fprintf(w, "config_path\t%s\n", cfgPath)
				fmt.Fprintf(w, "exists\t%t\n", exists)
				fmt.Fprintf(w, "backend\t%s\n", cfg.Backend)
				fmt.Fprintf(w, "birthday_days\t%d\n", cfg.BirthdayDays)
				return w.Flush()
			}

			fmt.Fprintln(out, "Config")
			fmt.Fprintln(out, "  Root:", ws.Root)
			if exists {
				fmt.Fprintln(out, "  Config file:", cfgPath)
			} else {
				fmt.Fprintln(out, "  Config file:", cfgPath, "(not found; defaults shown)")
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  backend: %s\n", cfg.Backend)
			fmt.Fprintf(out, "  birthday_days: %d\n", cfg.BirthdayDays)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "tab-separated KEY/VALUE output")
	return cmd
}

func newConfigSetCmd(flags *config.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set backend or birthday_days in config.json",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return usageError(errors.New("usage: assistant config set <key> <value>"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(*flags)
			if err != nil {
				return err
			}
			key := strings.ToLower(strings.TrimSpace(args[0]))
			value := strings.TrimSpace(strings.Join(args[1:], " "))
			cfg := ws.Config()

			switch key {
			case "backend":
				switch strings.ToLower(value) {
				case store.BackendFile, store.BackendSQLite:
					cfg.Backend = strings.ToLower(value)
				default:
					return configSetInvalid(key, value)
				}
			case "birthday_days":
				n, err := strconv.Atoi(value)
				if err != nil || n < 1 {
					return configSetInvalid(key, value)
				}
				cfg.BirthdayDays = n
			default:
				return usageError(fmt.Errorf("unknown config key: %s (allowed keys: backend, birthday_days)", key))
			}

			if err := ws.SaveConfig(cfg); err != nil {
				return internalError(fmt.Errorf("config set: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", key)
			return nil
		},
	}
}

func configSetInvalid(key, value string) error {
	return usageError(fmt.Errorf("invalid value for %s: %q", key, value))
}
