package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/moodmate/backend/internal/app"
	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
	"github.com/zhouzirui/moodmate/backend/internal/model/palette"
	"github.com/zhouzirui/moodmate/backend/internal/service/export"
	"github.com/zhouzirui/moodmate/backend/internal/service/settings"
)

const paletteColumns = 12

func (c *cli) paletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Show the selectable emoji",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			tokens := palette.Strings(c.rt.App.Palette())
			for i := 0; i < len(tokens); i += paletteColumns {
				end := min(i+paletteColumns, len(tokens))
				fmt.Fprintln(out, strings.Join(tokens[i:end], " "))
			}
			return nil
		},
	}
}

func (c *cli) suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <emoji>...",
		Short: "Submit emoji and print the suggestion",
		Long: `Selects the given emoji (each must be in the palette) and submits them.

Example:
  moodctl suggest 😢 🥺`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			a := c.rt.App
			a.Clear()
			for _, token := range args {
				if slices.Contains(a.Selection(), token) {
					continue
				}
				if _, err := a.Toggle(token); err != nil {
					return err
				}
			}

			entry, err := a.Submit(ctx)
			if err != nil && !errors.Is(err, app.ErrNotSaved) {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.Join(entry.Tokens, " "))
			if r := entry.Record.AIResponse; r != nil {
				fmt.Fprintln(out)
				fmt.Fprintln(out, r.Message)
				fmt.Fprintln(out, r.Suggestion)
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return nil
		},
	}
}

func (c *cli) historyCmd() *cobra.Command {
	var exportPath string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records := c.rt.App.History()

			if exportPath != "" {
				f, err := os.Create(exportPath)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				if err := export.WriteXLSX(f, records, time.Local); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", len(records), exportPath)
				return nil
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No entries yet.")
				return nil
			}
			for _, record := range records {
				fmt.Fprintf(out, "%s  %s  %s\n", mood.FormatTimestamp(record.Timestamp, time.Local), record.Emoji, record.ID)
				if record.AIResponse != nil {
					fmt.Fprintf(out, "    %s\n    %s\n", record.AIResponse.Message, record.AIResponse.Suggestion)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&exportPath, "export", "", "Write the history to an .xlsx file instead of printing it")
	return cmd
}

func (c *cli) shareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <id>",
		Short: "Print a history entry as a shareable text card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := c.rt.App.Entry(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), export.ShareText(record, c.rt.App.Settings().Language, time.Local))
			return nil
		},
	}
}

func (c *cli) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printSettings(cmd, c.rt.App.Settings())
			return nil
		},
	}

	get := &cobra.Command{
		Use:       "get [key]",
		Short:     "Print all settings or a single key",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: settings.Keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := c.rt.App.Settings()
			if len(args) == 0 {
				printSettings(cmd, current)
				return nil
			}
			value, err := settingValue(current, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting (darkMode, notificationsEnabled, language)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			updated, err := c.rt.App.UpdateSetting(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			printSettings(cmd, updated)
			return nil
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}

func printSettings(cmd *cobra.Command, s mood.Settings) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s=%t\n", settings.KeyDarkMode, s.DarkMode)
	fmt.Fprintf(out, "%s=%t\n", settings.KeyNotifications, s.NotificationsEnabled)
	fmt.Fprintf(out, "%s=%s\n", settings.KeyLanguage, s.Language)
}

func settingValue(s mood.Settings, key string) (string, error) {
	switch key {
	case settings.KeyDarkMode:
		return fmt.Sprint(s.DarkMode), nil
	case settings.KeyNotifications:
		return fmt.Sprint(s.NotificationsEnabled), nil
	case settings.KeyLanguage:
		return string(s.Language), nil
	default:
		return "", fmt.Errorf("%q: %w", key, settings.ErrUnknownKey)
	}
}
