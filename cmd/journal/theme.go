package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal/pkg/core"
)

var themeCmd = &cobra.Command{
	Use:   "theme [toggle|light|dark]",
	Short: "Show or change the display theme",
	Long: `Without arguments, theme prints the current theme.
"toggle" switches between light and dark; "light" or "dark" sets it.
The choice is remembered for the next run.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"toggle", string(core.ThemeLight), string(core.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(out, svc.Theme())
			return nil
		}

		if args[0] == "toggle" {
			fmt.Fprintln(out, svc.ToggleTheme(cmd.Context()))
			return nil
		}

		t, err := core.ParseTheme(args[0])
		if err != nil {
			return err
		}
		if err := svc.SetTheme(cmd.Context(), t); err != nil {
			return err
		}
		fmt.Fprintln(out, t)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
