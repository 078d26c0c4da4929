package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal/pkg/core"
)

var (
	listJSON  bool
	listQuery string
	listTag   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, most recent first",
	Long: `List shows every note, newest at the top.
--query keeps notes whose title, content or a tag contains the text (case-insensitive).
--tag keeps notes with a tag matching a glob pattern, e.g. "work*".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		notes := svc.Search(cmd.Context(), listQuery)
		if listTag != "" {
			notes, err = core.FilterTags(notes, listTag)
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if listJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if notes == nil {
				notes = []core.Note{}
			}
			return encoder.Encode(notes)
		}

		renderList(out, paletteFor(svc.Theme()), notes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Search text")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Filter notes by tag glob")
}
