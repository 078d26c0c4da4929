package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal/pkg/core"
)

const emptyNoteMessage = "Please enter a title or content for your note."

var (
	newTitle   string
	newContent string
	newTags    []string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note",
	Long: `Create a note at the top of the journal.
Either a title or some content is required. Tags are trimmed and deduplicated.

Example:
  journal new --title "Standup" --content "Discussed Q4 goals" --tag work,meetings`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		n, err := svc.CreateNote(cmd.Context(), core.Draft{
			Title:   newTitle,
			Content: newContent,
			Tags:    newTags,
		})
		if errors.Is(err, core.ErrValidation) {
			return errors.New(emptyNoteMessage)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created note %s\n", n.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "Note title")
	newCmd.Flags().StringVarP(&newContent, "content", "c", "", "Note content")
	newCmd.Flags().StringSliceVar(&newTags, "tag", nil, "Tags (repeatable or comma-separated)")
}
