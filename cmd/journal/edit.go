package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal/pkg/core"
)

var (
	editTitle     string
	editContent   string
	editTags      []string
	editClearTags bool
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change the title, content or tags of a note",
	Long: `Edit replaces only the fields given as flags. The note keeps its id,
creation time and position in the list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch core.Patch
		flags := cmd.Flags()
		if flags.Changed("title") {
			patch.Title = core.String(editTitle)
		}
		if flags.Changed("content") {
			patch.Content = core.String(editContent)
		}
		if flags.Changed("tag") {
			patch.Tags = core.Tags(editTags...)
		}
		if editClearTags {
			patch.Tags = core.Tags()
		}
		if patch.Title == nil && patch.Content == nil && patch.Tags == nil {
			return errors.New("nothing to change: pass --title, --content, --tag or --clear-tags")
		}

		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		n, err := svc.UpdateNote(cmd.Context(), args[0], patch)
		if errors.Is(err, core.ErrValidation) {
			return errors.New(emptyNoteMessage)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updated note %s\n", n.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content")
	editCmd.Flags().StringSliceVar(&editTags, "tag", nil, "Replace tags (repeatable or comma-separated)")
	editCmd.Flags().BoolVar(&editClearTags, "clear-tags", false, "Remove all tags")
}
