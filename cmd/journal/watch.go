package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/journal/pkg/adapters/lifecycle"
	"github.com/aretw0/journal/pkg/core"
)

var (
	watchQuery  string
	watchEvents []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the list again whenever the journal changes on disk",
	Long: `Watch lists the notes, then re-renders the list each time the collection
is changed by another process (for example another "journal new").
Changed notes are listed as CREATE, MODIFY or DELETE lines; --events limits
which kinds are reported (without "reload" the list is not re-rendered).
Only the fs adapter supports watching. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		types, err := lifecycle.ParseEventTypes(watchEvents)
		if err != nil {
			return err
		}

		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := svc.Watch(ctx)
		if err != nil {
			return err
		}
		source := lifecycle.NewSource(events, types...)
		if err := source.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		renderList(out, paletteFor(svc.Theme()), svc.Search(ctx, watchQuery))

		for {
			select {
			case <-ctx.Done():
				return nil
			case evt, ok := <-source.Events():
				if !ok {
					return nil
				}
				e, _ := evt.(core.Event)
				if e.Type != core.EventReload {
					fmt.Fprintf(out, "  %s\n", evt)
					continue
				}
				fmt.Fprintln(out, "\n--- journal changed ---")
				renderList(out, paletteFor(svc.Theme()), svc.Search(ctx, watchQuery))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchQuery, "query", "q", "", "Search text")
	watchCmd.Flags().StringSliceVar(&watchEvents, "events", nil, "Only report these event types (create, modify, delete, reload)")
}
