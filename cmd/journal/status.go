package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/journal/pkg/adapters/fs"
	"github.com/aretw0/journal/pkg/core"
)

var statusDiagram bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the state of the journal and its storage",
	Long: `Status prints the service and storage state as JSON.
With --diagram it prints a Mermaid diagram of the components instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		out := cmd.OutOrStdout()
		if statusDiagram {
			config := introspection.DefaultDiagramConfig()
			config.SecondaryID = "journal"
			config.SecondaryLabel = "Journal Topology"
			fmt.Fprintln(out, introspection.TreeDiagram(buildTree(svc), config))
			return nil
		}

		report := map[string]any{"service": svc.State()}
		if intro, ok := svc.Repository().(introspection.Introspectable); ok {
			report["storage"] = intro.State()
		}

		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	},
}

type statusNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []statusNode
}

// buildTree maps the service state onto node statuses known to
// introspection.DefaultStyles (running, suspended, failed, ...).
func buildTree(svc *core.Service) statusNode {
	state := svc.State().(core.ServiceState)

	storeStatus := "running"
	if state.Store.LastPersistError != "" {
		storeStatus = "failed"
	}

	storage := statusNode{
		Name:     "Storage",
		Status:   "running",
		Metadata: map[string]string{"type": state.RepositoryType},
	}
	if st, ok := svc.Repository().(*fs.Repository); ok {
		rs := st.State().(fs.RepositoryState)
		storage.Metadata["path"] = rs.CollectionFile
		watcher := "suspended"
		if rs.WatcherActive {
			watcher = "running"
		}
		storage.Children = []statusNode{{
			Name:     "Watcher",
			Status:   watcher,
			Metadata: map[string]string{"type": "goroutine"},
		}}
	}

	return statusNode{
		Name:   "Journal",
		Status: "running",
		Metadata: map[string]string{
			"type":  "container",
			"theme": string(state.Theme),
		},
		Children: []statusNode{
			{
				Name:   "Store",
				Status: storeStatus,
				Metadata: map[string]string{
					"type":  "process",
					"notes": fmt.Sprintf("%d", state.Store.Notes),
				},
			},
			storage,
		},
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusDiagram, "diagram", false, "Print a Mermaid diagram instead of JSON")
}
