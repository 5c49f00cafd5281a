package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/curbmap/internal/dataset"
)

// datasetRow is one line of the datasets listing.
type datasetRow struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Path     string    `json:"path"`
	Features int       `json:"features"`
	BBox     []float64 `json:"bbox,omitempty"`
	Error    string    `json:"error,omitempty"`
}

func newDatasetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the datasets in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := dataset.NewCatalog(a.cfg.DataDir, a.cfg.Datasets, a.logger)
			entries, err := catalog.List()
			if err != nil {
				return err
			}

			rows := make([]datasetRow, 0, len(entries))
			for _, e := range entries {
				row := datasetRow{Name: e.Name, Label: e.Label, Path: e.Path}
				if ds, err := catalog.Load(e.Name); err != nil {
					row.Error = err.Error()
				} else {
					row.Features = len(ds.Collection.Features)
					row.BBox = ds.Bounds.BBox()
				}
				rows = append(rows, row)
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			if len(rows) == 0 {
				fmt.Fprintf(out, "no datasets in %s\n", a.cfg.DataDir)
				return nil
			}
			for _, r := range rows {
				if r.Error != "" {
					fmt.Fprintf(out, "%s\t%s\terror: %s\n", r.Name, r.Label, r.Error)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%d features\n", r.Name, r.Label, r.Features)
			}
			return nil
		},
	}
}
