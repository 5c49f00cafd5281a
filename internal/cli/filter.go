package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/curbmap/internal/dataset"
	"github.com/mesh-intelligence/curbmap/pkg/curblr"
	"github.com/mesh-intelligence/curbmap/pkg/types"
)

// Output formats of the filter command.
const (
	formatGeoJSON = "geojson"
	formatLines   = "lines"
)

type filterFlags struct {
	day      string
	time     string
	dataset  string
	output   string
	format   string
	indent   bool
	summary  bool
	workers  int
	tieBreak string
}

func newFilterCmd(a *app) *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:   "filter [file]",
		Short: "Filter a CurbLR collection to the regulations in force",
		Long: "Read a CurbLR feature collection from a file, a named dataset or stdin\n" +
			"and write the regulations in force at --day and --time, one regulation\n" +
			"per feature with overlaps resolved by priority.",
		Example: "  curbmap filter village.curblr.json --day sa --time 14:30\n" +
			"  cat village.curblr.json | curbmap filter --summary",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, a, f, args)
		},
	}
	cmd.Flags().StringVar(&f.day, "day", "", "day code: mo tu we th fr sa su (default from config)")
	cmd.Flags().StringVar(&f.time, "time", "", "time of day as HH:MM (default from config)")
	cmd.Flags().StringVar(&f.dataset, "dataset", "", "filter a dataset from the catalog by name")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().StringVar(&f.format, "format", formatGeoJSON, "output format: geojson or lines (one feature per line)")
	cmd.Flags().BoolVar(&f.indent, "indent", false, "indent the output JSON")
	cmd.Flags().BoolVar(&f.summary, "summary", false, "print curb length per activity instead of the collection")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "reference lines resolved in parallel (default from config)")
	cmd.Flags().StringVar(&f.tieBreak, "tie-break", "", "equal priority winner: first or last (default from config)")
	return cmd
}

func runFilter(cmd *cobra.Command, a *app, f filterFlags, args []string) error {
	if f.format != formatGeoJSON && f.format != formatLines {
		return fmt.Errorf("unknown format %q: use %s or %s", f.format, formatGeoJSON, formatLines)
	}
	in, err := readInput(cmd, a, f, args)
	if err != nil {
		return err
	}

	day, tod := a.cfg.DefaultDay, a.cfg.DefaultTime
	if f.day != "" {
		day = f.day
	}
	if f.time != "" {
		tod = f.time
	}
	q := types.NewQuery(day, tod)
	if !q.Valid() {
		a.logger.Warn("unknown day or time, no regulation is in force", "day", day, "time", tod)
	}

	workers := a.cfg.Workers
	if cmd.Flags().Changed("workers") {
		workers = f.workers
	}
	tbName := a.cfg.TieBreak
	if f.tieBreak != "" {
		tbName = f.tieBreak
	}
	tb, err := types.ParseTieBreak(tbName)
	if err != nil {
		return err
	}

	out, stats, err := curblr.Filter(in, q,
		curblr.WithLogger(a.logger),
		curblr.WithWorkers(workers),
		curblr.WithTieBreak(tb),
	)
	if err != nil {
		return err
	}
	a.logger.Info("filtered",
		"query", q.String(),
		"groups", stats.Groups,
		"features_in", stats.FeaturesIn,
		"features_out", stats.FeaturesOut,
		"invalid_ranges", stats.InvalidRanges,
	)

	write := func(w io.Writer) error {
		switch {
		case f.summary:
			return writeSummary(w, curblr.Summarize(out), a.flags.jsonMode)
		case f.format == formatLines:
			return types.EncodeFeatureLines(w, out)
		}
		indent := ""
		if f.indent {
			indent = "  "
		}
		return types.EncodeCollection(w, out, indent)
	}

	if f.output == "" {
		if err := write(cmd.OutOrStdout()); err != nil {
			return sysErrorf("write output: %w", err)
		}
		return nil
	}
	if err := dataset.WriteFileAtomic(f.output, write); err != nil {
		return sysErrorf("write %s: %w", f.output, err)
	}
	return nil
}

// readInput decodes the collection named by --dataset, the file argument, or
// stdin when neither is given or the argument is "-".
func readInput(cmd *cobra.Command, a *app, f filterFlags, args []string) (types.FeatureCollection, error) {
	switch {
	case f.dataset != "" && len(args) > 0:
		return types.FeatureCollection{}, errors.New("use either a file argument or --dataset, not both")
	case f.dataset != "":
		ds, err := dataset.NewCatalog(a.cfg.DataDir, a.cfg.Datasets, a.logger).Load(f.dataset)
		if err != nil {
			return types.FeatureCollection{}, err
		}
		return ds.Collection, nil
	case len(args) == 1 && args[0] != "-":
		return dataset.ReadFile(args[0])
	default:
		c, err := types.DecodeCollection(cmd.InOrStdin())
		if err != nil {
			return types.FeatureCollection{}, fmt.Errorf("decode stdin: %w", err)
		}
		return c, nil
	}
}

func writeSummary(w io.Writer, totals []curblr.ActivityTotal, jsonMode bool) error {
	if jsonMode {
		data, err := json.MarshalIndent(totals, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}
	fmt.Fprintf(w, "%-24s %8s %12s\n", "ACTIVITY", "SEGMENTS", "LENGTH")
	for _, t := range totals {
		fmt.Fprintf(w, "%-24s %8d %12.2f\n", t.Activity, t.Segments, t.Length)
	}
	return nil
}
