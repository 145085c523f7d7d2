package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"table-pack-maker/core/observer"
	"table-pack-maker/core/reconcile"

	"github.com/spf13/cobra"
)

var (
	dbPathFlag   string
	tableURLFlag string
	jsonFlag     bool
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find table songs in the song database",
	Long: `Takes the list of charts from the table and searches for them in the beatoraja songdb.

If a chart is in the songdb and its bms file is present on disk, the folder holding it
is recorded. Finally it lists every table chart that could not be found, including those
that are in the songdb but no longer present on disk.

Examples:
  table-pack-maker find --db ~/beatoraja/songdata.db --table https://example.com/table/
  table-pack-maker find --db songdata.db --table https://example.com/table/ --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		svc, err := newPackService(cfg, logg)
		if err != nil {
			return err
		}

		in := reconcile.Inputs{DBPath: dbPathFlag, TableURL: tableURLFlag}

		if jsonFlag {
			res, err := svc.FindSongs(cmd.Context(), in, observer.NewZap(logg))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		out := observer.NewWriter(os.Stdout, "  ")
		defer out.Flush()

		res, err := svc.FindSongs(cmd.Context(), in, out)
		if err != nil {
			return err
		}
		_ = out.Flush()
		if len(res.SelectedFolders) > 0 {
			fmt.Println(renderPlan(res))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(findCmd)

	for _, c := range []*cobra.Command{findCmd, makeCmd} {
		c.Flags().StringVar(&dbPathFlag, "db", "", "Path to the beatoraja songdb (songdata.db)")
		c.Flags().StringVar(&tableURLFlag, "table", "", "URL of the difficulty table")
	}
	findCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the result as JSON")
}
