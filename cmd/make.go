package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"table-pack-maker/core/observer"
	"table-pack-maker/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	yesConfirm  bool
	showMissing bool
)

// makeCmd finds the table songs and copies their folders into a new pack.
var makeCmd = &cobra.Command{
	Use:   "make",
	Short: "Make a table pack",
	Long: `Finds the table songs in the songdb (see "find"), shows the folders that will be
copied and, once confirmed, copies all of them into a new folder under the pack
destination. This can take a while to complete.

When storage is enabled (STORAGE_ENABLED=true) the finished pack is uploaded to the
configured S3/MinIO bucket.

Examples:
  # Interactive confirmation
  table-pack-maker make --db songdata.db --table https://example.com/table/

  # Non-interactive
  table-pack-maker make --db songdata.db --table https://example.com/table/ --yes`,
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
		out := observer.NewWriter(os.Stdout, "  ")
		defer out.Flush()

		res, err := svc.FindSongs(cmd.Context(), in, out)
		if err != nil {
			return err
		}
		_ = out.Flush()

		if showMissing && len(res.MissingCharts) > 0 {
			fmt.Println(renderMissing(res))
		}
		if len(res.SelectedFolders) == 0 {
			logg.Warn("No chart folders found; nothing to copy.")
			return nil
		}
		fmt.Println(renderPlan(res))

		if !confirmCopy(len(res.SelectedFolders)) {
			logg.Warn("Operation cancelled by user. No pack was created.")
			return nil
		}

		built, err := svc.MakePack(cmd.Context(), in, out)
		if err != nil {
			return err
		}
		logg.Info("Pack ready", zap.String("dir", built.Dir), zap.Int("folders", len(built.Targets)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(makeCmd)

	makeCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Skip the confirmation prompt")
	makeCmd.Flags().BoolVar(&showMissing, "missing", false, "Also print the missing charts as a table")
}

// confirmCopy prompts the user for confirmation or uses the --yes flag.
func confirmCopy(folders int) bool {
	if yesConfirm {
		return true
	}

	fmt.Printf("\nCopy %d folders into a new pack? Type 'yes' to continue: ", folders)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
