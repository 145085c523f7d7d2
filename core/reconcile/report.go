package reconcile

import (
	"fmt"

	"table-pack-maker/core/observer"
)

// Report writes the missing-chart listing and the summary counts to obs.
// symbol is the table's level prefix (e.g. "★"), shown before each level.
func (r *Result) Report(obs observer.Observer, symbol string) {
	if len(r.MissingCharts) > 0 {
		obs.Log("Missing charts:", true)
		for _, c := range r.MissingCharts {
			obs.Log(fmt.Sprintf("%s%s %s (%s)", symbol, c.Level, c.Title, c.Hash), false)
		}
		obs.Log(fmt.Sprintf("^ %d missing charts.", len(r.MissingCharts)), true)
	} else {
		obs.Log("No missing charts.", true)
	}

	obs.Status(fmt.Sprintf("%d/%d charts found in song database.", r.Found, r.Total))
	obs.Status(fmt.Sprintf("%d bms folders used for %d charts.", len(r.SelectedFolders), r.Found))
}
