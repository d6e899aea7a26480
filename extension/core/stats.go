// stats.go implements the "hive stats" command.

package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/hive/cmd"
	"github.com/jpl-au/hive/internal/format"
	"github.com/jpl-au/hive/internal/log"
	"github.com/jpl-au/hive/internal/repo"
	"github.com/spf13/cobra"
)

func (e *Extension) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show key, value and size counts",
		Args:  cobra.NoArgs,
		RunE:  e.runStats,
	}
}

func (e *Extension) runStats(c *cobra.Command, _ []string) error {
	st, err := e.svc.Stats(c.Context())

	log.Event("core:stats", "stats").Author(cmd.Author()).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("stats: %w", err))
	}

	var size int64
	if info, err := os.Stat(filepath.Join(e.svc.Dir(), repo.DBFileName(cmd.DB()))); err == nil {
		size = info.Size()
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]int64{
			"keys":       st.Keys,
			"values":     st.Values,
			"data_bytes": st.DataBytes,
			"file_bytes": size,
			"newest":     st.Newest,
		})
	}
	return format.Stats(cmd.Out(), *st, size)
}
