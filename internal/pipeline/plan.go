package pipeline

import (
	"path/filepath"

	"github.com/backmassage/pqconvert/internal/config"
	"github.com/backmassage/pqconvert/internal/naming"
)

// WorkItem pairs one source file with its destination. Index is the
// enumerated position from discovery; every item maps to exactly one engine
// invocation.
type WorkItem struct {
	Index  int
	Source string
	Dest   string
}

// BuildWorkItems assigns a destination to every discovered source. Outside
// merge mode the destination sits alongside the source with the format's
// extension. In merge mode (text formats only; the parquet merge never
// produces per-file work) each destination is a uniquely named intermediate
// inside the scratch directory, index-prefixed so filename order equals
// enumeration order.
func BuildWorkItems(files []string, cfg *config.Config, scratchDir string) []WorkItem {
	items := make([]WorkItem, len(files))
	for i, src := range files {
		dest := naming.DestinationPath(src, cfg.Format.Ext())
		if cfg.SingleFile {
			dest = filepath.Join(scratchDir, naming.TempName(i, src, cfg.Format.Ext()))
		}
		items[i] = WorkItem{Index: i, Source: src, Dest: dest}
	}
	return items
}
