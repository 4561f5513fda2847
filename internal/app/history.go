package app

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/footprint-tools/crun/internal/commandtree"
	"github.com/footprint-tools/crun/internal/format"
	"github.com/footprint-tools/crun/internal/history"
	"github.com/footprint-tools/crun/internal/log"
	"github.com/footprint-tools/crun/internal/ui/style"
)

const maxCommandWidth = 60

var historyHeaders = table.Row{"Started", "Status", "Exit", "Duration", "Tree", "Path", "Command"}

// showHistory lists recent runs, limited to the named tree when the first
// token is a readable tree file.
func (a *App) showHistory(tokens []string, limit int) error {
	filter := history.Filter{Limit: limit}
	if len(tokens) > 0 && looksLikeTree(tokens[0]) {
		cfg, err := commandtree.Load(tokens[0])
		if err != nil {
			log.Debug("app: history without tree filter: %v", err)
		} else {
			filter.Tree = cfg.Name
		}
	}

	runs, err := a.History.List(filter)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(runs) == 0 {
		_, _ = a.Output.Println("No runs recorded yet.")
		return nil
	}

	a.Output.Pager(renderHistory(runs) + "\n")
	return nil
}

func renderHistory(runs []history.Run) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(historyHeaders)

	for _, r := range runs {
		tw.AppendRow(table.Row{
			format.DateTime(r.StartedAt),
			statusLabel(r.Status),
			strconv.Itoa(r.ExitCode),
			format.Duration(r.Duration),
			style.Info(r.Tree),
			r.Path,
			style.Muted(format.Truncate(r.CommandLine, maxCommandWidth)),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func statusLabel(s history.Status) string {
	label := string(s)
	switch s {
	case history.StatusSucceeded:
		return style.Success(label)
	case history.StatusAborted:
		return style.Muted(label)
	default:
		return style.Error(label)
	}
}
