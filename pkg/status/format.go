package status

import (
	"fmt"

	"github.com/fatih/color"
)

// 🎯 FormatFileOp formats one file operation for display. The leading word
// keeps the original batch tool's vocabulary so logs stay grep-compatible
// across versions.
func FormatFileOp(op FileOp) string {
	arrow := color.HiBlackString("->")
	switch op.Type {
	case FileCopied:
		return fmt.Sprintf("%s %s %s %s", color.GreenString("COPIED:"), op.Source, arrow, op.Dest)
	case FilePlanned:
		return fmt.Sprintf("%s %s %s %s", color.CyanString("DRY RUN:"), op.Source, arrow, op.Dest)
	case FileSkippedExists:
		return fmt.Sprintf("%s Exists %s", color.YellowString("SKIP:"), op.Dest)
	case FileUnmapped:
		return fmt.Sprintf("%s No mapping for %s, skipping %s", color.RedString("WARN:"), op.Station, op.Source)
	default:
		return fmt.Sprintf("%s %s", op.Source, op.Dest)
	}
}
