package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/cek/rclonebb/internal/rclonelog"
)

const timeLayout = "2006-01-02 15:04:05"

// Input carries everything the summary is assembled from. Two identical
// inputs always render to identical text; the formatter holds no state of
// its own.
type Input struct {
	RunID string
	Mode  string
	Start time.Time
	End   time.Time

	Primary     string // rendered primary command line
	Cleanup     string // rendered cleanup command line, empty when it did not run
	CleanupNote string // reason cleanup was skipped, empty otherwise

	Digest     *rclonelog.Digest
	ParseNotes []rclonelog.ParseNote
	LogEmpty   bool // no records could be read from the log file

	Exceptions []string
}

// Render assembles the summary text. Section order is fixed: timing,
// command lines, terminal-record fields, statistics, sync tallies, parse
// notes, error ledger, exceptions. Empty sections are omitted except the
// statistics section, which reports its own absence.
func Render(in Input) string {
	var b strings.Builder

	if in.RunID != "" {
		fmt.Fprintf(&b, "Run ID: %s\n", in.RunID)
	}
	fmt.Fprintf(&b, "Start time: %s\n", in.Start.Format(timeLayout))
	fmt.Fprintf(&b, "Completion time: %s\n", in.End.Format(timeLayout))
	fmt.Fprintf(&b, "Elapsed time: %s\n\n", in.End.Sub(in.Start).Truncate(time.Second))

	fmt.Fprintf(&b, "Command line: %s\n", in.Primary)
	if in.Cleanup != "" {
		fmt.Fprintf(&b, "Cleanup command: %s\n", in.Cleanup)
	} else if in.CleanupNote != "" {
		fmt.Fprintf(&b, "Cleanup: skipped (%s)\n", in.CleanupNote)
	}
	b.WriteString("\n")

	if in.LogEmpty {
		b.WriteString("Cannot parse log file: no log records found.\n\n")
	}

	d := in.Digest
	if d == nil {
		d = &rclonelog.Digest{}
	}

	if len(d.Terminal) > 0 {
		for _, f := range d.Terminal {
			fmt.Fprintf(&b, "%s: %s\n", f.Key, f.Value)
		}
		b.WriteString("\n")
	}

	renderStats(&b, d.Stats)

	if in.Mode == "sync" && !in.LogEmpty {
		fmt.Fprintf(&b, "Summary of rclone sync:\n")
		fmt.Fprintf(&b, "  New files synced: %d\n", d.NewFiles)
		fmt.Fprintf(&b, "  Files replaced: %d\n", d.ReplacedFiles)
		fmt.Fprintf(&b, "  Files deleted: %d\n\n", d.DeletedFiles)
	}

	if len(in.ParseNotes) > 0 {
		b.WriteString("Log parse notes:\n")
		for _, n := range in.ParseNotes {
			fmt.Fprintf(&b, "  line %d: %s: %s\n", n.Line, n.Reason, n.Content)
		}
		b.WriteString("\n")
	}

	if len(d.Errors) > 0 {
		b.WriteString("ERRORs:\n")
		for _, e := range d.Errors {
			fmt.Fprintf(&b, "  %s\n", e)
		}
		b.WriteString("\n")
	}

	if len(in.Exceptions) > 0 {
		b.WriteString("Exceptions:\n")
		for _, e := range in.Exceptions {
			fmt.Fprintf(&b, "  %s\n", e)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderStats(b *strings.Builder, s *rclonelog.Stats) {
	if s == nil {
		b.WriteString("No stats found in log file.\n\n")
		return
	}

	b.WriteString("Rclone statistics:\n")
	fmt.Fprintf(b, "  Bytes transferred: %s\n", FormatBytes(s.Bytes))
	if s.ElapsedTime > 0 {
		fmt.Fprintf(b, "  Throughput: %s\n", FormatRate(float64(s.Bytes)/s.ElapsedTime))
	} else {
		fmt.Fprintf(b, "  Throughput: unavailable\n")
	}
	fmt.Fprintf(b, "  Checks: %d\n", s.Checks)
	fmt.Fprintf(b, "  Transfers: %d\n", s.Transfers)
	fmt.Fprintf(b, "  Deletes: %d\n", s.Deletes)
	fmt.Fprintf(b, "  Deleted dirs: %d\n", s.DeletedDirs)
	fmt.Fprintf(b, "  Transfer time: %.1fs\n", s.TransferTime)
	fmt.Fprintf(b, "  Elapsed (rclone): %.1fs\n\n", s.ElapsedTime)
}
