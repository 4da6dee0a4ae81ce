package rclonelog

import (
	"fmt"
	"strings"
)

// terminalKeys is the fixed render order for the terminal record's direct
// fields. Only keys actually present appear in the digest.
var terminalKeys = []string{"message", "error", "notice", "fatal", "debug", "retry", "warn"}

// Field is one terminal-record key/value pair.
type Field struct {
	Key   string
	Value string
}

// Digest is the folded view of one log stream: the authoritative stats
// record, the error ledger, the terminal record's direct fields, and
// per-file tallies for sync runs.
type Digest struct {
	Stats    *Stats   // last stats-bearing record, nil when none was seen
	Errors   []string // level=error messages in log order, duplicates preserved
	Terminal []Field  // terminal record fields in fixed order

	// Per-file event tallies, meaningful for sync runs.
	NewFiles      int
	ReplacedFiles int
	DeletedFiles  int
}

// Summarize folds a stream into its digest. The stats scan and the terminal
// record inspection are independent passes: stats come from the last
// stats-bearing record anywhere in the stream, the terminal fields only from
// the final parsed line.
func Summarize(stream *Stream) *Digest {
	d := &Digest{}
	if stream == nil {
		return d
	}

	for _, rec := range stream.Records {
		if rec.Level == "error" {
			if rec.Object != "" {
				d.Errors = append(d.Errors, fmt.Sprintf("%s: %q", rec.Object, rec.Msg))
			} else {
				d.Errors = append(d.Errors, rec.Msg)
			}
		}

		if rec.Stats != nil {
			d.Stats = rec.Stats // last wins
		}

		switch {
		case strings.Contains(rec.Msg, "Copied (new)"):
			d.NewFiles++
		case strings.Contains(rec.Msg, "Copied (replaced"):
			d.ReplacedFiles++
		case strings.Contains(rec.Msg, "Deleted"):
			d.DeletedFiles++
		}
	}

	if term := stream.Terminal(); term != nil {
		for _, key := range terminalKeys {
			if v, ok := term.Fields[key]; ok {
				d.Terminal = append(d.Terminal, Field{Key: key, Value: fmt.Sprintf("%v", v)})
			}
		}
	}

	return d
}
