// Package rclonelog reads and digests rclone's line-delimited JSON log output.
// One log file holds one ordered stream of records; individual lines that fail
// to parse are noted and skipped rather than aborting the read.
package rclonelog

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Record is one parsed line of rclone --use-json-log output. The well-known
// keys are lifted into fields; Fields retains the full decoded object so the
// terminal record's free-form keys (message, error, notice, ...) stay
// inspectable.
type Record struct {
	Level  string
	Msg    string
	Object string
	Stats  *Stats
	Fields map[string]any
}

// Stats holds rclone's cumulative transfer counters. rclone emits these
// periodically and cumulatively, so the last occurrence in a stream is
// authoritative.
type Stats struct {
	Bytes        int64
	ElapsedTime  float64
	Deletes      int64
	DeletedDirs  int64
	Transfers    int64
	TransferTime float64
	Checks       int64
	Speed        float64
}

// ParseRecord decodes a single log line. Any JSON object is accepted; lines
// that are not JSON objects are an error.
func ParseRecord(line []byte) (*Record, error) {
	var fields map[string]any
	if err := json.Unmarshal(line, &fields); err != nil {
		return nil, fmt.Errorf("decoding log line: %w", err)
	}

	rec := &Record{Fields: fields}
	rec.Level, _ = fields["level"].(string)
	rec.Msg, _ = fields["msg"].(string)
	rec.Object, _ = fields["object"].(string)

	if raw, ok := fields["stats"].(map[string]any); ok {
		rec.Stats = statsFromMap(raw)
	}

	return rec, nil
}

func statsFromMap(m map[string]any) *Stats {
	return &Stats{
		Bytes:        asInt64(m["bytes"]),
		ElapsedTime:  asFloat64(m["elapsedTime"]),
		Deletes:      asInt64(m["deletes"]),
		DeletedDirs:  asInt64(m["deletedDirs"]),
		Transfers:    asInt64(m["transfers"]),
		TransferTime: asFloat64(m["transferTime"]),
		Checks:       asInt64(m["checks"]),
		Speed:        asFloat64(m["speed"]),
	}
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}
