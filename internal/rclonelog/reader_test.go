package rclonelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rclone_log_20240101_000000.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadParsesAllLines(t *testing.T) {
	path := writeLog(t,
		`{"level":"info","msg":"Copied (new)","object":"a.txt"}`,
		`{"level":"error","msg":"permission denied","object":"b.txt"}`,
		`{"level":"info","msg":"done","stats":{"bytes":1024,"elapsedTime":2.5}}`,
	)

	stream, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(stream.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(stream.Records))
	}
	if len(stream.Notes) != 0 {
		t.Errorf("got %d parse notes, want 0", len(stream.Notes))
	}
	if stream.Records[0].Object != "a.txt" {
		t.Errorf("object = %q, want a.txt", stream.Records[0].Object)
	}
	if stream.Records[2].Stats == nil || stream.Records[2].Stats.Bytes != 1024 {
		t.Errorf("stats not parsed: %+v", stream.Records[2].Stats)
	}
}

func TestReadToleratesMalformedLine(t *testing.T) {
	path := writeLog(t,
		`this is not json`,
		`{"level":"info","msg":"one"}`,
		`{"level":"info","msg":"two"}`,
	)

	stream, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(stream.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(stream.Records))
	}
	if len(stream.Notes) != 1 {
		t.Fatalf("got %d parse notes, want 1", len(stream.Notes))
	}
	note := stream.Notes[0]
	if note.Line != 1 {
		t.Errorf("note line = %d, want 1", note.Line)
	}
	if note.Content != "this is not json" {
		t.Errorf("note content = %q", note.Content)
	}
	if note.Reason == "" {
		t.Error("note reason is empty")
	}
}

func TestReadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rclone_log_empty.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	stream, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !stream.Empty() {
		t.Error("expected empty stream")
	}
	if stream.Terminal() != nil {
		t.Error("expected nil terminal record for empty stream")
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err == nil {
		t.Fatal("expected an error for a missing log file")
	}
}

func TestReadSkipsBlankLines(t *testing.T) {
	path := writeLog(t,
		`{"level":"info","msg":"one"}`,
		``,
		`{"level":"info","msg":"two"}`,
	)

	stream, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(stream.Records) != 2 {
		t.Errorf("got %d records, want 2", len(stream.Records))
	}
	if len(stream.Notes) != 0 {
		t.Errorf("blank lines should not produce parse notes, got %d", len(stream.Notes))
	}
}

func TestTerminalIsLastParsedRecord(t *testing.T) {
	path := writeLog(t,
		`{"level":"info","msg":"one"}`,
		`{"level":"info","msg":"last","message":"all done"}`,
	)

	stream, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	term := stream.Terminal()
	if term == nil {
		t.Fatal("no terminal record")
	}
	if term.Msg != "last" {
		t.Errorf("terminal msg = %q, want last", term.Msg)
	}
	if term.Fields["message"] != "all done" {
		t.Errorf("terminal message field = %v", term.Fields["message"])
	}
}
