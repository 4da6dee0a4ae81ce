package rclonelog

import (
	"reflect"
	"testing"
)

func mustRecord(t *testing.T, line string) *Record {
	t.Helper()
	rec, err := ParseRecord([]byte(line))
	if err != nil {
		t.Fatalf("ParseRecord(%s): %v", line, err)
	}
	return rec
}

func TestSummarizeLastStatsWins(t *testing.T) {
	stream := &Stream{Records: []*Record{
		mustRecord(t, `{"level":"error","msg":"x"}`),
		mustRecord(t, `{"stats":{"bytes":1048576,"elapsedTime":10}}`),
		mustRecord(t, `{"stats":{"bytes":2097152,"elapsedTime":10}}`),
	}}

	d := Summarize(stream)
	if d.Stats == nil {
		t.Fatal("no stats found")
	}
	if d.Stats.Bytes != 2097152 {
		t.Errorf("stats bytes = %d, want 2097152 (last occurrence wins)", d.Stats.Bytes)
	}
	if !reflect.DeepEqual(d.Errors, []string{"x"}) {
		t.Errorf("error ledger = %v, want [x]", d.Errors)
	}
}

func TestSummarizeErrorLedgerFormat(t *testing.T) {
	stream := &Stream{Records: []*Record{
		mustRecord(t, `{"level":"error","msg":"permission denied","object":"secret.txt"}`),
		mustRecord(t, `{"level":"error","msg":"timeout"}`),
		mustRecord(t, `{"level":"error","msg":"timeout"}`),
		mustRecord(t, `{"level":"info","msg":"not an error"}`),
	}}

	d := Summarize(stream)
	want := []string{`secret.txt: "permission denied"`, "timeout", "timeout"}
	if !reflect.DeepEqual(d.Errors, want) {
		t.Errorf("error ledger = %v, want %v (order and duplicates preserved)", d.Errors, want)
	}
}

func TestSummarizeNoStats(t *testing.T) {
	stream := &Stream{Records: []*Record{
		mustRecord(t, `{"level":"info","msg":"nothing to do"}`),
	}}

	d := Summarize(stream)
	if d.Stats != nil {
		t.Errorf("expected nil stats, got %+v", d.Stats)
	}
}

func TestSummarizeTerminalFieldOrder(t *testing.T) {
	// Keys deliberately out of render order in the JSON.
	stream := &Stream{Records: []*Record{
		mustRecord(t, `{"level":"info","msg":"first"}`),
		mustRecord(t, `{"warn":"low disk","message":"finished","error":"1 failed"}`),
	}}

	d := Summarize(stream)
	want := []Field{
		{Key: "message", Value: "finished"},
		{Key: "error", Value: "1 failed"},
		{Key: "warn", Value: "low disk"},
	}
	if !reflect.DeepEqual(d.Terminal, want) {
		t.Errorf("terminal fields = %v, want %v", d.Terminal, want)
	}
}

func TestSummarizeTerminalUsesLastLineOnly(t *testing.T) {
	// The message field on an earlier record must not leak into the digest.
	stream := &Stream{Records: []*Record{
		mustRecord(t, `{"message":"not the terminal record"}`),
		mustRecord(t, `{"notice":"done"}`),
	}}

	d := Summarize(stream)
	want := []Field{{Key: "notice", Value: "done"}}
	if !reflect.DeepEqual(d.Terminal, want) {
		t.Errorf("terminal fields = %v, want %v", d.Terminal, want)
	}
}

func TestSummarizeSyncTallies(t *testing.T) {
	stream := &Stream{Records: []*Record{
		mustRecord(t, `{"level":"info","msg":"Copied (new)","object":"a"}`),
		mustRecord(t, `{"level":"info","msg":"Copied (new)","object":"b"}`),
		mustRecord(t, `{"level":"info","msg":"Copied (replaced existing)","object":"c"}`),
		mustRecord(t, `{"level":"info","msg":"Deleted","object":"d"}`),
	}}

	d := Summarize(stream)
	if d.NewFiles != 2 || d.ReplacedFiles != 1 || d.DeletedFiles != 1 {
		t.Errorf("tallies = new:%d replaced:%d deleted:%d, want 2/1/1",
			d.NewFiles, d.ReplacedFiles, d.DeletedFiles)
	}
}

func TestSummarizeNilStream(t *testing.T) {
	d := Summarize(nil)
	if d == nil {
		t.Fatal("Summarize(nil) returned nil")
	}
	if d.Stats != nil || len(d.Errors) != 0 || len(d.Terminal) != 0 {
		t.Errorf("expected zero digest, got %+v", d)
	}
}
