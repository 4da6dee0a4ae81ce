package rclonelog

import (
	"bufio"
	"fmt"
	"os"
)

// ParseNote records a log line that could not be parsed. The read continues
// past it; notes surface in the run summary.
type ParseNote struct {
	Line    int    // 1-based line number
	Content string // raw line text
	Reason  string // decode failure description
}

// Stream is the full ordered record sequence read from one log file.
type Stream struct {
	Records []*Record
	Notes   []ParseNote
}

// Empty reports whether the stream contains no parsed records.
func (s *Stream) Empty() bool {
	return s == nil || len(s.Records) == 0
}

// Terminal returns the last parsed record, or nil for an empty stream.
// rclone writes its final status as the last line of the log.
func (s *Stream) Terminal() *Record {
	if s.Empty() {
		return nil
	}
	return s.Records[len(s.Records)-1]
}

// Read consumes the log file at path end-to-end and returns its stream.
// Unparsable lines become ParseNotes, never errors. An empty file yields an
// empty stream; only opening or scanning the file itself can fail.
func Read(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	stream := &Stream{}
	scanner := bufio.NewScanner(f)

	// rclone stats lines carry full file listings and can run long.
	const maxLineSize = 1024 * 1024
	buf := make([]byte, maxLineSize)
	scanner.Buffer(buf, maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		rec, err := ParseRecord(line)
		if err != nil {
			stream.Notes = append(stream.Notes, ParseNote{
				Line:    lineNum,
				Content: string(line),
				Reason:  err.Error(),
			})
			continue
		}
		stream.Records = append(stream.Records, rec)
	}

	if err := scanner.Err(); err != nil {
		return stream, fmt.Errorf("reading log file: %w", err)
	}

	return stream, nil
}
