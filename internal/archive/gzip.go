// Package archive compresses finished run logs before they are attached to
// the notification email.
package archive

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CompressLog gzips the file at path into path + ".gz" and returns the new
// path. The original file is left in place; retention treats both as run
// logs since they share the name prefix.
func CompressLog(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening log for compression: %w", err)
	}
	defer in.Close()

	outPath := path + ".gz"
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", outPath, err)
	}

	gz := gzip.NewWriter(out)
	gz.Name = filepath.Base(path)

	if _, err := io.Copy(gz, in); err != nil {
		out.Close()
		os.Remove(outPath)
		return "", fmt.Errorf("compressing %s: %w", path, err)
	}
	if err := gz.Close(); err != nil {
		out.Close()
		os.Remove(outPath)
		return "", fmt.Errorf("finalizing %s: %w", outPath, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", outPath, err)
	}

	return outPath, nil
}
