package jobs

import (
	"fmt"
	"os"
	"time"
)

// Sink is the append-only log each job writes to.
type Sink interface {
	Append(line string) error
}

// FileSink appends one line per entry to a text file, creating it on first
// use. Lines are expected to already carry their timestamp prefix.
type FileSink struct {
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Append(line string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, line); err != nil {
		return fmt.Errorf("appending log line: %w", err)
	}
	return nil
}

// Timestamp renders the shared job log prefix, DD/MM/YYYY-HH:MM:SS.
func Timestamp(t time.Time) string {
	return t.Format("02/01/2006-15:04:05")
}
