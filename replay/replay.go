// Package replay feeds saved battle logs through the event pipeline, either
// as a one-shot parse or by following a file that is still being written.
package replay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"

	"battlelens/session"
)

// ParseFile runs a complete saved battle log through a session, line by line.
func ParseFile(path string, s *session.Session) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open replay file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		s.ProcessBatch(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read replay file: %w", err)
	}
	return nil
}

// Follower tails a growing battle log file, processing new lines as the
// engine appends them.
type Follower struct {
	path string
	log  *slog.Logger
	// partial buffers an incomplete trailing line until its newline arrives.
	partial string
}

func NewFollower(path string, log *slog.Logger) *Follower {
	if log == nil {
		log = slog.Default()
	}
	return &Follower{path: path, log: log}
}

// Follow processes existing content, then watches the file and feeds every
// appended line through the session until the context is cancelled.
func (f *Follower) Follow(ctx context.Context, s *session.Session) error {
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	if err := f.drain(reader, s); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(f.path); err != nil {
		return fmt.Errorf("watch log file: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) {
				if err := f.drain(reader, s); err != nil {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.log.Warn("watch error", "err", err)
		}
	}
}

// drain processes every complete line currently available.
func (f *Follower) drain(reader *bufio.Reader, s *session.Session) error {
	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			f.partial += line
			return nil
		}
		if err != nil {
			return fmt.Errorf("read log file: %w", err)
		}
		s.ProcessBatch(f.partial + line)
		f.partial = ""
	}
}
