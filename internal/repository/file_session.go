package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/alexanderramin/focustrack/internal/domain"
)

// FileSessionLog implements SessionLog with one newline-delimited text file
// per user, focus_log_<username>.txt, inside dir.
//
// Append and ReadAll for the same user share one mutex so a read never
// observes a half-written line from this process. Other processes are not
// coordinated with.
type FileSessionLog struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFileSessionLog creates a FileSessionLog rooted at dir.
func NewFileSessionLog(dir string) *FileSessionLog {
	return &FileSessionLog{dir: dir, locks: make(map[string]*sync.Mutex)}
}

// Path returns the log file used for id.
func (l *FileSessionLog) Path(id domain.Identity) string {
	return userFile(l.dir, "focus_log_", id, ".txt")
}

func (l *FileSessionLog) Append(ctx context.Context, id domain.Identity, rec domain.SessionRecord) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	if err := ValidateCategory(rec.Category); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	lock := l.userLock(id)
	lock.Lock()
	defer lock.Unlock()

	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(l.Path(id), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening session log: %w", err)
	}
	if _, err := f.WriteString(FormatLogLine(rec) + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("appending session record: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing session log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing session log: %w", err)
	}
	return nil
}

func (l *FileSessionLog) ReadAll(ctx context.Context, id domain.Identity) (*ReadResult, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lock := l.userLock(id)
	lock.Lock()
	defer lock.Unlock()

	f, err := os.Open(l.Path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ReadResult{}, nil
		}
		return nil, fmt.Errorf("opening session log: %w", err)
	}
	defer f.Close()

	return ParseLog(f)
}

func (l *FileSessionLog) userLock(id domain.Identity) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[id.Username]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[id.Username] = lock
	}
	return lock
}
