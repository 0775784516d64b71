package repository

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/alexanderramin/focustrack/internal/domain"
)

// FileUserRepo implements UserRepo over a users.txt file holding one
// "username,hashedPassword" line per account.
type FileUserRepo struct {
	path string
	mu   sync.Mutex
}

// NewFileUserRepo creates a FileUserRepo storing dir/users.txt.
func NewFileUserRepo(dir string) *FileUserRepo {
	return &FileUserRepo{path: filepath.Join(dir, "users.txt")}
}

func (r *FileUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := users[u.Username]; ok {
		return fmt.Errorf("user %q: %w", u.Username, ErrAlreadyExists)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("creating users directory: %w", err)
	}
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("opening users file: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%s,%s\n", u.Username, u.PasswordHash); err != nil {
		f.Close()
		return fmt.Errorf("writing user: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing users file: %w", err)
	}
	return nil
}

func (r *FileUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}
	u, ok := users[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return u, nil
}

func (r *FileUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}
	list := make([]*domain.User, 0, len(users))
	for _, u := range users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list, nil
}

// load reads the whole file. A missing file is an empty store. Lines without
// a comma are ignored; a later line for the same username wins.
func (r *FileUserRepo) load() (map[string]*domain.User, error) {
	users := make(map[string]*domain.User)
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return users, nil
		}
		return nil, fmt.Errorf("opening users file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name, hash, ok := strings.Cut(strings.TrimRight(scanner.Text(), "\r"), ",")
		if !ok || name == "" {
			continue
		}
		users[name] = &domain.User{Username: name, PasswordHash: hash}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading users file: %w", err)
	}
	return users, nil
}
