package applications

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const (
	defaultLockTimeout = 10 * time.Second
	lockRetryDelay     = 25 * time.Millisecond
)

// FileRepo keeps every record in a single pretty-printed JSON array.
//
// Appends are serialized by a mutex inside the process and an advisory
// lock on <Path>.lock across processes; the new array is written to
// <Path>.tmp and renamed over Path.
type FileRepo struct {
	Path        string
	LockTimeout time.Duration

	mu   sync.Mutex
	lock *flock.Flock
}

// NewFileRepo constructs a FileRepo for path.
func NewFileRepo(path string) *FileRepo {
	return &FileRepo{
		Path:        path,
		LockTimeout: defaultLockTimeout,
		lock:        flock.New(path + ".lock"),
	}
}

// Append adds rec to the end of the stored array.
func (r *FileRepo) Append(ctx context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.Path), 0o755); err != nil {
		return &StoreError{Op: "mkdir", Path: r.Path, Err: err}
	}

	unlock, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	records, err := r.Load(ctx)
	if err != nil {
		return err
	}
	records = append(records, rec)
	return r.write(records)
}

// Load returns the stored records. A missing or empty file is an empty list.
func (r *FileRepo) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Record{}, nil
		}
		return nil, &StoreError{Op: "read", Path: r.Path, Err: err}
	}
	if len(data) == 0 {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &StoreError{Op: "parse", Path: r.Path, Err: err}
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (r *FileRepo) acquire(ctx context.Context) (func(), error) {
	if r.lock == nil {
		r.lock = flock.New(r.Path + ".lock")
	}
	timeout := r.LockTimeout
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	locked, err := r.lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return nil, &StoreError{Op: "lock", Path: r.Path, Err: err}
	}
	if !locked {
		return nil, &StoreError{Op: "lock", Path: r.Path, Err: errors.New("lock not acquired")}
	}
	return func() { _ = r.lock.Unlock() }, nil
}

func (r *FileRepo) write(records []Record) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return &StoreError{Op: "encode", Path: r.Path, Err: err}
	}

	tmp := r.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return &StoreError{Op: "write", Path: r.Path, Err: err}
	}
	if err := os.Rename(tmp, r.Path); err != nil {
		_ = os.Remove(tmp)
		return &StoreError{Op: "rename", Path: r.Path, Err: err}
	}
	return nil
}

var _ Repo = (*FileRepo)(nil)
