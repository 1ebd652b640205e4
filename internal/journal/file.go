package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"shoprelay/internal/models"
)

type Store interface {
	Append(models.OrderTrack) error
	Replay(func(models.OrderTrack) bool) error
}

// FileStore journals order tracking state as JSONL, one record per update.
// Replay yields records in write order; the last record per order wins.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0o644)
	if err == nil {
		_ = f.Close()
	}
	return &FileStore{path: path}, err
}

func (s *FileStore) Append(t models.OrderTrack) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, _ := json.Marshal(t)
	_, err = f.Write(append(b, '\n'))
	return err
}

func (s *FileStore) Replay(yield func(models.OrderTrack) bool) error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var t models.OrderTrack
		if err := json.Unmarshal(sc.Bytes(), &t); err != nil {
			continue
		}
		if cont := yield(t); !cont {
			break
		}
	}
	return sc.Err()
}
