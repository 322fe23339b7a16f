package cart

import (
	"os"
	"path/filepath"
)

// Storage is a single named slot holding the serialized cart, the moral
// equivalent of the one localStorage key every view in a browsing session
// shares.
type Storage interface {
	// Load returns the slot contents. ok is false when the slot has never
	// been written.
	Load() (data []byte, ok bool, err error)
	Save(data []byte) error
}

// FileSlot persists the slot as one JSON file under a state directory, so a
// restarted session picks the cart back up.
type FileSlot struct {
	path string
}

func NewFileSlot(dir, name string) *FileSlot {
	return &FileSlot{path: filepath.Join(dir, name+".json")}
}

func (s *FileSlot) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *FileSlot) Save(data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// MemorySlot keeps the slot in memory only. Used in tests and by callers
// that do not need reload continuity.
type MemorySlot struct {
	data    []byte
	written bool
}

func (s *MemorySlot) Load() ([]byte, bool, error) {
	return s.data, s.written, nil
}

func (s *MemorySlot) Save(data []byte) error {
	s.data = append([]byte(nil), data...)
	s.written = true
	return nil
}
