package token

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store backed by a JSON file, used by the CLI so a login
// survives across invocations. Reads of a missing file yield an empty
// pair. Writes go through a temp file and rename so a crash never leaves
// a half-written pair on disk.
type File struct {
	mu   sync.Mutex
	path string
}

type filePair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// NewFile creates a file-backed store at path. The parent directory is
// created on first write, not here.
func NewFile(path string) *File {
	return &File{path: path}
}

// DefaultPath returns the default CLI token file location
// ($HOME/.marketctl/tokens.json).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".marketctl", "tokens.json"), nil
}

// Access implements Store.
func (f *File) Access() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readLocked().AccessToken
}

// Refresh implements Store.
func (f *File) Refresh() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readLocked().RefreshToken
}

// SetPair implements Store.
func (f *File) SetPair(access, refresh string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeLocked(filePair{AccessToken: access, RefreshToken: refresh})
}

// ClearAccess implements Store.
func (f *File) ClearAccess() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.readLocked()
	p.AccessToken = ""
	return f.writeLocked(p)
}

// ClearPair implements Store.
func (f *File) ClearPair() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

func (f *File) readLocked() filePair {
	var p filePair
	data, err := os.ReadFile(f.path)
	if err != nil {
		return p
	}
	// A corrupt file reads as an empty pair; the next login rewrites it.
	_ = json.Unmarshal(data, &p)
	return p
}

func (f *File) writeLocked(p filePair) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding tokens: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing token file: %w", err)
	}
	return nil
}
