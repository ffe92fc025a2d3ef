package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/braunma/rackfloor/internal/constants"
	"github.com/braunma/rackfloor/pkg/models"
	"github.com/braunma/rackfloor/pkg/utils"
)

// FileStore keeps timestamped save files in a directory and prunes old ones
type FileStore struct {
	dir    string
	keep   int
	logger *utils.Logger
	now    func() time.Time
}

// NewFileStore creates a store rooted at dir that retains the keep most recent saves
func NewFileStore(dir string, keep int, logger *utils.Logger) *FileStore {
	if logger == nil {
		logger = utils.Discard()
	}
	if keep < 1 {
		keep = constants.AutosaveSlots
	}
	return &FileStore{dir: dir, keep: keep, logger: logger, now: time.Now}
}

// Dir returns the store directory
func (fs *FileStore) Dir() string {
	return fs.dir
}

// Save writes racks as a new save file and returns its path
func (fs *FileStore) Save(racks []*models.Rack) (string, error) {
	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create save directory %s: %w", fs.dir, err)
	}

	now := fs.now().UTC()
	data, err := Encode(racks, now)
	if err != nil {
		return "", err
	}

	name := constants.SaveFilePrefix + now.Format("20060102T150405.000000000") + constants.SaveFileExt
	path := filepath.Join(fs.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	fs.logger.Debug("Saved %d racks to %s", len(racks), path)

	if err := fs.prune(); err != nil {
		fs.logger.Warning("Failed to prune old saves: %v", err)
	}
	return path, nil
}

// LoadLatest returns the raw rack entries of the newest save file
func (fs *FileStore) LoadLatest() ([]interface{}, error) {
	files, err := fs.List()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSnapshot
	}
	return ReadFile(files[len(files)-1])
}

// List returns the save files oldest first
func (fs *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save directory %s: %w", fs.dir, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, constants.SaveFilePrefix) || filepath.Ext(name) != constants.SaveFileExt {
			continue
		}
		files = append(files, filepath.Join(fs.dir, name))
	}
	// Timestamps in the file name sort lexically
	sort.Strings(files)
	return files, nil
}

func (fs *FileStore) prune() error {
	files, err := fs.List()
	if err != nil {
		return err
	}
	for len(files) > fs.keep {
		if err := os.Remove(files[0]); err != nil {
			return fmt.Errorf("failed to remove %s: %w", files[0], err)
		}
		fs.logger.Debug("Pruned old save %s", files[0])
		files = files[1:]
	}
	return nil
}

// ReadFile reads a single save document and returns its raw rack entries
func ReadFile(path string) ([]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	raw, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return raw, nil
}
