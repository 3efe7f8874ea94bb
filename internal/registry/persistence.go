package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/wargadata-dev/warga-store/pkg/schema"
)

// storageKey names the registry file inside the data directory. The
// whole registry lives in this one JSON array.
const storageKey = "dataRegistry"

// Persistence handles the disk I/O for the Registry.
type Persistence struct {
	dataDir string
	logger  *log.Logger
	mu      sync.Mutex // Protects concurrent writes to the filesystem
}

// NewPersistence initializes a persistence handler, creating the data
// directory if needed.
func NewPersistence(dir string, logger *log.Logger) (*Persistence, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Persistence{dataDir: dir, logger: logger}, nil
}

func (p *Persistence) path() string {
	return filepath.Join(p.dataDir, storageKey+".json")
}

// Save writes the full record sequence to disk atomically: marshal,
// write to a temporary file, then rename over the old one. A crash
// leaves either the previous file or the new one, never a torn write.
func (p *Persistence) Save(records []schema.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if records == nil {
		records = []schema.Record{}
	}

	bytes, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	tempPath := p.path() + ".tmp"
	if err := os.WriteFile(tempPath, bytes, 0644); err != nil {
		return err
	}
	return os.Rename(tempPath, p.path())
}

// Load reads the persisted sequence. Absence and corruption both fail
// soft: the registry starts empty instead of blocking startup.
func (p *Persistence) Load() []schema.Record {
	p.mu.Lock()
	defer p.mu.Unlock()

	content, err := os.ReadFile(p.path())
	if err != nil {
		if !os.IsNotExist(err) && p.logger != nil {
			p.logger.Warn("could not read registry file", "path", p.path(), "error", err)
		}
		return nil
	}

	var records []schema.Record
	if err := json.Unmarshal(content, &records); err != nil {
		if p.logger != nil {
			p.logger.Warn("registry file is malformed, starting empty", "path", p.path(), "error", err)
		}
		return nil
	}
	return records
}
