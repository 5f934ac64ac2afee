package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/aeroclub-poitou/preflight/pkg/checklist"
	"github.com/aeroclub-poitou/preflight/pkg/seed"
)

// StartupView selects which view opens on launch.
type StartupView string

const (
	StartupSummary    StartupView = "summary"
	StartupLastViewed StartupView = "last_viewed"
)

// ParseStartupView normalizes a raw value, falling back to summary.
func ParseStartupView(raw string) StartupView {
	if StartupView(raw) == StartupLastViewed {
		return StartupLastViewed
	}
	return StartupSummary
}

// Backup is a named, timestamped deep copy of the full state.
type Backup struct {
	ID      string               `json:"id"`
	Name    string               `json:"name"`
	Created time.Time            `json:"created"`
	State   checklist.Collection `json:"state"`
	Startup StartupView          `json:"startupView,omitempty"`
}

// Persistence is the storage contract for application state. Loads never
// fail: absent or unreadable records degrade to built-in seed data.
type Persistence interface {
	LoadCollection() checklist.Collection
	SaveCollection(c checklist.Collection) error
	ActiveView() string
	SetActiveView(id string) error
	StartupView() StartupView
	SetStartupView(v StartupView) error
	Backups(ctx context.Context) []Backup
	SaveBackup(b Backup) error
	DeleteBackup(id string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Record keys. The prefix before the first dash becomes the directory
// bucket on disk.
const (
	keyCollection   = "state-collection"
	keyActiveView   = "view-active"
	keyStartupView  = "view-startup"
	backupKeyPrefix = "backup-"
)

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) LoadCollection() checklist.Collection {
	data, err := p.d.Read(keyCollection)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "store: read %s: %v, using seed data\n", keyCollection, err)
		}
		return seed.Collection()
	}
	var c checklist.Collection
	if err := json.Unmarshal(data, &c); err != nil || c.Checklists == nil {
		fmt.Fprintf(os.Stderr, "store: record %s unreadable, using seed data\n", keyCollection)
		return seed.Collection()
	}
	return c
}

func (p *persistence) SaveCollection(c checklist.Collection) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("store: encode collection: %w", err)
	}
	return p.d.Write(keyCollection, data)
}

func (p *persistence) ActiveView() string {
	data, err := p.d.Read(keyActiveView)
	if err != nil || len(data) == 0 {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (p *persistence) SetActiveView(id string) error {
	return p.d.Write(keyActiveView, []byte(id))
}

func (p *persistence) StartupView() StartupView {
	data, err := p.d.Read(keyStartupView)
	if err != nil {
		return StartupSummary
	}
	return ParseStartupView(strings.TrimSpace(string(data)))
}

func (p *persistence) SetStartupView(v StartupView) error {
	return p.d.Write(keyStartupView, []byte(v))
}

func (p *persistence) Backups(ctx context.Context) []Backup {
	backups := make([]Backup, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, backupKeyPrefix) {
			continue
		}
		data, err := p.d.Read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: read %s: %v\n", key, err)
			continue
		}
		var b Backup
		if err := json.Unmarshal(data, &b); err != nil {
			fmt.Fprintf(os.Stderr, "store: backup %s unreadable, skipping\n", key)
			continue
		}
		if b.ID == "" {
			b.ID = strings.TrimPrefix(key, backupKeyPrefix)
		}
		backups = append(backups, b)
	}
	sort.Slice(backups, func(i, j int) bool {
		if backups[i].Created.Equal(backups[j].Created) {
			return backups[i].Name < backups[j].Name
		}
		return backups[i].Created.After(backups[j].Created)
	})
	return backups
}

func (p *persistence) SaveBackup(b Backup) error {
	if b.ID == "" {
		return errors.New("store: backup id required")
	}
	if strings.TrimSpace(b.Name) == "" {
		return errors.New("store: backup name required")
	}
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("store: encode backup: %w", err)
	}
	return p.d.Write(backupKeyPrefix+b.ID, data)
}

func (p *persistence) DeleteBackup(id string) error {
	return p.d.Erase(backupKeyPrefix + id)
}

// keyToPathTransform buckets records by the segment before the first
// dash, so backup ids containing dashes stay intact as file names.
func keyToPathTransform(key string) *diskv.PathKey {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) == 1 {
		return &diskv.PathKey{Path: []string{}, FileName: parts[0]}
	}
	return &diskv.PathKey{Path: []string{parts[0]}, FileName: parts[1]}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
