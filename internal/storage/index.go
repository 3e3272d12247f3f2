package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"anglecam/internal/config"
	"github.com/google/uuid"
)

// CatalogEntry describes one captured photo in the media catalog.
type CatalogEntry struct {
	ID         string    `json:"id"`
	File       string    `json:"file"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	HeadingDeg int       `json:"heading_deg"`
	TakenAt    time.Time `json:"taken_at"`
}

// Catalog is the media index other tools read to discover captures.
// It lives next to the photos as a single JSON file; updates rewrite
// the whole file, which at one photo at a time is plenty.
type Catalog struct {
	dir string
}

// NewCatalog creates a catalog rooted at the photo directory.
func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

func (c *Catalog) path() string {
	return filepath.Join(c.dir, config.CatalogFile)
}

// Entries loads the current catalog. A missing file is an empty catalog.
func (c *Catalog) Entries() ([]CatalogEntry, error) {
	data, err := os.ReadFile(c.path())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var entries []CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return entries, nil
}

// Add appends a photo to the catalog and rewrites it. The capture
// pipeline treats failures here as non-fatal; the photo file itself is
// the source of truth.
func (c *Catalog) Add(file string, lat, lon float64, headingDeg int, takenAt time.Time) error {
	entries, err := c.Entries()
	if err != nil {
		// Corrupt catalog: start over rather than lose the new photo.
		entries = nil
	}

	entries = append(entries, CatalogEntry{
		ID:         uuid.New().String(),
		File:       file,
		Latitude:   lat,
		Longitude:  lon,
		HeadingDeg: headingDeg,
		TakenAt:    takenAt,
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if _, err := WritePhoto(c.dir, config.CatalogFile, data); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// Count returns how many photos the catalog lists.
func (c *Catalog) Count() int {
	entries, err := c.Entries()
	if err != nil {
		return 0
	}
	return len(entries)
}
