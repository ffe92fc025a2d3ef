package persistence

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/braunma/rackfloor/pkg/models"
)

// DocumentVersion is written into every save file
const DocumentVersion = 1

// Document is the on-disk save format
type Document struct {
	Version int            `yaml:"version"`
	SavedAt time.Time      `yaml:"saved_at"`
	Racks   []*models.Rack `yaml:"racks"`
}

// Encode renders racks as a save document
func Encode(racks []*models.Rack, savedAt time.Time) ([]byte, error) {
	doc := Document{Version: DocumentVersion, SavedAt: savedAt.UTC(), Racks: racks}
	if doc.Racks == nil {
		doc.Racks = []*models.Rack{}
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal save document: %w", err)
	}
	return data, nil
}

// Decode extracts the raw rack entries from a save document.
// A bare YAML list of racks is accepted as well as the versioned document.
// Entries are left undecoded so Sanitize can reject them one by one.
func Decode(data []byte) ([]interface{}, error) {
	var root interface{}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	switch v := root.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		return v, nil
	case map[string]interface{}:
		racks, ok := v["racks"]
		if !ok || racks == nil {
			return nil, nil
		}
		list, ok := racks.([]interface{})
		if !ok {
			return nil, fmt.Errorf("racks must be a list, got %T", racks)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported save document root %T", root)
	}
}
