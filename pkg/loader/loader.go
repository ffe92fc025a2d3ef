package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/braunma/rackfloor/pkg/models"
	"github.com/braunma/rackfloor/pkg/utils"
)

// DataLoader handles loading YAML definition files
type DataLoader struct {
	basePath string
	logger   *utils.Logger
}

// NewDataLoader creates a new data loader
func NewDataLoader(basePath string, logger *utils.Logger) *DataLoader {
	if logger == nil {
		logger = utils.Discard()
	}
	return &DataLoader{
		basePath: basePath,
		logger:   logger,
	}
}

// LoadCatalog loads equipment templates from a folder
func (dl *DataLoader) LoadCatalog(folder string) ([]models.EquipmentTemplate, error) {
	var templates []models.EquipmentTemplate
	err := dl.loadFromFolder(folder, &templates)
	if err != nil {
		return nil, err
	}
	dl.logger.Debug("Loaded %d equipment templates from %s", len(templates), folder)
	return templates, nil
}

// LoadRacks loads raw rack entries from a folder. Entries are not decoded so
// they can be sanitized one at a time.
func (dl *DataLoader) LoadRacks(folder string) ([]interface{}, error) {
	var racks []interface{}
	err := dl.loadFromFolder(folder, &racks)
	if err != nil {
		return nil, err
	}
	dl.logger.Debug("Loaded %d rack entries from %s", len(racks), folder)
	return racks, nil
}

// LoadScript loads replay steps from a folder, files in name order
func (dl *DataLoader) LoadScript(folder string) ([]models.ScriptStep, error) {
	var steps []models.ScriptStep
	err := dl.loadFromFolder(folder, &steps)
	if err != nil {
		return nil, err
	}
	dl.logger.Debug("Loaded %d script steps from %s", len(steps), folder)
	return steps, nil
}

// LoadScriptFile loads replay steps from a single file
func (dl *DataLoader) LoadScriptFile(path string) ([]models.ScriptStep, error) {
	var steps []models.ScriptStep
	if err := dl.loadFile(path, &steps); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return steps, nil
}

// loadFromFolder loads YAML files from a folder and unmarshals into the target
func (dl *DataLoader) loadFromFolder(folder string, target interface{}) error {
	targetDir := folder
	if !filepath.IsAbs(folder) {
		targetDir = filepath.Join(dl.basePath, folder)
	}

	// Check if directory exists
	if _, err := os.Stat(targetDir); os.IsNotExist(err) {
		dl.logger.Warning("Folder %s not found, skipping", folder)
		return nil
	}

	// Find all YAML files recursively
	yamlFiles, err := dl.findYAMLFiles(targetDir)
	if err != nil {
		return fmt.Errorf("failed to find YAML files in %s: %w", targetDir, err)
	}

	if len(yamlFiles) == 0 {
		dl.logger.Warning("No YAML files found in %s", folder)
		return nil
	}

	// Load each file
	for _, file := range yamlFiles {
		if err := dl.loadFile(file, target); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	return nil
}

// loadFile loads a single YAML list file and appends its items to target
func (dl *DataLoader) loadFile(path string, target interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Unmarshal YAML - it should be a list
	var items []interface{}
	if err := yaml.Unmarshal(content, &items); err != nil {
		return fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	switch t := target.(type) {
	case *[]interface{}:
		*t = append(*t, items...)
	case *[]models.EquipmentTemplate:
		var newItems []models.EquipmentTemplate
		data, _ := yaml.Marshal(items)
		if err := yaml.Unmarshal(data, &newItems); err != nil {
			return fmt.Errorf("failed to unmarshal equipment templates: %w", err)
		}
		for _, tmpl := range newItems {
			if err := tmpl.Validate(); err != nil {
				dl.logger.Warning("Skipping equipment template in %s: %v", filepath.Base(path), err)
				continue
			}
			*t = append(*t, tmpl)
		}
	case *[]models.ScriptStep:
		var newItems []models.ScriptStep
		data, _ := yaml.Marshal(items)
		if err := yaml.Unmarshal(data, &newItems); err != nil {
			return fmt.Errorf("failed to unmarshal script steps: %w", err)
		}
		*t = append(*t, newItems...)
	default:
		return fmt.Errorf("unsupported target type: %T", target)
	}

	return nil
}

// findYAMLFiles recursively finds all YAML files in a directory
func (dl *DataLoader) findYAMLFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			ext := filepath.Ext(path)
			if ext == ".yaml" || ext == ".yml" {
				files = append(files, path)
			}
		}

		return nil
	})

	sort.Strings(files)
	return files, err
}
