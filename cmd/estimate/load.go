package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lemonberrylabs/estimate/pkg/ast"
	"github.com/lemonberrylabs/estimate/pkg/parser"
)

// loadModels parses every named model file. Directories contribute their
// .yaml and .yml files in name order; unreadable or invalid files inside a
// directory are skipped with a warning, while named files must parse.
func loadModels(paths []string) ([]*ast.Model, error) {
	var models []*ast.Model
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			loaded, err := loadDir(path)
			if err != nil {
				return nil, err
			}
			models = append(models, loaded...)
			continue
		}
		m, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("no models found in %s", strings.Join(paths, ", "))
	}
	return models, nil
}

func loadDir(dir string) ([]*ast.Model, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading models directory: %w", err)
	}

	var models []*ast.Model
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		m, err := loadFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("Warning: skipping %q: %v", name, err)
			continue
		}
		models = append(models, m)
	}

	log.Printf("Loaded %d model(s) from %s", len(models), dir)
	return models, nil
}

// loadFile parses one model. A model without a name takes the file's base
// name.
func loadFile(path string) (*ast.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		base := filepath.Base(path)
		m.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return m, nil
}
