// Package docs renders an export set as a raw data snapshot plus a
// hierarchical markdown documentation tree.
package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thand-io/azure-export/internal/common"
	"github.com/thand-io/azure-export/internal/config"
	"github.com/thand-io/azure-export/internal/models"
)

const (
	snapshotPrefix    = "azure_resources_"
	snapshotTimestamp = "2006-01-02-15-04-05"
	generatedAt       = "2006-01-02 15:04:05"
)

// Generator writes documentation for one export run. Every run produces a
// fresh timestamped snapshot and overwrites the page tree; prior snapshots
// are never touched.
type Generator struct {
	format string

	dataDir         string
	docsDir         string
	consolidatedDir string

	now func() time.Time
}

// New prepares the output directory layout. format follows the --format flag
// and only affects the raw snapshot; pages are always markdown.
func New(outputDir, format string) (*Generator, error) {
	g := &Generator{
		format:          format,
		dataDir:         filepath.Join(outputDir, "data"),
		docsDir:         filepath.Join(outputDir, "docs"),
		consolidatedDir: filepath.Join(outputDir, "consolidated"),
		now:             time.Now,
	}

	for _, dir := range []string{g.dataDir, g.docsDir, g.consolidatedDir} {
		if err := common.EnsureDir(dir); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Generate writes the snapshot, the per-subscription page tree, the index and
// the consolidated views. Filesystem failures propagate to the caller; there
// is no partial-write recovery.
func (g *Generator) Generate(set models.ExportSet) error {
	if err := g.writeSnapshot(set); err != nil {
		return err
	}

	for _, subID := range sortedKeys(set) {
		if err := g.writeSubscription(subID, set[subID]); err != nil {
			return err
		}
	}

	if err := g.writeIndex(set); err != nil {
		return err
	}

	consolidated := models.Consolidate(set)
	if err := g.writeConsolidated(consolidated); err != nil {
		return err
	}
	return g.writeSummary(consolidated)
}

// writeSnapshot persists the full export set, timestamped so consecutive runs
// never collide.
func (g *Generator) writeSnapshot(set models.ExportSet) error {
	name := snapshotPrefix + g.now().Format(snapshotTimestamp)

	var data []byte
	var err error
	if g.format == config.FormatJSON {
		name += ".json"
		data, err = json.MarshalIndent(set, "", "  ")
	} else {
		name += ".yaml"
		data, err = yaml.Marshal(set)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize export set: %w", err)
	}

	return g.writeFile(filepath.Join(g.dataDir, name), data)
}

func (g *Generator) writeSubscription(subID string, sub models.SubscriptionExport) error {
	subDir := filepath.Join(g.docsDir, subID)
	if err := common.EnsureDir(subDir); err != nil {
		return err
	}

	page := renderSubscriptionOverview(subID, sub)
	if err := g.writeFile(filepath.Join(subDir, "overview.md"), []byte(page)); err != nil {
		return err
	}

	for _, rgName := range sortedKeys(sub.Resources) {
		if err := g.writeResourceGroup(subDir, subID, sub.Name, rgName, sub.Resources[rgName]); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeResourceGroup(subDir, subID, subName, rgName string, types map[string][]models.Resource) error {
	rgDir := filepath.Join(subDir, rgName)
	if err := common.EnsureDir(rgDir); err != nil {
		return err
	}

	page := renderResourceGroupOverview(subID, subName, rgName, types)
	if err := g.writeFile(filepath.Join(rgDir, "overview.md"), []byte(page)); err != nil {
		return err
	}

	for _, resourceType := range sortedKeys(types) {
		page := renderTypePage(resourceType, types[resourceType])
		file := filepath.Join(rgDir, typeName(resourceType)+".md")
		if err := g.writeFile(file, []byte(page)); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeIndex(set models.ExportSet) error {
	page := renderIndex(set, g.now().Format(generatedAt))
	return g.writeFile(filepath.Join(g.docsDir, "index.md"), []byte(page))
}

func (g *Generator) writeConsolidated(consolidated models.Consolidated) error {
	page := renderConsolidated(consolidated, g.now().Format(generatedAt))
	return g.writeFile(filepath.Join(g.consolidatedDir, "resources_by_type.md"), []byte(page))
}

func (g *Generator) writeSummary(consolidated models.Consolidated) error {
	page := renderSummary(consolidated, g.now().Format(generatedAt))
	return g.writeFile(filepath.Join(g.consolidatedDir, "resource_type_summary.md"), []byte(page))
}

func (g *Generator) writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
