package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thand-io/azure-export/internal/config"
	"github.com/thand-io/azure-export/internal/models"
)

var testTime = time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

func testSet() models.ExportSet {
	return models.ExportSet{
		"sub-1": {
			Name: "Production",
			Resources: models.SubscriptionResources{
				"rg-a": {
					"Microsoft.Network/virtualNetworks": {
						{
							ID:       "/subscriptions/sub-1/resourceGroups/rg-a/providers/Microsoft.Network/virtualNetworks/vnet-1",
							Name:     "vnet-1",
							Location: "westeurope",
							Type:     "Microsoft.Network/virtualNetworks",
							Tags:     map[string]string{"env": "prod"},
							Properties: map[string]any{
								"address_space": []any{"10.0.0.0/16"},
								"subnets": []any{
									map[string]any{
										"name":           "default",
										"address_prefix": "10.0.1.0/24",
									},
								},
							},
						},
					},
					"Microsoft.Storage/storageAccounts": {
						{
							ID:         "/subscriptions/sub-1/resourceGroups/rg-a/providers/Microsoft.Storage/storageAccounts/sta",
							Name:       "sta",
							Location:   "westeurope",
							Type:       "Microsoft.Storage/storageAccounts",
							Properties: map[string]any{"sku": "Standard_LRS"},
						},
					},
				},
			},
		},
		"sub-2": {
			Name: "Staging",
			Resources: models.SubscriptionResources{
				"rg-b": {
					"Microsoft.Storage/storageAccounts": {
						{
							ID:         "/subscriptions/sub-2/resourceGroups/rg-b/providers/Microsoft.Storage/storageAccounts/stb",
							Name:       "stb",
							Location:   "northeurope",
							Type:       "Microsoft.Storage/storageAccounts",
							Properties: map[string]any{},
						},
					},
				},
			},
		},
	}
}

func newTestGenerator(t *testing.T, format string) (*Generator, string) {
	t.Helper()

	dir := t.TempDir()
	g, err := New(dir, format)
	require.NoError(t, err)
	g.now = func() time.Time { return testTime }
	return g, dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, "expected %s to exist", path)
	return string(data)
}

func TestGenerateWritesPageTree(t *testing.T) {
	g, dir := newTestGenerator(t, config.FormatMarkdown)
	require.NoError(t, g.Generate(testSet()))

	index := readFile(t, filepath.Join(dir, "docs", "index.md"))
	assert.Contains(t, index, "# Azure Resources Documentation")
	assert.Contains(t, index, "Generated on: 2025-06-01 10:30:00")
	assert.Contains(t, index, "- [Production](sub-1/overview.md) (`sub-1`)")
	assert.Contains(t, index, "- [Staging](sub-2/overview.md) (`sub-2`)")

	overview := readFile(t, filepath.Join(dir, "docs", "sub-1", "overview.md"))
	assert.Contains(t, overview, "# Subscription Overview: Production")
	assert.Contains(t, overview, "Subscription ID: `sub-1`")
	assert.Contains(t, overview, "- [rg-a](rg-a/overview.md)")

	rgOverview := readFile(t, filepath.Join(dir, "docs", "sub-1", "rg-a", "overview.md"))
	assert.Contains(t, rgOverview, "# Resource Group: rg-a")
	assert.Contains(t, rgOverview, "- [virtualNetworks](virtualNetworks.md) (1 resources)")
	assert.Contains(t, rgOverview, "- [storageAccounts](storageAccounts.md) (1 resources)")
}

func TestGenerateVirtualNetworkTypePage(t *testing.T) {
	g, dir := newTestGenerator(t, config.FormatMarkdown)
	require.NoError(t, g.Generate(testSet()))

	page := readFile(t, filepath.Join(dir, "docs", "sub-1", "rg-a", "virtualNetworks.md"))
	assert.Contains(t, page, "Resource Type: `Microsoft.Network/virtualNetworks`")
	assert.Contains(t, page, "### vnet-1")
	assert.Contains(t, page, "- Location: westeurope")
	assert.Contains(t, page, "  - env: prod")
	assert.Contains(t, page, "#### Properties")
	assert.Contains(t, page, "- address_space:\n  - 10.0.0.0/16")
	assert.Contains(t, page, "- subnets:")
	assert.Contains(t, page, "address_prefix: 10.0.1.0/24")
	assert.Contains(t, page, "name: default")
}

func TestGenerateConsolidatedView(t *testing.T) {
	g, dir := newTestGenerator(t, config.FormatMarkdown)
	require.NoError(t, g.Generate(testSet()))

	page := readFile(t, filepath.Join(dir, "consolidated", "resources_by_type.md"))

	// Types appear in lexicographic order
	network := strings.Index(page, "## virtualNetworks (`Microsoft.Network/virtualNetworks`)")
	storage := strings.Index(page, "## storageAccounts (`Microsoft.Storage/storageAccounts`)")
	require.GreaterOrEqual(t, network, 0)
	require.GreaterOrEqual(t, storage, 0)
	assert.Less(t, network, storage)

	// Storage accounts sorted by subscription name: Production before Staging
	production := strings.Index(page, "- Subscription: Production (`sub-1`)")
	staging := strings.Index(page, "- Subscription: Staging (`sub-2`)")
	require.GreaterOrEqual(t, production, 0)
	require.GreaterOrEqual(t, staging, 0)
	assert.Less(t, production, staging)

	assert.Contains(t, page, "- Resource Group: rg-a")
}

func TestGenerateSummaryCountsAddUp(t *testing.T) {
	g, dir := newTestGenerator(t, config.FormatMarkdown)
	require.NoError(t, g.Generate(testSet()))

	page := readFile(t, filepath.Join(dir, "consolidated", "resource_type_summary.md"))
	assert.Contains(t, page, "| Resource Type | Count |")
	assert.Contains(t, page, "| `Microsoft.Network/virtualNetworks` | 1 |")
	assert.Contains(t, page, "| `Microsoft.Storage/storageAccounts` | 2 |")
	assert.Contains(t, page, "**Total Resources: 3**")

	// Lexicographic row order
	network := strings.Index(page, "`Microsoft.Network/virtualNetworks`")
	storage := strings.Index(page, "`Microsoft.Storage/storageAccounts`")
	assert.Less(t, network, storage)
}

func TestSnapshotRoundTripYAML(t *testing.T) {
	g, dir := newTestGenerator(t, config.FormatMarkdown)
	set := testSet()
	require.NoError(t, g.Generate(set))

	path := filepath.Join(dir, "data", "azure_resources_2025-06-01-10-30-00.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded models.ExportSet
	require.NoError(t, yaml.Unmarshal(data, &decoded))

	require.Len(t, decoded, len(set))
	assert.Equal(t, "Production", decoded["sub-1"].Name)
	assert.Equal(t, set["sub-1"].Resources["rg-a"]["Microsoft.Network/virtualNetworks"][0].Name,
		decoded["sub-1"].Resources["rg-a"]["Microsoft.Network/virtualNetworks"][0].Name)
	assert.Len(t, decoded["sub-2"].Resources["rg-b"]["Microsoft.Storage/storageAccounts"], 1)
}

func TestSnapshotRoundTripJSON(t *testing.T) {
	g, dir := newTestGenerator(t, config.FormatJSON)
	set := testSet()
	require.NoError(t, g.Generate(set))

	path := filepath.Join(dir, "data", "azure_resources_2025-06-01-10-30-00.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded models.ExportSet
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded, len(set))
	vnet := decoded["sub-1"].Resources["rg-a"]["Microsoft.Network/virtualNetworks"][0]
	assert.Equal(t, "vnet-1", vnet.Name)
	assert.Equal(t, []any{"10.0.0.0/16"}, vnet.Properties["address_space"])
}

func TestGenerateEmptySetStillWritesIndex(t *testing.T) {
	g, dir := newTestGenerator(t, config.FormatMarkdown)
	require.NoError(t, g.Generate(models.ExportSet{}))

	index := readFile(t, filepath.Join(dir, "docs", "index.md"))
	assert.Contains(t, index, "## Subscriptions")

	summary := readFile(t, filepath.Join(dir, "consolidated", "resource_type_summary.md"))
	assert.Contains(t, summary, "**Total Resources: 0**")
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "virtualNetworks", typeName("Microsoft.Network/virtualNetworks"))
	assert.Equal(t, "servers", typeName("Microsoft.Sql/servers"))
	assert.Equal(t, "plain", typeName("plain"))
}
