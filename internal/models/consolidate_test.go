package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExportSet() ExportSet {
	return ExportSet{
		"sub-2": {
			Name: "Staging",
			Resources: SubscriptionResources{
				"rg-b": {
					"Microsoft.Storage/storageAccounts": {
						{ID: "/subscriptions/sub-2/resourceGroups/rg-b/providers/Microsoft.Storage/storageAccounts/stb", Name: "stb", Type: "Microsoft.Storage/storageAccounts"},
					},
				},
			},
		},
		"sub-1": {
			Name: "Production",
			Resources: SubscriptionResources{
				"rg-a": {
					"Microsoft.Network/virtualNetworks": {
						{ID: "/subscriptions/sub-1/resourceGroups/rg-a/providers/Microsoft.Network/virtualNetworks/vnet-1", Name: "vnet-1", Type: "Microsoft.Network/virtualNetworks"},
						{ID: "/subscriptions/sub-1/resourceGroups/rg-a/providers/Microsoft.Network/virtualNetworks/vnet-0", Name: "vnet-0", Type: "Microsoft.Network/virtualNetworks"},
					},
					"Microsoft.Storage/storageAccounts": {
						{ID: "/subscriptions/sub-1/resourceGroups/rg-a/providers/Microsoft.Storage/storageAccounts/sta", Name: "sta", Type: "Microsoft.Storage/storageAccounts"},
					},
				},
			},
		},
	}
}

func TestConsolidateGroupsAndSorts(t *testing.T) {
	consolidated := Consolidate(testExportSet())

	// Types come back in lexicographic order
	assert.Equal(t, []string{
		"Microsoft.Network/virtualNetworks",
		"Microsoft.Storage/storageAccounts",
	}, consolidated.Types)

	vnets := consolidated.ByType["Microsoft.Network/virtualNetworks"]
	require.Len(t, vnets, 2)
	assert.Equal(t, "vnet-0", vnets[0].Name, "entries should be sorted by resource name within a group")
	assert.Equal(t, "vnet-1", vnets[1].Name)
	assert.Equal(t, "Production", vnets[0].SubscriptionName)
	assert.Equal(t, "rg-a", vnets[0].ResourceGroup)

	accounts := consolidated.ByType["Microsoft.Storage/storageAccounts"]
	require.Len(t, accounts, 2)
	assert.Equal(t, "Production", accounts[0].SubscriptionName, "entries should be sorted by subscription name first")
	assert.Equal(t, "Staging", accounts[1].SubscriptionName)
}

func TestConsolidateTotalMatchesExportCounts(t *testing.T) {
	set := testExportSet()
	consolidated := Consolidate(set)

	want := 0
	for _, sub := range set {
		for _, types := range sub.Resources {
			for _, resources := range types {
				want += len(resources)
			}
		}
	}

	assert.Equal(t, want, consolidated.Total())
}

func TestConsolidateEmptySet(t *testing.T) {
	consolidated := Consolidate(ExportSet{})

	assert.Empty(t, consolidated.Types)
	assert.Zero(t, consolidated.Total())
}

func TestResourceGroupFromID(t *testing.T) {
	id := "/subscriptions/sub-1/resourceGroups/rg-a/providers/Microsoft.Network/virtualNetworks/vnet-1"
	assert.Equal(t, "rg-a", ResourceGroupFromID(id))
	assert.Equal(t, "", ResourceGroupFromID("not-a-resource-id"))
}
