package models

import "sort"

// ConsolidatedEntry is a resource annotated with its provenance for the
// cross-subscription views. It is derived from an ExportSet, never stored.
type ConsolidatedEntry struct {
	SubscriptionID   string `json:"subscription_id" yaml:"subscription_id"`
	SubscriptionName string `json:"subscription_name" yaml:"subscription_name"`
	ResourceGroup    string `json:"resource_group" yaml:"resource_group"`
	Resource
}

// Consolidated groups every resource in an ExportSet by its type string.
type Consolidated struct {
	// Types holds the resource type strings in lexicographic order.
	Types []string
	// ByType maps each type to its entries, sorted by subscription name,
	// resource group and resource name.
	ByType map[string][]ConsolidatedEntry
}

// Consolidate flattens an ExportSet into the cross-subscription view used by
// the consolidated and summary pages.
func Consolidate(set ExportSet) Consolidated {
	byType := make(map[string][]ConsolidatedEntry)

	for subID, sub := range set {
		for rgName, types := range sub.Resources {
			for resourceType, resources := range types {
				for _, r := range resources {
					byType[resourceType] = append(byType[resourceType], ConsolidatedEntry{
						SubscriptionID:   subID,
						SubscriptionName: sub.Name,
						ResourceGroup:    rgName,
						Resource:         r,
					})
				}
			}
		}
	}

	types := make([]string, 0, len(byType))
	for resourceType, entries := range byType {
		types = append(types, resourceType)
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].SubscriptionName != entries[j].SubscriptionName {
				return entries[i].SubscriptionName < entries[j].SubscriptionName
			}
			if entries[i].ResourceGroup != entries[j].ResourceGroup {
				return entries[i].ResourceGroup < entries[j].ResourceGroup
			}
			return entries[i].Name < entries[j].Name
		})
	}
	sort.Strings(types)

	return Consolidated{Types: types, ByType: byType}
}

// Total returns the number of entries across all types.
func (c Consolidated) Total() int {
	total := 0
	for _, entries := range c.ByType {
		total += len(entries)
	}
	return total
}
