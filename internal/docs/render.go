package docs

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/thand-io/azure-export/internal/models"
)

// typeName returns the short name of a hierarchical resource type string,
// e.g. "Microsoft.Network/virtualNetworks" -> "virtualNetworks".
func typeName(resourceType string) string {
	parts := strings.Split(resourceType, "/")
	return parts[len(parts)-1]
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func renderSubscriptionOverview(subID string, sub models.SubscriptionExport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Subscription Overview: %s\n\n", sub.Name)
	fmt.Fprintf(&b, "Subscription ID: `%s`\n\n", subID)
	b.WriteString("## Resource Groups\n\n")

	for _, rgName := range sortedKeys(sub.Resources) {
		fmt.Fprintf(&b, "- [%s](%s/overview.md)\n", rgName, rgName)
	}
	return b.String()
}

func renderResourceGroupOverview(subID, subName, rgName string, types map[string][]models.Resource) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Resource Group: %s\n\n", rgName)
	fmt.Fprintf(&b, "Subscription: %s (`%s`)\n\n", subName, subID)
	b.WriteString("## Resource Types\n\n")

	for _, resourceType := range sortedKeys(types) {
		short := typeName(resourceType)
		fmt.Fprintf(&b, "- [%s](%s.md) (%d resources)\n", short, short, len(types[resourceType]))
	}
	return b.String()
}

func renderTypePage(resourceType string, resources []models.Resource) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", titleCase(typeName(resourceType)))
	fmt.Fprintf(&b, "Resource Type: `%s`\n\n", resourceType)
	fmt.Fprintf(&b, "## Resources (%d)\n\n", len(resources))

	for _, resource := range resources {
		fmt.Fprintf(&b, "### %s\n\n", resource.Name)
		fmt.Fprintf(&b, "- Location: %s\n", resource.Location)
		writeTags(&b, resource.Tags)
		writePropertiesSection(&b, resource.Properties)
		b.WriteString("\n")
	}
	return b.String()
}

func renderIndex(set models.ExportSet, generated string) string {
	var b strings.Builder
	b.WriteString("# Azure Resources Documentation\n\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", generated)
	b.WriteString("## Subscriptions\n\n")

	for _, subID := range sortedKeys(set) {
		fmt.Fprintf(&b, "- [%s](%s/overview.md) (`%s`)\n", set[subID].Name, subID, subID)
	}
	return b.String()
}

func renderConsolidated(consolidated models.Consolidated, generated string) string {
	var b strings.Builder
	b.WriteString("# Consolidated Azure Resources by Type\n\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", generated)

	for _, resourceType := range consolidated.Types {
		entries := consolidated.ByType[resourceType]
		fmt.Fprintf(&b, "## %s (`%s`)\n\n", typeName(resourceType), resourceType)
		fmt.Fprintf(&b, "Total Resources: %d\n\n", len(entries))

		for _, entry := range entries {
			fmt.Fprintf(&b, "### %s\n\n", entry.Name)
			fmt.Fprintf(&b, "- Subscription: %s (`%s`)\n", entry.SubscriptionName, entry.SubscriptionID)
			fmt.Fprintf(&b, "- Resource Group: %s\n", entry.ResourceGroup)
			fmt.Fprintf(&b, "- Location: %s\n", entry.Location)
			writeTags(&b, entry.Tags)
			writePropertiesSection(&b, entry.Properties)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderSummary(consolidated models.Consolidated, generated string) string {
	var b strings.Builder
	b.WriteString("# Azure Resource Type Summary\n\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", generated)
	b.WriteString("| Resource Type | Count |\n")
	b.WriteString("|--------------|-------|\n")

	for _, resourceType := range consolidated.Types {
		fmt.Fprintf(&b, "| `%s` | %d |\n", resourceType, len(consolidated.ByType[resourceType]))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "**Total Resources: %d**\n", consolidated.Total())
	return b.String()
}

func writeTags(b *strings.Builder, tags map[string]string) {
	if len(tags) == 0 {
		return
	}
	b.WriteString("- Tags:\n")
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "  - %s: %s\n", k, tags[k])
	}
}

func writePropertiesSection(b *strings.Builder, properties map[string]any) {
	if len(properties) == 0 {
		return
	}
	b.WriteString("\n#### Properties\n\n")
	writeProperties(b, properties, 0)
}

// writeProperties renders a properties map as nested markdown bullets: maps
// recurse one level deeper, lists of maps become repeated nested blocks and
// scalars render inline.
func writeProperties(b *strings.Builder, properties map[string]any, indent int) {
	pad := strings.Repeat("  ", indent)

	keys := make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch value := properties[key].(type) {
		case map[string]any:
			fmt.Fprintf(b, "%s- %s:\n", pad, key)
			writeProperties(b, value, indent+1)
		case []any:
			fmt.Fprintf(b, "%s- %s:\n", pad, key)
			for _, item := range value {
				if nested, ok := item.(map[string]any); ok {
					fmt.Fprintf(b, "%s  -\n", pad)
					writeProperties(b, nested, indent+2)
				} else {
					fmt.Fprintf(b, "%s  - %s\n", pad, formatScalar(item))
				}
			}
		default:
			fmt.Fprintf(b, "%s- %s: %s\n", pad, key, formatScalar(value))
		}
	}
}

func formatScalar(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%v", v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
