package models

import "strings"

// Tenant is an Azure AD tenant reachable with the current credential.
type Tenant struct {
	ID          string `json:"id" yaml:"id"`
	DisplayName string `json:"display_name" yaml:"display_name"`
}

// Subscription is an Azure subscription within the active tenant.
type Subscription struct {
	ID          string `json:"id" yaml:"id"`
	DisplayName string `json:"display_name" yaml:"display_name"`
}

// Resource is a single exported Azure resource. Properties carries the extra
// detail-fetch fields for recognized resource types and stays empty for
// everything else.
type Resource struct {
	ID         string            `json:"id" yaml:"id"`
	Name       string            `json:"name" yaml:"name"`
	Location   string            `json:"location" yaml:"location"`
	Type       string            `json:"type" yaml:"type"`
	Tags       map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Properties map[string]any    `json:"properties" yaml:"properties"`
}

// SubscriptionResources maps resource group name to the group's resources
// keyed by their exact type string.
type SubscriptionResources map[string]map[string][]Resource

// SubscriptionExport is the full export of one subscription.
type SubscriptionExport struct {
	Name      string                `json:"name" yaml:"name"`
	Resources SubscriptionResources `json:"resources" yaml:"resources"`
}

// ExportSet maps subscription ID to its export. Each run starts from an empty
// set and hands the populated set to the documentation generator once.
type ExportSet map[string]SubscriptionExport

// ResourceGroupFromID extracts the resource group segment from a fully
// qualified resource ID of the form
// /subscriptions/<sub>/resourceGroups/<rg>/providers/...
func ResourceGroupFromID(id string) string {
	parts := strings.Split(id, "/")
	if len(parts) > 4 {
		return parts[4]
	}
	return ""
}
