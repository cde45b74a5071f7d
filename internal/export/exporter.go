// Package export walks a subscription's resource groups and resources and
// shapes them into the export tree consumed by the documentation generator.
package export

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/thand-io/azure-export/internal/azure"
	"github.com/thand-io/azure-export/internal/models"
)

// ResourceAPI is the slice of the Azure client the exporter depends on.
type ResourceAPI interface {
	ListResourceGroups(ctx context.Context, subscriptionID string) ([]string, error)
	ListResources(ctx context.Context, subscriptionID, resourceGroup string) ([]models.Resource, error)
}

// DetailFunc fetches the extra descriptive properties for one recognized
// resource.
type DetailFunc func(ctx context.Context, subscriptionID, resourceGroup, name string) (map[string]any, error)

// Exporter exports the resources of one subscription at a time. Recognized
// resource types get an extra detail fetch through the registry; everything
// else keeps its base fields and an empty properties map.
type Exporter struct {
	api     ResourceAPI
	details map[string]DetailFunc

	// OnResourceGroup, when set, is invoked once per resource group as it
	// is processed. Purely a progress signal.
	OnResourceGroup func(name string, index, total int)
}

// New returns an exporter wired to the full Azure client, with the five
// recognized resource types registered.
func New(client *azure.Client) *Exporter {
	e := NewWithAPI(client)
	e.Register("Microsoft.Network/virtualNetworks", client.VirtualNetworkDetails)
	e.Register("Microsoft.Network/networkInterfaces", client.NetworkInterfaceDetails)
	e.Register("Microsoft.Compute/virtualMachines", client.VirtualMachineDetails)
	e.Register("Microsoft.Storage/storageAccounts", client.StorageAccountDetails)
	e.Register("Microsoft.Sql/servers", client.SQLServerDetails)
	return e
}

// NewWithAPI returns an exporter with an empty detail registry.
func NewWithAPI(api ResourceAPI) *Exporter {
	return &Exporter{
		api:     api,
		details: make(map[string]DetailFunc),
	}
}

// Register adds a detail fetcher for a resource type. Matching is
// case-insensitive on the full type string.
func (e *Exporter) Register(resourceType string, fn DetailFunc) {
	e.details[strings.ToLower(resourceType)] = fn
}

// Export lists every resource group in the subscription and groups each
// group's resources by their exact type string. Groups are processed in the
// order the API returns them. A failing detail fetch never aborts the export;
// the resource keeps its base fields and the failure is logged as a warning.
func (e *Exporter) Export(ctx context.Context, subscriptionID string) (models.SubscriptionResources, error) {
	groups, err := e.api.ListResourceGroups(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	out := make(models.SubscriptionResources, len(groups))
	for i, name := range groups {
		if e.OnResourceGroup != nil {
			e.OnResourceGroup(name, i+1, len(groups))
		}

		byType, err := e.exportResourceGroup(ctx, subscriptionID, name)
		if err != nil {
			return nil, err
		}
		out[name] = byType
	}
	return out, nil
}

func (e *Exporter) exportResourceGroup(ctx context.Context, subscriptionID, resourceGroup string) (map[string][]models.Resource, error) {
	resources, err := e.api.ListResources(ctx, subscriptionID, resourceGroup)
	if err != nil {
		return nil, err
	}

	byType := make(map[string][]models.Resource)
	for _, resource := range resources {
		if resource.Properties == nil {
			resource.Properties = map[string]any{}
		}

		if fn, ok := e.details[strings.ToLower(resource.Type)]; ok {
			rg := models.ResourceGroupFromID(resource.ID)
			if rg == "" {
				rg = resourceGroup
			}
			properties, err := fn(ctx, subscriptionID, rg, resource.Name)
			if err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"resource": resource.Name,
					"type":     resource.Type,
				}).Warn("Could not fetch resource details")
			} else if properties != nil {
				resource.Properties = properties
			}
		}

		byType[resource.Type] = append(byType[resource.Type], resource)
	}
	return byType, nil
}
