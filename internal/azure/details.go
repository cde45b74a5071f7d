package azure

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"
)

// UnknownPrefix is the sentinel rendered when none of the candidate fields
// carries a subnet's address prefix.
const UnknownPrefix = "Unknown"

// VirtualNetworkDetails fetches a virtual network and shapes its address
// space and subnets into the exported properties map.
func (c *Client) VirtualNetworkDetails(ctx context.Context, subscriptionID, resourceGroup, name string) (map[string]any, error) {
	factory, err := c.network(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create network client: %w", err)
	}

	resp, err := factory.NewVirtualNetworksClient().Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, err
	}

	props := resp.Properties
	if props == nil {
		return map[string]any{}, nil
	}

	addressSpace := []any{}
	if props.AddressSpace != nil {
		for _, prefix := range props.AddressSpace.AddressPrefixes {
			addressSpace = append(addressSpace, deref(prefix))
		}
	}

	subnets := []any{}
	for _, subnet := range props.Subnets {
		subnets = append(subnets, shapeSubnet(subnet))
	}

	return map[string]any{
		"address_space": addressSpace,
		"subnets":       subnets,
	}, nil
}

func shapeSubnet(subnet *armnetwork.Subnet) map[string]any {
	out := map[string]any{
		"name":           deref(subnet.Name),
		"address_prefix": subnetPrefixCandidatesFrom(subnet).resolve(),
	}

	props := subnet.Properties
	if props == nil {
		return out
	}

	var nsg any
	if props.NetworkSecurityGroup != nil {
		nsg = deref(props.NetworkSecurityGroup.ID)
	}
	var routeTable any
	if props.RouteTable != nil {
		routeTable = deref(props.RouteTable.ID)
	}

	endpoints := []any{}
	for _, endpoint := range props.ServiceEndpoints {
		endpoints = append(endpoints, deref(endpoint.Service))
	}

	delegations := []any{}
	for _, delegation := range props.Delegations {
		if delegation.Properties != nil {
			delegations = append(delegations, deref(delegation.Properties.ServiceName))
		}
	}

	out["network_security_group"] = nsg
	out["route_table"] = routeTable
	out["service_endpoints"] = endpoints
	out["delegations"] = delegations
	out["private_endpoint_network_policies"] = derefStringish(props.PrivateEndpointNetworkPolicies)
	out["private_link_service_network_policies"] = derefStringish(props.PrivateLinkServiceNetworkPolicies)

	return out
}

// subnetPrefixCandidates holds every field a subnet's prefix has been
// observed in, in resolution order. Different API versions and providers
// report the prefix in different places.
type subnetPrefixCandidates struct {
	// Direct is the single addressPrefix field.
	Direct string
	// List is the addressPrefixes list.
	List []string
	// AddressSpace is the prefix list of an embedded address space block.
	AddressSpace []string
	// Raw is the raw properties payload, consulted for addressPrefix /
	// addressPrefixes keys as a last resort.
	Raw map[string]any
}

// resolve returns the first present candidate, or UnknownPrefix when every
// field is empty.
func (s subnetPrefixCandidates) resolve() string {
	if s.Direct != "" {
		return s.Direct
	}
	if len(s.List) > 0 && s.List[0] != "" {
		return s.List[0]
	}
	if len(s.AddressSpace) > 0 && s.AddressSpace[0] != "" {
		return s.AddressSpace[0]
	}
	if prefix, ok := rawPrefix(s.Raw); ok {
		return prefix
	}
	return UnknownPrefix
}

func rawPrefix(raw map[string]any) (string, bool) {
	if v, ok := raw["addressPrefix"].(string); ok && v != "" {
		return v, true
	}
	if list, ok := raw["addressPrefixes"].([]any); ok && len(list) > 0 {
		if v, ok := list[0].(string); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func subnetPrefixCandidatesFrom(subnet *armnetwork.Subnet) subnetPrefixCandidates {
	candidates := subnetPrefixCandidates{}

	props := subnet.Properties
	if props == nil {
		return candidates
	}

	candidates.Direct = deref(props.AddressPrefix)
	for _, prefix := range props.AddressPrefixes {
		candidates.List = append(candidates.List, deref(prefix))
	}

	// Round-trip the typed properties so any prefix field the SDK model
	// does not surface directly is still visible.
	if data, err := json.Marshal(props); err == nil {
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err == nil {
			candidates.Raw = raw
		}
	}

	return candidates
}

// NetworkInterfaceDetails fetches a network interface's IP configurations.
func (c *Client) NetworkInterfaceDetails(ctx context.Context, subscriptionID, resourceGroup, name string) (map[string]any, error) {
	factory, err := c.network(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create network client: %w", err)
	}

	resp, err := factory.NewInterfacesClient().Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, err
	}

	configs := []any{}
	if resp.Properties != nil {
		for _, ipConfig := range resp.Properties.IPConfigurations {
			entry := map[string]any{
				"name": deref(ipConfig.Name),
			}
			if props := ipConfig.Properties; props != nil {
				entry["private_ip_address"] = deref(props.PrivateIPAddress)
				entry["private_ip_allocation_method"] = derefStringish(props.PrivateIPAllocationMethod)
				var publicIP any
				if props.PublicIPAddress != nil {
					publicIP = deref(props.PublicIPAddress.ID)
				}
				entry["public_ip_address"] = publicIP
			}
			configs = append(configs, entry)
		}
	}

	return map[string]any{
		"ip_configurations": configs,
	}, nil
}

// VirtualMachineDetails fetches a virtual machine's sizing, OS and NIC
// references.
func (c *Client) VirtualMachineDetails(ctx context.Context, subscriptionID, resourceGroup, name string) (map[string]any, error) {
	factory, err := c.compute(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create compute client: %w", err)
	}

	resp, err := factory.NewVirtualMachinesClient().Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, err
	}

	out := map[string]any{}
	props := resp.Properties
	if props == nil {
		return out, nil
	}

	if props.HardwareProfile != nil {
		out["vm_size"] = derefStringish(props.HardwareProfile.VMSize)
	}
	if props.StorageProfile != nil && props.StorageProfile.OSDisk != nil {
		out["os_type"] = derefStringish(props.StorageProfile.OSDisk.OSType)
	}
	if props.OSProfile != nil {
		out["admin_username"] = deref(props.OSProfile.AdminUsername)
	}

	nics := []any{}
	if props.NetworkProfile != nil {
		for _, nic := range props.NetworkProfile.NetworkInterfaces {
			nics = append(nics, deref(nic.ID))
		}
	}
	out["network_interfaces"] = nics

	return out, nil
}

// StorageAccountDetails fetches a storage account's SKU and access settings.
func (c *Client) StorageAccountDetails(ctx context.Context, subscriptionID, resourceGroup, name string) (map[string]any, error) {
	factory, err := c.storage(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	resp, err := factory.NewAccountsClient().GetProperties(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, err
	}

	out := map[string]any{
		"kind": derefStringish(resp.Kind),
	}
	if resp.SKU != nil {
		out["sku"] = derefStringish(resp.SKU.Name)
	}
	if props := resp.Properties; props != nil {
		out["access_tier"] = derefStringish(props.AccessTier)
		var httpsOnly any
		if props.EnableHTTPSTrafficOnly != nil {
			httpsOnly = *props.EnableHTTPSTrafficOnly
		}
		out["https_only"] = httpsOnly
	}
	return out, nil
}

// SQLServerDetails fetches a SQL server's version and endpoint information.
func (c *Client) SQLServerDetails(ctx context.Context, subscriptionID, resourceGroup, name string) (map[string]any, error) {
	factory, err := c.database(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create sql client: %w", err)
	}

	resp, err := factory.NewServersClient().Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, err
	}

	out := map[string]any{}
	if props := resp.Properties; props != nil {
		out["version"] = deref(props.Version)
		out["administrator_login"] = deref(props.AdministratorLogin)
		out["fully_qualified_domain_name"] = deref(props.FullyQualifiedDomainName)
	}
	return out, nil
}

func derefStringish[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}
