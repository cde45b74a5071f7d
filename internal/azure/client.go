package azure

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/sql/armsql"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/sirupsen/logrus"

	"github.com/thand-io/azure-export/internal/models"
)

// Client wraps the Azure credential and the per-subscription management
// clients needed for an export run. It is not safe for concurrent use; the
// exporter drives it strictly sequentially.
type Client struct {
	interactive bool
	tenantID    string
	cred        azcore.TokenCredential
	cache       *clientCache
}

// NewClient returns an unauthenticated client. Login (or the first catalog
// call, which logs in lazily) must succeed before any export.
func NewClient(interactive bool) *Client {
	return &Client{
		interactive: interactive,
		cache:       newClientCache(),
	}
}

// Login acquires a credential. In interactive mode it attempts the browser
// flow first and validates it by listing tenants; on any failure it falls
// back to the default credential chain, validated the same way. An error is
// returned only when both paths fail.
func (c *Client) Login(ctx context.Context) error {
	if c.interactive {
		logrus.Info("Launching browser for interactive Azure login")

		cred, err := azidentity.NewInteractiveBrowserCredential(nil)
		if err == nil {
			err = validateCredential(ctx, cred)
		}
		if err == nil {
			c.cred = cred
			return nil
		}
		logrus.WithError(err).Warn("Interactive login failed, falling back to default credentials")
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return fmt.Errorf("failed to create default credentials: %w", err)
	}
	if err := validateCredential(ctx, cred); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	c.cred = cred
	return nil
}

// validateCredential forces a token acquisition now by fetching the first
// page of the tenants list.
func validateCredential(ctx context.Context, cred azcore.TokenCredential) error {
	tenants, err := armsubscriptions.NewTenantsClient(cred, nil)
	if err != nil {
		return err
	}
	_, err = tenants.NewListPager(nil).NextPage(ctx)
	return err
}

// SetTenant discards every cached management client and re-derives a
// credential scoped to the given tenant, falling back to the unscoped default
// chain when tenant-scoped creation fails.
func (c *Client) SetTenant(tenantID string) {
	c.tenantID = tenantID
	c.cache.InvalidateAll()

	if c.interactive {
		cred, err := azidentity.NewInteractiveBrowserCredential(&azidentity.InteractiveBrowserCredentialOptions{
			TenantID: tenantID,
		})
		if err == nil {
			c.cred = cred
			return
		}
		logrus.WithError(err).Warn("Error with tenant-specific credential, using default credential")
	}

	cred, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		TenantID: tenantID,
	})
	if err != nil {
		logrus.WithError(err).Warn("Error with tenant-scoped default credential, using unscoped credential")
		cred, err = azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			logrus.WithError(err).Error("Failed to create default credentials")
			return
		}
	}
	c.cred = cred
}

// TenantID returns the currently selected tenant, empty before SetTenant.
func (c *Client) TenantID() string {
	return c.tenantID
}

func (c *Client) ensureLogin(ctx context.Context) error {
	if c.cred != nil {
		return nil
	}
	return c.Login(ctx)
}

// ListTenants returns the tenants reachable with the current credential,
// logging in lazily if needed. Failures are logged and yield an empty slice.
func (c *Client) ListTenants(ctx context.Context) []models.Tenant {
	if err := c.ensureLogin(ctx); err != nil {
		logrus.WithError(err).Error("Failed to authenticate while listing tenants")
		return nil
	}

	client, err := armsubscriptions.NewTenantsClient(c.cred, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to create tenants client")
		return nil
	}

	var tenants []models.Tenant
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			logrus.WithError(err).Error("Failed to list tenants")
			return nil
		}
		for _, t := range page.Value {
			id := deref(t.TenantID)
			name := deref(t.DisplayName)
			if name == "" {
				name = id
			}
			tenants = append(tenants, models.Tenant{ID: id, DisplayName: name})
		}
	}
	return tenants
}

// ListSubscriptions returns the subscriptions visible in the active tenant,
// logging in lazily if needed. Authorization failures fail closed: they are
// logged and produce an empty slice, not an error.
func (c *Client) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	if err := c.ensureLogin(ctx); err != nil {
		logrus.WithError(err).Error("Failed to authenticate while listing subscriptions")
		return nil, nil
	}

	client, err := armsubscriptions.NewClient(c.cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	var subscriptions []models.Subscription
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if isAuthorizationError(err) {
				logrus.WithError(err).Error("Not authorized to list subscriptions")
				return nil, nil
			}
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}
		for _, s := range page.Value {
			id := deref(s.SubscriptionID)
			name := deref(s.DisplayName)
			if name == "" {
				name = id
			}
			subscriptions = append(subscriptions, models.Subscription{ID: id, DisplayName: name})
		}
	}
	return subscriptions, nil
}

func isAuthorizationError(err error) bool {
	var authErr *azidentity.AuthenticationFailedError
	if errors.As(err, &authErr) {
		return true
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == http.StatusUnauthorized || respErr.StatusCode == http.StatusForbidden
	}
	return false
}

// resources returns the cached armresources client factory for a subscription.
func (c *Client) resources(subscriptionID string) (*armresources.ClientFactory, error) {
	v, err := c.cache.Get(kindResource, subscriptionID, func() (any, error) {
		return armresources.NewClientFactory(subscriptionID, c.cred, nil)
	})
	if err != nil {
		return nil, err
	}
	return v.(*armresources.ClientFactory), nil
}

func (c *Client) network(subscriptionID string) (*armnetwork.ClientFactory, error) {
	v, err := c.cache.Get(kindNetwork, subscriptionID, func() (any, error) {
		return armnetwork.NewClientFactory(subscriptionID, c.cred, nil)
	})
	if err != nil {
		return nil, err
	}
	return v.(*armnetwork.ClientFactory), nil
}

func (c *Client) compute(subscriptionID string) (*armcompute.ClientFactory, error) {
	v, err := c.cache.Get(kindCompute, subscriptionID, func() (any, error) {
		return armcompute.NewClientFactory(subscriptionID, c.cred, nil)
	})
	if err != nil {
		return nil, err
	}
	return v.(*armcompute.ClientFactory), nil
}

func (c *Client) storage(subscriptionID string) (*armstorage.ClientFactory, error) {
	v, err := c.cache.Get(kindStorage, subscriptionID, func() (any, error) {
		return armstorage.NewClientFactory(subscriptionID, c.cred, nil)
	})
	if err != nil {
		return nil, err
	}
	return v.(*armstorage.ClientFactory), nil
}

func (c *Client) database(subscriptionID string) (*armsql.ClientFactory, error) {
	v, err := c.cache.Get(kindDatabase, subscriptionID, func() (any, error) {
		return armsql.NewClientFactory(subscriptionID, c.cred, nil)
	})
	if err != nil {
		return nil, err
	}
	return v.(*armsql.ClientFactory), nil
}

// ListResourceGroups returns the resource group names of a subscription in
// the order the API yields them.
func (c *Client) ListResourceGroups(ctx context.Context, subscriptionID string) ([]string, error) {
	factory, err := c.resources(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource client: %w", err)
	}

	var groups []string
	pager := factory.NewResourceGroupsClient().NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list resource groups: %w", err)
		}
		for _, rg := range page.Value {
			groups = append(groups, deref(rg.Name))
		}
	}
	return groups, nil
}

// ListResources returns the resources of a resource group with their base
// fields populated and an empty properties map.
func (c *Client) ListResources(ctx context.Context, subscriptionID, resourceGroup string) ([]models.Resource, error) {
	factory, err := c.resources(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource client: %w", err)
	}

	var resources []models.Resource
	pager := factory.NewClient().NewListByResourceGroupPager(resourceGroup, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list resources in %s: %w", resourceGroup, err)
		}
		for _, r := range page.Value {
			resources = append(resources, models.Resource{
				ID:         deref(r.ID),
				Name:       deref(r.Name),
				Location:   deref(r.Location),
				Type:       deref(r.Type),
				Tags:       derefTags(r.Tags),
				Properties: map[string]any{},
			})
		}
	}
	return resources, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTags(tags map[string]*string) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = deref(v)
	}
	return out
}
