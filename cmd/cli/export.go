package cli

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thand-io/azure-export/internal/azure"
	"github.com/thand-io/azure-export/internal/common"
	"github.com/thand-io/azure-export/internal/docs"
	"github.com/thand-io/azure-export/internal/export"
	"github.com/thand-io/azure-export/internal/models"
)

// runExport drives the whole flow: login, tenant and subscription selection,
// export, documentation generation.
func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	log := logrus.WithField("run", uuid.New().String())
	log.Debug("Starting export run")

	fmt.Println(titleStyle.Render("Azure Resource Exporter and Documentation Generator"))

	if err := common.EnsureDir(cfg.Output); err != nil {
		return err
	}

	client := azure.NewClient(!cfg.NonInteractive)

	fmt.Println(infoStyle.Render("Authenticating with Azure..."))
	if err := client.Login(ctx); err != nil {
		fmt.Println(errorStyle.Render("Authentication failed. Please check your credentials and try again."))
		return err
	}

	fmt.Println(infoStyle.Render("Retrieving available Azure tenants..."))
	tenants := client.ListTenants(ctx)
	if len(tenants) == 0 {
		fmt.Println(errorStyle.Render("No tenants found. Please check your Azure account."))
		return nil
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Found %d tenants", len(tenants))))

	tenant, err := selectTenant(tenants)
	if err != nil {
		return err
	}

	fmt.Printf("Using tenant: %s\n", infoStyle.Render(tenant.DisplayName))
	client.SetTenant(tenant.ID)

	fmt.Println(infoStyle.Render("Retrieving available subscriptions..."))
	subscriptions, err := client.ListSubscriptions(ctx)
	if err != nil {
		return err
	}
	if len(subscriptions) == 0 {
		fmt.Println(errorStyle.Render("No subscriptions found in the selected tenant. Please check your permissions."))
		return nil
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Found %d subscriptions", len(subscriptions))))

	selected, err := selectSubscriptions(subscriptions)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		fmt.Println(warningStyle.Render("No subscriptions selected. Exiting."))
		return nil
	}

	exporter := export.New(client)
	exporter.OnResourceGroup = func(name string, index, total int) {
		fmt.Printf("  [%d/%d] %s\n", index, total, name)
	}

	fmt.Println(headerStyle.Render("Exporting resources from selected subscriptions..."))

	set := models.ExportSet{}
	for _, sub := range selected {
		fmt.Printf("Processing subscription: %s\n", infoStyle.Render(sub.DisplayName))

		resources, err := exporter.Export(ctx, sub.ID)
		if err != nil {
			return fmt.Errorf("failed to export subscription %s: %w", sub.ID, err)
		}
		set[sub.ID] = models.SubscriptionExport{
			Name:      sub.DisplayName,
			Resources: resources,
		}
	}

	fmt.Println(headerStyle.Render("Generating documentation..."))

	generator, err := docs.New(cfg.Output, cfg.Format)
	if err != nil {
		return err
	}
	if err := generator.Generate(set); err != nil {
		return err
	}

	outputPath, err := filepath.Abs(cfg.Output)
	if err != nil {
		outputPath = cfg.Output
	}

	fmt.Println(successStyle.Render("Export and documentation completed!"))
	fmt.Printf("Output saved to: %s\n", outputPath)
	log.Debug("Export run completed")

	return nil
}
