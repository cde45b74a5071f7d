package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/thand-io/azure-export/internal/models"
)

// selectTenant lets the user pick one tenant by number. Invalid entries are
// re-prompted by the form's validator; an empty answer defaults to 1.
func selectTenant(tenants []models.Tenant) (models.Tenant, error) {
	fmt.Println(headerStyle.Render("Available Azure tenants:"))
	for i, tenant := range tenants {
		fmt.Printf("%d. %s (%s)\n", i+1, infoStyle.Render(tenant.DisplayName), tenant.ID)
	}
	fmt.Println()

	var answer string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter tenant number to use").
				Placeholder("1").
				Value(&answer).
				Validate(func(s string) error {
					_, err := parseIndex(s, len(tenants))
					return err
				}),
		),
	)

	if err := form.Run(); err != nil {
		return models.Tenant{}, fmt.Errorf("tenant selection cancelled: %w", err)
	}

	index, err := parseIndex(answer, len(tenants))
	if err != nil {
		return models.Tenant{}, err
	}
	return tenants[index-1], nil
}

// selectSubscriptions lets the user select all subscriptions with a single
// confirm, or enter a comma-separated list of numbers (default 1).
func selectSubscriptions(subscriptions []models.Subscription) ([]models.Subscription, error) {
	fmt.Println(headerStyle.Render("Available subscriptions:"))
	for i, sub := range subscriptions {
		fmt.Printf("%d. %s (%s)\n", i+1, infoStyle.Render(sub.DisplayName), sub.ID)
	}
	fmt.Println()

	var selectAll bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Select all subscriptions?").
				Value(&selectAll),
		),
	)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("subscription selection cancelled: %w", err)
	}

	if selectAll {
		return subscriptions, nil
	}

	var answer string

	form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter subscription numbers to process (comma-separated)").
				Placeholder("1").
				Value(&answer).
				Validate(func(s string) error {
					_, err := parseIndexList(s, len(subscriptions))
					return err
				}),
		),
	)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("subscription selection cancelled: %w", err)
	}

	indices, err := parseIndexList(answer, len(subscriptions))
	if err != nil {
		return nil, err
	}

	selected := make([]models.Subscription, 0, len(indices))
	for _, index := range indices {
		selected = append(selected, subscriptions[index-1])
	}
	return selected, nil
}

// parseIndex parses a single 1-based index. Empty input defaults to 1.
func parseIndex(s string, max int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = "1"
	}

	index, err := strconv.Atoi(s)
	if err != nil || index < 1 || index > max {
		return 0, fmt.Errorf("enter a number between 1 and %d", max)
	}
	return index, nil
}

// parseIndexList parses a comma-separated list of 1-based indices. Empty
// input defaults to "1". Out-of-range entries are dropped, non-numeric
// entries are an error.
func parseIndexList(s string, max int) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = "1"
	}

	var indices []int
	for _, part := range strings.Split(s, ",") {
		index, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("enter valid subscription numbers, e.g. 1,3")
		}
		if index >= 1 && index <= max {
			indices = append(indices, index)
		}
	}
	return indices, nil
}
