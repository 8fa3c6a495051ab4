package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/rental-manager/pkg/console"
	"github.com/shunichi-ikebuchi/rental-manager/pkg/rental"
)

var (
	tenantName      string
	tenantContact   string
	tenantPreferred string
)

// tenantCmd groups the tenant commands.
var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage registered tenants",
}

var tenantRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a tenant",
	Long: `Register a tenant and rewrite the tenants file.

Example:
  rental-manager tenant register --name Alice --contact 555-0100 --preferred-location Paris`,
	RunE: runTenantRegister,
}

var tenantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tenants",
	RunE:  runTenantList,
}

func init() {
	tenantRegisterCmd.Flags().StringVar(&tenantName, "name", "", "Tenant name (required)")
	tenantRegisterCmd.Flags().StringVar(&tenantContact, "contact", "", "Contact details")
	tenantRegisterCmd.Flags().StringVar(&tenantPreferred, "preferred-location", "", "Preferred location")
	tenantRegisterCmd.MarkFlagRequired("name")

	tenantCmd.AddCommand(tenantRegisterCmd, tenantListCmd)
}

func runTenantRegister(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.Close()

	err := s.repo.RegisterTenant(rental.Tenant{
		Name:              tenantName,
		Contact:           tenantContact,
		PreferredLocation: tenantPreferred,
	})
	if err != nil {
		return commandError(err, "failed to register tenant")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Tenant registered.")
	return nil
}

func runTenantList(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.Close()

	for _, t := range s.repo.Tenants() {
		fmt.Fprintln(cmd.OutOrStdout(), console.FormatTenant(t))
	}
	return nil
}
