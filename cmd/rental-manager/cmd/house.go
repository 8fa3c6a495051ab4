package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/rental-manager/pkg/console"
	"github.com/shunichi-ikebuchi/rental-manager/pkg/rental"
)

var (
	houseID       int
	houseLocation string
	housePrice    float64
	houseBedrooms int
	houseOwner    string

	searchLocation string
	searchMaxPrice float64
)

// houseCmd groups the house inventory commands.
var houseCmd = &cobra.Command{
	Use:   "house",
	Short: "Manage listed houses",
}

var houseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "List a new house",
	Long: `Add a house to the inventory and rewrite the houses file.

Duplicate IDs are accepted.

Example:
  rental-manager house add --id 5 --location Paris --price 1200 --bedrooms 3 --owner Bob`,
	RunE: runHouseAdd,
}

var houseRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove every house with the given ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runHouseRemove,
}

var houseSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search houses by location and maximum price",
	Long: `Search houses whose location matches exactly, ignoring case,
and whose price is at most --max-price.

Example:
  rental-manager house search --location paris --max-price 1500`,
	RunE: runHouseSearch,
}

var houseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all houses",
	RunE:  runHouseList,
}

func init() {
	houseAddCmd.Flags().IntVar(&houseID, "id", 0, "House ID (required)")
	houseAddCmd.Flags().StringVar(&houseLocation, "location", "", "Location (required)")
	houseAddCmd.Flags().Float64Var(&housePrice, "price", 0, "Price (required)")
	houseAddCmd.Flags().IntVar(&houseBedrooms, "bedrooms", 0, "Number of bedrooms")
	houseAddCmd.Flags().StringVar(&houseOwner, "owner", "", "Owner information")
	houseAddCmd.MarkFlagRequired("id")
	houseAddCmd.MarkFlagRequired("location")
	houseAddCmd.MarkFlagRequired("price")

	houseSearchCmd.Flags().StringVar(&searchLocation, "location", "", "Location (required)")
	houseSearchCmd.Flags().Float64Var(&searchMaxPrice, "max-price", 0, "Maximum price, inclusive (required)")
	houseSearchCmd.MarkFlagRequired("location")
	houseSearchCmd.MarkFlagRequired("max-price")

	houseCmd.AddCommand(houseAddCmd, houseRemoveCmd, houseSearchCmd, houseListCmd)
}

func runHouseAdd(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.Close()

	err := s.repo.AddHouse(rental.House{
		ID:        houseID,
		Location:  houseLocation,
		Price:     housePrice,
		Bedrooms:  houseBedrooms,
		OwnerInfo: houseOwner,
	})
	if err != nil {
		return commandError(err, "failed to add house")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "House added.")
	return nil
}

func runHouseRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return commandError(err, "invalid house ID")
	}

	s := openSession(cmd.Context())
	defer s.Close()

	removed, err := s.repo.RemoveHouse(id)
	if err != nil {
		return commandError(err, "failed to remove house")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d house(s).\n", removed)
	return nil
}

func runHouseSearch(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.Close()

	found := 0
	for h := range s.repo.SearchHouses(searchLocation, searchMaxPrice) {
		fmt.Fprintln(cmd.OutOrStdout(), console.FormatHouse(h))
		found++
	}
	if found == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching houses.")
	}
	return nil
}

func runHouseList(cmd *cobra.Command, args []string) error {
	s := openSession(cmd.Context())
	defer s.Close()

	for _, h := range s.repo.Houses() {
		fmt.Fprintln(cmd.OutOrStdout(), console.FormatHouse(h))
	}
	return nil
}
