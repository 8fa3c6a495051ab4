// Package console implements the interactive text menu of the rental manager.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shunichi-ikebuchi/rental-manager/pkg/booking"
	"github.com/shunichi-ikebuchi/rental-manager/pkg/rental"
)

// Inventory is the repository surface the menu drives.
type Inventory interface {
	AddHouse(h rental.House) error
	RemoveHouse(id int) (int, error)
	SearchHouses(location string, maxPrice float64) iter.Seq[rental.House]
	RegisterTenant(t rental.Tenant) error
	Houses() []rental.House
	Tenants() []rental.Tenant
}

// Booker books houses.
type Booker interface {
	BookHouse(ctx context.Context, houseID int, tenantName string) (*booking.Result, error)
}

const menu = `
1. Add House
2. Remove House
3. Search Houses
4. Register Tenant
5. Book House
6. List Houses
7. List Tenants
8. Exit`

// errInputClosed signals that the operator closed the input stream.
var errInputClosed = errors.New("input closed")

// errInvalidInput signals a value that could not be parsed.
var errInvalidInput = errors.New("invalid input")

// maxInputLine bounds one line of operator input.
const maxInputLine = 64 * 1024

// Console reads commands from in and writes prompts and results to out.
type Console struct {
	inventory Inventory
	booker    Booker
	in        *bufio.Reader
	out       io.Writer
}

// New creates a Console.
func New(inventory Inventory, booker Booker, in io.Reader, out io.Writer) *Console {
	return &Console{
		inventory: inventory,
		booker:    booker,
		in:        bufio.NewReader(in),
		out:       out,
	}
}

// Run executes commands until the operator exits or input ends.
// A failing command is reported and the loop continues.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(c.out, menu)
		choice, err := c.prompt("Choose an option: ")
		if errors.Is(err, errInputClosed) {
			fmt.Fprintln(c.out, "Exiting...")
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = c.addHouse()
		case "2":
			err = c.removeHouse()
		case "3":
			err = c.searchHouses()
		case "4":
			err = c.registerTenant()
		case "5":
			err = c.bookHouse(ctx)
		case "6":
			c.listHouses()
		case "7":
			c.listTenants()
		case "8":
			fmt.Fprintln(c.out, "Exiting...")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid choice.")
		}

		switch {
		case err == nil:
		case errors.Is(err, errInputClosed):
			fmt.Fprintln(c.out, "Exiting...")
			return nil
		case errors.Is(err, errInvalidInput):
			fmt.Fprintln(c.out, "Error: Invalid input. Please try again.")
		default:
			slog.Debug("Command failed", "choice", choice, "error", err)
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

func (c *Console) addHouse() error {
	id, err := c.promptInt("Enter ID: ")
	if err != nil {
		return err
	}
	location, err := c.prompt("Enter location: ")
	if err != nil {
		return err
	}
	price, err := c.promptFloat("Enter price: ")
	if err != nil {
		return err
	}
	bedrooms, err := c.promptInt("Enter bedrooms: ")
	if err != nil {
		return err
	}
	owner, err := c.prompt("Enter owner info: ")
	if err != nil {
		return err
	}

	h := rental.House{ID: id, Location: location, Price: price, Bedrooms: bedrooms, OwnerInfo: owner}
	if err := c.inventory.AddHouse(h); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "House added.")
	return nil
}

func (c *Console) removeHouse() error {
	id, err := c.promptInt("Enter house ID to remove: ")
	if err != nil {
		return err
	}

	removed, err := c.inventory.RemoveHouse(id)
	if err != nil {
		return err
	}
	if removed == 0 {
		fmt.Fprintln(c.out, "No house with that ID.")
		return nil
	}
	fmt.Fprintf(c.out, "Removed %d house(s).\n", removed)
	return nil
}

func (c *Console) searchHouses() error {
	location, err := c.prompt("Enter location: ")
	if err != nil {
		return err
	}
	maxPrice, err := c.promptFloat("Enter max price: ")
	if err != nil {
		return err
	}

	found := 0
	for h := range c.inventory.SearchHouses(location, maxPrice) {
		fmt.Fprintln(c.out, FormatHouse(h))
		found++
	}
	if found == 0 {
		fmt.Fprintln(c.out, "No matching houses.")
	}
	return nil
}

func (c *Console) registerTenant() error {
	name, err := c.prompt("Enter tenant name: ")
	if err != nil {
		return err
	}
	contact, err := c.prompt("Enter contact: ")
	if err != nil {
		return err
	}
	preferred, err := c.prompt("Enter preferred location: ")
	if err != nil {
		return err
	}

	if err := c.inventory.RegisterTenant(rental.Tenant{Name: name, Contact: contact, PreferredLocation: preferred}); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Tenant registered.")
	return nil
}

func (c *Console) bookHouse(ctx context.Context) error {
	id, err := c.promptInt("Enter house ID to book: ")
	if err != nil {
		return err
	}
	tenant, err := c.prompt("Enter tenant name: ")
	if err != nil {
		return err
	}

	result, err := c.booker.BookHouse(ctx, id, tenant)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, FormatBooking(result))
	return nil
}

func (c *Console) listHouses() {
	houses := c.inventory.Houses()
	if len(houses) == 0 {
		fmt.Fprintln(c.out, "No houses listed.")
		return
	}
	for _, h := range houses {
		fmt.Fprintln(c.out, FormatHouse(h))
	}
}

func (c *Console) listTenants() {
	tenants := c.inventory.Tenants()
	if len(tenants) == 0 {
		fmt.Fprintln(c.out, "No tenants registered.")
		return
	}
	for _, t := range tenants {
		fmt.Fprintln(c.out, FormatTenant(t))
	}
}

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)

	var line []byte
	seen, tooLong := false, false
	for {
		chunk, isPrefix, err := c.in.ReadLine()
		if errors.Is(err, io.EOF) {
			if !seen {
				return "", errInputClosed
			}
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		seen = true

		if len(line)+len(chunk) > maxInputLine {
			tooLong = true
		} else if !tooLong {
			line = append(line, chunk...)
		}
		if !isPrefix {
			break
		}
	}

	// The rest of an oversized line is already consumed.
	if tooLong {
		return "", errInvalidInput
	}
	return strings.TrimSuffix(string(line), "\r"), nil
}

func (c *Console) promptInt(label string) (int, error) {
	s, err := c.prompt(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errInvalidInput
	}
	return v, nil
}

func (c *Console) promptFloat(label string) (float64, error) {
	s, err := c.prompt(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errInvalidInput
	}
	return v, nil
}

// FormatHouse renders a house for display.
func FormatHouse(h rental.House) string {
	return fmt.Sprintf("ID: %d, Location: %s, Price: %s, Bedrooms: %d, Owner: %s",
		h.ID, h.Location, rental.FormatDecimal(h.Price), h.Bedrooms, h.OwnerInfo)
}

// FormatTenant renders a tenant for display.
func FormatTenant(t rental.Tenant) string {
	return fmt.Sprintf("Name: %s, Contact: %s, Preferred Location: %s",
		t.Name, t.Contact, t.PreferredLocation)
}

// FormatBooking renders a booking confirmation.
func FormatBooking(r *booking.Result) string {
	return fmt.Sprintf("House %d booked by %s. Lease agreement generated.\n"+
		"  Lease:   %s to %s, deposit %s\n"+
		"  Payment: %s due %s\n"+
		"  Reference: %s",
		r.HouseID, r.TenantName,
		r.Agreement.StartDate.Format(rental.DateLayout),
		r.Agreement.EndDate.Format(rental.DateLayout),
		rental.FormatDecimal(r.Agreement.Deposit),
		rental.FormatDecimal(r.Payment.Amount),
		r.Payment.DueDate.Format(rental.DateLayout),
		r.Reference,
	)
}
