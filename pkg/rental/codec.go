package rental

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Delimiter separates positional fields in an encoded record.
const Delimiter = ","

var (
	// ErrMalformedRecord is returned when a line cannot be decoded into a record.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrDelimiterInField is returned when a text field cannot be encoded
	// because it contains the delimiter or a line break.
	ErrDelimiterInField = errors.New("field contains delimiter or line break")
)

// Codec converts records of type T to and from a single text line.
type Codec[T any] interface {
	Encode(record T) (string, error)
	Decode(line string) (T, error)
}

// Codecs for each record type.
var (
	HouseCodec     Codec[House]           = houseCodec{}
	TenantCodec    Codec[Tenant]          = tenantCodec{}
	AgreementCodec Codec[RentalAgreement] = agreementCodec{}
	PaymentCodec   Codec[Payment]         = paymentCodec{}
)

const (
	houseFields     = 5
	tenantFields    = 3
	agreementFields = 5
	paymentFields   = 5
)

type houseCodec struct{}

func (houseCodec) Encode(h House) (string, error) {
	if err := CheckText("location", h.Location); err != nil {
		return "", err
	}
	if err := CheckText("owner", h.OwnerInfo); err != nil {
		return "", err
	}
	return join(
		strconv.Itoa(h.ID),
		h.Location,
		FormatDecimal(h.Price),
		strconv.Itoa(h.Bedrooms),
		h.OwnerInfo,
	), nil
}

func (houseCodec) Decode(line string) (House, error) {
	f, err := split(line, houseFields)
	if err != nil {
		return House{}, err
	}
	id, err := parseInt("id", f[0])
	if err != nil {
		return House{}, err
	}
	price, err := parseDecimal("price", f[2])
	if err != nil {
		return House{}, err
	}
	if price < 0 {
		return House{}, fmt.Errorf("%w: negative price %s", ErrMalformedRecord, f[2])
	}
	bedrooms, err := parseInt("bedrooms", f[3])
	if err != nil {
		return House{}, err
	}
	if bedrooms < 0 {
		return House{}, fmt.Errorf("%w: negative bedrooms %s", ErrMalformedRecord, f[3])
	}
	return House{
		ID:        id,
		Location:  f[1],
		Price:     price,
		Bedrooms:  bedrooms,
		OwnerInfo: f[4],
	}, nil
}

type tenantCodec struct{}

func (tenantCodec) Encode(t Tenant) (string, error) {
	for _, field := range []struct{ name, value string }{
		{"name", t.Name},
		{"contact", t.Contact},
		{"preferred location", t.PreferredLocation},
	} {
		if err := CheckText(field.name, field.value); err != nil {
			return "", err
		}
	}
	return join(t.Name, t.Contact, t.PreferredLocation), nil
}

func (tenantCodec) Decode(line string) (Tenant, error) {
	f, err := split(line, tenantFields)
	if err != nil {
		return Tenant{}, err
	}
	if f[0] == "" {
		return Tenant{}, fmt.Errorf("%w: empty tenant name", ErrMalformedRecord)
	}
	return Tenant{Name: f[0], Contact: f[1], PreferredLocation: f[2]}, nil
}

type agreementCodec struct{}

func (agreementCodec) Encode(a RentalAgreement) (string, error) {
	if err := CheckText("tenant name", a.TenantName); err != nil {
		return "", err
	}
	return join(
		strconv.Itoa(a.HouseID),
		a.TenantName,
		a.StartDate.Format(DateLayout),
		a.EndDate.Format(DateLayout),
		FormatDecimal(a.Deposit),
	), nil
}

func (agreementCodec) Decode(line string) (RentalAgreement, error) {
	f, err := split(line, agreementFields)
	if err != nil {
		return RentalAgreement{}, err
	}
	houseID, err := parseInt("house id", f[0])
	if err != nil {
		return RentalAgreement{}, err
	}
	start, err := parseDate("start date", f[2])
	if err != nil {
		return RentalAgreement{}, err
	}
	end, err := parseDate("end date", f[3])
	if err != nil {
		return RentalAgreement{}, err
	}
	deposit, err := parseDecimal("deposit", f[4])
	if err != nil {
		return RentalAgreement{}, err
	}
	return RentalAgreement{
		HouseID:    houseID,
		TenantName: f[1],
		StartDate:  start,
		EndDate:    end,
		Deposit:    deposit,
	}, nil
}

type paymentCodec struct{}

func (paymentCodec) Encode(p Payment) (string, error) {
	if err := CheckText("tenant name", p.TenantName); err != nil {
		return "", err
	}
	return join(
		p.TenantName,
		strconv.Itoa(p.HouseID),
		FormatDecimal(p.Amount),
		p.DueDate.Format(DateLayout),
		strconv.FormatBool(p.IsPaid),
	), nil
}

func (paymentCodec) Decode(line string) (Payment, error) {
	f, err := split(line, paymentFields)
	if err != nil {
		return Payment{}, err
	}
	houseID, err := parseInt("house id", f[1])
	if err != nil {
		return Payment{}, err
	}
	amount, err := parseDecimal("amount", f[2])
	if err != nil {
		return Payment{}, err
	}
	due, err := parseDate("due date", f[3])
	if err != nil {
		return Payment{}, err
	}
	paid, err := strconv.ParseBool(f[4])
	if err != nil {
		return Payment{}, fmt.Errorf("%w: invalid paid flag %q", ErrMalformedRecord, f[4])
	}
	return Payment{
		TenantName: f[0],
		HouseID:    houseID,
		Amount:     amount,
		DueDate:    due,
		IsPaid:     paid,
	}, nil
}

// CheckText reports ErrDelimiterInField if value cannot be stored as a field.
func CheckText(name, value string) error {
	if strings.ContainsAny(value, Delimiter+"\r\n") {
		return fmt.Errorf("%w: %s %q", ErrDelimiterInField, name, value)
	}
	return nil
}

// FormatDecimal renders v as plain decimal text with at least one fractional
// digit, e.g. 1200 -> "1200.0", 120.5 -> "120.5".
func FormatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func join(fields ...string) string {
	return strings.Join(fields, Delimiter)
}

func split(line string, want int) ([]string, error) {
	f := strings.Split(line, Delimiter)
	if len(f) != want {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, want, len(f))
	}
	return f, nil
}

func parseInt(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrMalformedRecord, name, s)
	}
	return v, nil
}

func parseDecimal(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrMalformedRecord, name, s)
	}
	return v, nil
}

func parseDate(name, s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s %q", ErrMalformedRecord, name, s)
	}
	return t, nil
}
