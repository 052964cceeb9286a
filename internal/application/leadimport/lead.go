package leadimport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/partner"
)

// Lead is one fully validated, normalized upload row. It is built once per
// row and never modified after validation passes. Optional fields are nil
// when absent, never empty strings.
type Lead struct {
	FullName     string
	Phone        string
	Phone2       *string
	CityName     string
	Email        *string
	AddressLine1 string
	AddressLine2 *string
	ProductCode  string
	Quantity     int
	TotalAmount  decimal.Decimal
	Notes        string
}

// RowError is the failure outcome for a single row. Cells holds the row's
// original values so the failed-rows download can reproduce them verbatim.
type RowError struct {
	Row    int
	Reason string
	Cells  []string
}

func (e *RowError) Message() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Reason)
}

// emailPlaceholders are literal values users type to mean "no email"
var emailPlaceholders = map[string]struct{}{
	"":     {},
	"null": {},
	"n/a":  {},
	"-":    {},
}

// NormalizePhone collapses the accepted phone shapes to the canonical
// 10-digit local form 0XXXXXXXXX:
//
//	+94771234567 -> 0771234567
//	94771234567  -> 0771234567
//	771234567    -> 0771234567
//	0771234567   -> 0771234567 (unchanged)
//
// Anything else is a format error. The function is idempotent: feeding its
// own output back in returns the same value.
func NormalizePhone(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	switch {
	case len(s) == 12 && strings.HasPrefix(s, "+94") && allDigits(s[3:]):
		return "0" + s[3:], nil
	case len(s) == 11 && strings.HasPrefix(s, "94") && allDigits(s):
		return "0" + s[2:], nil
	case len(s) == 9 && allDigits(s):
		return "0" + s, nil
	case len(s) == 10 && strings.HasPrefix(s, "0") && allDigits(s):
		return s, nil
	}
	return "", fmt.Errorf("unrecognized phone number format: %q", raw)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseRow validates and normalizes one data row. It returns exactly one of
// a Lead or a RowError; row failures are values, they never propagate past
// the row boundary.
func ParseRow(header *HeaderMap, rowNum int, cells []string) (*Lead, *RowError) {
	fail := func(reason string) (*Lead, *RowError) {
		return nil, &RowError{Row: rowNum, Reason: reason, Cells: cells}
	}

	// Required fields, checked in fixed order; the first missing one wins.
	required := []struct {
		field FieldKey
		label string
	}{
		{FieldFullName, "Full Name"},
		{FieldPhone, "Phone Number"},
		{FieldCity, "City"},
		{FieldProductCode, "Product Code"},
		{FieldQuantity, "Quantity"},
		{FieldTotalAmount, "Total Amount"},
		{FieldAddressLine1, "Address Line 1"},
	}
	for _, req := range required {
		if header.Cell(cells, req.field) == "" {
			return fail(req.label + " is required")
		}
	}

	phone, err := NormalizePhone(header.Cell(cells, FieldPhone))
	if err != nil {
		return fail(fmt.Sprintf("Invalid phone number %q", header.Cell(cells, FieldPhone)))
	}
	if err := partner.ValidatePhone(phone); err != nil {
		return fail(fmt.Sprintf("Invalid phone number %q", header.Cell(cells, FieldPhone)))
	}

	var phone2 *string
	if raw := header.Cell(cells, FieldPhone2); raw != "" {
		p2, err := NormalizePhone(raw)
		if err != nil {
			return fail(fmt.Sprintf("Invalid secondary phone number %q", raw))
		}
		if p2 == phone {
			return fail("Secondary phone number must differ from the primary phone number")
		}
		phone2 = &p2
	}

	var email *string
	rawEmail := header.Cell(cells, FieldEmail)
	if _, placeholder := emailPlaceholders[strings.ToLower(rawEmail)]; !placeholder {
		if err := partner.ValidateEmail(rawEmail); err != nil {
			return fail(fmt.Sprintf("Invalid email address %q", rawEmail))
		}
		lower := strings.ToLower(rawEmail)
		email = &lower
	}

	rawQty := header.Cell(cells, FieldQuantity)
	quantity, err := strconv.Atoi(rawQty)
	if err != nil || quantity < 1 {
		return fail(fmt.Sprintf("Quantity must be a positive whole number, got %q", rawQty))
	}

	rawTotal := header.Cell(cells, FieldTotalAmount)
	total, err := decimal.NewFromString(rawTotal)
	if err != nil || !total.IsPositive() {
		return fail(fmt.Sprintf("Total Amount must be a positive number, got %q", rawTotal))
	}

	var addr2 *string
	if raw := header.Cell(cells, FieldAddressLine2); raw != "" {
		addr2 = &raw
	}

	return &Lead{
		FullName:     header.Cell(cells, FieldFullName),
		Phone:        phone,
		Phone2:       phone2,
		CityName:     header.Cell(cells, FieldCity),
		Email:        email,
		AddressLine1: header.Cell(cells, FieldAddressLine1),
		AddressLine2: addr2,
		ProductCode:  header.Cell(cells, FieldProductCode),
		Quantity:     quantity,
		TotalAmount:  total,
		Notes:        header.Cell(cells, FieldOther),
	}, nil
}
