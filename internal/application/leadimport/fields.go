package leadimport

import "strings"

// FieldKey identifies one canonical column of the lead upload schema.
// Arbitrary header spellings are mapped onto these keys once, at header
// validation time; everything downstream works in terms of FieldKey only.
type FieldKey int

const (
	FieldFullName FieldKey = iota
	FieldPhone
	FieldPhone2
	FieldCity
	FieldEmail
	FieldAddressLine1
	FieldAddressLine2
	FieldProductCode
	FieldQuantity
	FieldTotalAmount
	FieldOther

	numFields
)

// Label returns the canonical display name of the field, as used in the
// downloadable template and in error messages.
func (f FieldKey) Label() string {
	switch f {
	case FieldFullName:
		return "Full Name"
	case FieldPhone:
		return "Phone Number"
	case FieldPhone2:
		return "Phone Number 2"
	case FieldCity:
		return "City"
	case FieldEmail:
		return "Email"
	case FieldAddressLine1:
		return "Address Line 1"
	case FieldAddressLine2:
		return "Address Line 2"
	case FieldProductCode:
		return "Product Code"
	case FieldQuantity:
		return "Quantity"
	case FieldTotalAmount:
		return "Total Amount"
	case FieldOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// AllFields lists every canonical field in template column order
func AllFields() []FieldKey {
	fields := make([]FieldKey, 0, numFields)
	for f := FieldKey(0); f < numFields; f++ {
		fields = append(fields, f)
	}
	return fields
}

// matchKeys maps the normalized form of each canonical label to its
// FieldKey, built once at package init.
var matchKeys = func() map[string]FieldKey {
	m := make(map[string]FieldKey, numFields)
	for _, f := range AllFields() {
		m[normalizeHeaderCell(f.Label())] = f
	}
	return m
}()

// normalizeHeaderCell collapses a raw header cell to its matching form:
// control characters stripped, lowercased, everything non-alphanumeric
// removed. "Phone  Number", "phone_number" and "PhoneNumber" all collapse
// to "phonenumber".
func normalizeHeaderCell(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
