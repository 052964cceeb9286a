package leadimport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canonicalHeader() []string {
	return []string{
		"Full Name", "Phone Number", "Phone Number 2", "City", "Email",
		"Address Line 1", "Address Line 2", "Product Code", "Quantity",
		"Total Amount", "Other",
	}
}

func TestNewHeaderMap(t *testing.T) {
	t.Run("accepts canonical header", func(t *testing.T) {
		hm, err := NewHeaderMap(canonicalHeader())
		require.NoError(t, err)
		assert.Equal(t, canonicalHeader(), hm.Labels())
	})

	t.Run("matching ignores case, spacing and punctuation", func(t *testing.T) {
		hm, err := NewHeaderMap([]string{
			"full_name", "PHONE  NUMBER", "phone-number-2", "city", "E-Mail",
			"address line 1", "AddressLine2", "product code", "QUANTITY",
			"total amount", "other",
		})
		require.NoError(t, err)
		row := []string{"Nimal", "0771234567", "", "Colombo", "", "12 Galle Rd", "", "SKU-1", "2", "1500", ""}
		assert.Equal(t, "Nimal", hm.Cell(row, FieldFullName))
		assert.Equal(t, "SKU-1", hm.Cell(row, FieldProductCode))
	})

	t.Run("column order does not matter", func(t *testing.T) {
		hm, err := NewHeaderMap([]string{
			"Quantity", "Full Name", "Other", "Phone Number", "City",
			"Phone Number 2", "Email", "Address Line 2", "Address Line 1",
			"Total Amount", "Product Code",
		})
		require.NoError(t, err)
		row := []string{"3", "Nimal", "", "0771234567", "Colombo", "", "", "", "12 Galle Rd", "1500", "SKU-1"}
		assert.Equal(t, "3", hm.Cell(row, FieldQuantity))
		assert.Equal(t, "Nimal", hm.Cell(row, FieldFullName))
	})

	t.Run("missing column rejects with names and found headers", func(t *testing.T) {
		raw := []string{
			"Full Name", "Phone Number", "Phone Number 2", "City", "Email",
			"Address Line 1", "Address Line 2", "Product Code",
			"Total Amount", "Other",
		}
		_, err := NewHeaderMap(raw)
		require.Error(t, err)

		var missing *MissingColumnsError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, []string{"Quantity"}, missing.Missing)
		assert.Equal(t, raw, missing.Found)
		assert.Contains(t, err.Error(), "Quantity")
	})

	t.Run("strips BOM bytes left in the first cell", func(t *testing.T) {
		header := canonicalHeader()
		header[0] = "\uFEFFFull Name"
		_, err := NewHeaderMap(header)
		assert.NoError(t, err)
	})
}

func TestHeaderMap_Cell_ShortRow(t *testing.T) {
	hm, err := NewHeaderMap(canonicalHeader())
	require.NoError(t, err)

	// Row has fewer cells than the header; trailing columns read empty.
	row := []string{"Nimal", "0771234567"}
	assert.Equal(t, "Nimal", hm.Cell(row, FieldFullName))
	assert.Equal(t, "", hm.Cell(row, FieldOther))
}
