package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-3F2504E0", InvoiceNumber("3f2504e0-4f89-11d3-9a0c-0305e82c3301"))
	assert.Equal(t, "INV-AB", InvoiceNumber("ab"))
}

func TestAddressNormalizeValidate(t *testing.T) {
	a := Address{FullName: " Jan ", Street: "Dluga 1", City: "Gdansk", PostalCode: "80-001", Country: " pl "}
	a.Normalize()
	assert.Equal(t, "Jan", a.FullName)
	assert.Equal(t, "PL", a.Country)
	assert.NoError(t, a.Validate())

	a.Country = "POL"
	assert.EqualError(t, a.Validate(), "country must be a two-letter code")

	a.Country = "PL"
	a.Street = ""
	assert.EqualError(t, a.Validate(), "street is required")
}
