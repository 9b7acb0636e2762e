package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeCleanEmail(t *testing.T) {
	v, ok := TypeClean(TagEmail, "  Jane.Doe@Example.COM ")
	assert.True(t, ok)
	assert.Equal(t, "jane.doe@example.com", v)

	_, ok = TypeClean(TagEmail, "not-an-email")
	assert.False(t, ok)
}

func TestTypeCleanPhone(t *testing.T) {
	v, ok := TypeClean(TagPhone, "tel:+919988111222")
	assert.True(t, ok)
	assert.Equal(t, "+919988111222", v)

	_, ok = TypeClean(TagPhone, "12")
	assert.False(t, ok, "too short to be a phone number")
}

func TestTypeCleanIBAN(t *testing.T) {
	v, ok := TypeClean(TagIBAN, "CH56 0483 5012 3456 7800 9")
	assert.True(t, ok)
	assert.Equal(t, "CH5604835012345678009", v)
	assert.Equal(t, "ch", IBANCountry(v))

	_, ok = TypeClean(TagIBAN, "CH5604835012345678008") // bad checksum
	assert.False(t, ok)
}

func TestTypeCleanGeneric(t *testing.T) {
	v, ok := TypeClean(TagPerson, "  Angela Merkel  ")
	assert.True(t, ok)
	assert.Equal(t, "Angela Merkel", v)

	_, ok = TypeClean(TagOrg, "   ")
	assert.False(t, ok)
}

func TestCountryHint(t *testing.T) {
	assert.Equal(t, []string{"ch"}, CountryHint(TagIBAN, "CH5604835012345678009"))
	assert.Equal(t, []string{"in"}, CountryHint(TagPhone, "+919988111222"))
	assert.Nil(t, CountryHint(TagPerson, "Angela Merkel"))
}
