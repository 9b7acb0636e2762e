package ontology

import (
	"sort"
	"strings"
)

// minPhoneDigits and maxPhoneDigits bound the digit count of a cleaned
// phone value to plausible E.164-ish lengths.
const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// cleanPhone strips everything but digits and a single leading '+', and
// rejects values outside a plausible national-number length.
func cleanPhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r == '+' && b.Len() == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	v := b.String()
	digits := strings.TrimPrefix(v, "+")
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return "", false
	}
	return v, true
}

// callingCode maps an international calling-code prefix to an ISO country
// guess. Not exhaustive — covers the calling codes a document is plausibly
// going to mention. No phone-number library in the example corpus carries a
// calling-code table, so this stays a small built-in map (see DESIGN.md).
var callingCodes = []struct {
	prefix  string
	country string
}{
	{"+1", "us"},
	{"+7", "ru"},
	{"+20", "eg"},
	{"+27", "za"},
	{"+30", "gr"},
	{"+31", "nl"},
	{"+32", "be"},
	{"+33", "fr"},
	{"+34", "es"},
	{"+36", "hu"},
	{"+39", "it"},
	{"+40", "ro"},
	{"+41", "ch"},
	{"+43", "at"},
	{"+44", "gb"},
	{"+45", "dk"},
	{"+46", "se"},
	{"+47", "no"},
	{"+48", "pl"},
	{"+49", "de"},
	{"+51", "pe"},
	{"+52", "mx"},
	{"+55", "br"},
	{"+61", "au"},
	{"+62", "id"},
	{"+64", "nz"},
	{"+65", "sg"},
	{"+81", "jp"},
	{"+82", "kr"},
	{"+86", "cn"},
	{"+91", "in"},
	{"+92", "pk"},
	{"+971", "ae"},
	{"+972", "il"},
}

func init() {
	// Longest prefix first so "+971" doesn't get shadowed by "+9" style entries.
	sort.Slice(callingCodes, func(i, j int) bool {
		return len(callingCodes[i].prefix) > len(callingCodes[j].prefix)
	})
}

// PhoneCountryHint returns the ISO country code implied by a cleaned
// phone's calling-code prefix, or nil when no known prefix matches.
func PhoneCountryHint(cleaned string) []string {
	if !strings.HasPrefix(cleaned, "+") {
		return nil
	}
	for _, cc := range callingCodes {
		if strings.HasPrefix(cleaned, cc.prefix) {
			return []string{cc.country}
		}
	}
	return nil
}
