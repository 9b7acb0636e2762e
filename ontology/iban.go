package ontology

import (
	"regexp"
	"strconv"
	"strings"
)

// ibanFormat matches the general IBAN shape: two letters, two check
// digits, then up to 30 alphanumerics (ISO 13616).
var ibanFormat = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)

// ibanLengthByCountry lists the exact IBAN length for countries a document
// analyzer plausibly encounters. Unknown countries fall back to the
// format-only check (length 15-34) so we don't reject valid IBANs from
// countries outside this table.
var ibanLengthByCountry = map[string]int{
	"AD": 24, "AT": 20, "BE": 16, "BG": 22, "CH": 21, "CY": 28,
	"CZ": 24, "DE": 22, "DK": 18, "EE": 20, "ES": 24, "FI": 18,
	"FR": 27, "GB": 22, "GR": 27, "HR": 21, "HU": 28, "IE": 22,
	"IS": 26, "IT": 27, "LI": 21, "LT": 20, "LU": 20, "LV": 21,
	"MT": 31, "NL": 18, "NO": 15, "PL": 28, "PT": 25, "RO": 24,
	"SE": 24, "SI": 19, "SK": 24, "SM": 27,
}

// cleanIBAN validates an IBAN-shaped match against its format, country
// length table (when known), and ISO 7064 mod-97 checksum.
func cleanIBAN(raw string) (string, bool) {
	v := strings.ToUpper(strings.ReplaceAll(raw, " ", ""))
	if len(v) < 15 || len(v) > 34 {
		return "", false
	}
	if !ibanFormat.MatchString(v) {
		return "", false
	}
	if want, ok := ibanLengthByCountry[v[:2]]; ok && len(v) != want {
		return "", false
	}
	if !ibanChecksumValid(v) {
		return "", false
	}
	return v, true
}

// ibanChecksumValid implements the ISO 7064 mod-97-10 check: move the
// first four characters to the end, map letters to two-digit numerals
// (A=10 .. Z=35), and verify the resulting numeral string mod 97 == 1.
func ibanChecksumValid(iban string) bool {
	rearranged := iban[4:] + iban[:4]

	var numeral strings.Builder
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			numeral.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			numeral.WriteString(strconv.Itoa(int(r-'A') + 10))
		default:
			return false
		}
	}

	s := numeral.String()
	remainder := 0
	for i := 0; i < len(s); {
		end := i + 9
		if end > len(s) {
			end = len(s)
		}
		chunk := strconv.Itoa(remainder) + s[i:end]
		n, err := strconv.Atoi(chunk)
		if err != nil {
			return false
		}
		remainder = n % 97
		i = end
	}
	return remainder == 1
}

// IBANCountry returns the lowercase ISO country code embedded in an IBAN.
func IBANCountry(iban string) string {
	if len(iban) < 2 {
		return ""
	}
	return strings.ToLower(iban[:2])
}
