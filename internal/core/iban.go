package core

import (
	"regexp"
	"strings"
)

// ibanShape matches the country code, check digits and BBAN part of an
// IBAN after normalization. Deliberately permissive on length per
// country; the mod-97 checksum does the real work.
var ibanShape = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{1,30}$`)

// NormalizeIBAN strips spaces and upper-cases the account number.
func NormalizeIBAN(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// LooksLikeIBAN reports whether the normalized account number has the
// general IBAN shape. Non-IBAN account numbers are allowed elsewhere;
// this only decides whether the checksum is worth checking.
func LooksLikeIBAN(s string) bool {
	return ibanShape.MatchString(NormalizeIBAN(s))
}

// ValidIBAN runs the ISO 13616 mod-97 checksum over a normalized
// account number. Returns false for anything that does not even have
// the IBAN shape.
func ValidIBAN(s string) bool {
	iban := NormalizeIBAN(s)
	if !ibanShape.MatchString(iban) {
		return false
	}
	rearranged := iban[4:] + iban[:4]
	var rem int64
	for _, ch := range rearranged {
		switch {
		case ch >= '0' && ch <= '9':
			rem = (rem*10 + int64(ch-'0')) % 97
		case ch >= 'A' && ch <= 'Z':
			// Letters expand to two digits (A=10 .. Z=35).
			rem = (rem*100 + int64(ch-'A'+10)) % 97
		default:
			return false
		}
	}
	return rem == 1
}
