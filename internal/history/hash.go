package history

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DomainEquation separates equation hashes from any other use of SHA-256.
const DomainEquation = "querygrid/equation/v1"

// EquationHash returns the hex SHA-256 of the canonical equation: NFC
// normalized, with every whitespace run collapsed to one space. A
// pretty-printed equation hashes like its single-line form.
// Format: SHA256(domain + 0x00 + canonical).
func EquationHash(equation string) string {
	canonical := strings.Join(strings.Fields(norm.NFC.String(equation)), " ")

	h := sha256.New()
	h.Write([]byte(DomainEquation))
	h.Write([]byte{0x00})
	h.Write([]byte(canonical))
	return hex.EncodeToString(h.Sum(nil))
}
