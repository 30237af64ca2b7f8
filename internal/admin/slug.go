package admin

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify deriva el slug de una empresa a partir de su nombre: minúsculas,
// sin acentos, las corridas de caracteres no alfanuméricos colapsan en un
// solo guión y no quedan guiones en los bordes. El slug es inmutable una
// vez creada la empresa.
func Slugify(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	// NFD + borrado de marcas combinantes: "ñandú" -> "nandu"
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, lowered)
	if err != nil {
		ascii = lowered
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range ascii {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
		default:
			pendingDash = true
		}
	}

	return b.String()
}
