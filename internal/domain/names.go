package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// NameKey normaliza un nombre para comparaciones sin distinguir mayúsculas (Unicode case folding).
// Se persiste en la columna name_key de categorías y productos, que tiene índice único.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
