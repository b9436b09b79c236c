package usecase

import (
	"fmt"
	"unicode/utf8"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
)

// Largos máximos en caracteres, iguales a las columnas VARCHAR del esquema PostgreSQL.
const (
	maxCategoryName = 100
	maxProductName  = 200
	maxUnit         = 50
	maxFullName     = 200
	maxTaxID        = 20
	maxPhone        = 20
	maxEmail        = 254
	maxUsername     = 150
)

// fieldLimit par campo/valor para validar varios largos de una vez.
type fieldLimit struct {
	name  string
	value string
	max   int
}

// checkLengths retorna ValidationError con el primer campo que excede su máximo.
func checkLengths(fields ...fieldLimit) error {
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > f.max {
			return domain.NewValidationError(f.name, fmt.Sprintf("admite como máximo %d caracteres", f.max))
		}
	}
	return nil
}
