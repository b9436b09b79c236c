package usecase

import (
	"context"
	"errors"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain"
)

// existsFunc predicado de unicidad: busca value excluyendo excludeID (registro en edición).
type existsFunc func(ctx context.Context, value, excludeID string) (bool, error)

// ensureUnique consulta exists con key y, si hay coincidencia, retorna dup.
// Se llama antes de cada alta y edición.
func ensureUnique(ctx context.Context, dup *domain.DuplicateError, key, excludeID string, exists existsFunc) error {
	found, err := exists(ctx, key, excludeID)
	if err != nil {
		return err
	}
	if found {
		return dup
	}
	return nil
}

// asDuplicate convierte la violación de índice único del almacenamiento (carrera entre dos altas) en dup.
func asDuplicate(err error, dup *domain.DuplicateError) error {
	var typed *domain.DuplicateError
	if errors.Is(err, domain.ErrDuplicate) && !errors.As(err, &typed) {
		return dup
	}
	return err
}
