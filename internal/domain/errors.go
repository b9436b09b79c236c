package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrIntegrity         = errors.New("error de integridad de datos")
	// ErrReferenced indica que el registro no se puede borrar porque otro lo referencia.
	ErrReferenced = errors.New("registro referenciado por otros datos")
)

// ValidationError entrada faltante o mal formada. Siempre corregible por quien llama.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError atajo para construir un ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// DuplicateError violación de unicidad sobre el campo Field de Entity.
type DuplicateError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: ya existe un registro con %s '%s'", e.Entity, e.Field, e.Value)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// NotFoundError la entidad referenciada no existe (id inválido o borrado concurrente).
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s no encontrado", e.Entity)
	}
	return fmt.Sprintf("%s '%s' no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError la cantidad pedida supera el stock disponible del producto.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Stock insuficiente: el producto '%s' solo tiene %d unidades disponibles.", e.ProductName, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// IntegrityError falla inesperada del almacenamiento (constraint, conexión, commit).
// Se registra en el log y se muestra al usuario de forma genérica.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() []error { return []error{ErrIntegrity, e.Err} }

// Integrity envuelve err como IntegrityError salvo que ya sea un error de dominio conocido.
func Integrity(op string, err error) error {
	if err == nil || IsDomainError(err) {
		return err
	}
	return &IntegrityError{Op: op, Err: err}
}

// IsDomainError indica si err pertenece a la taxonomía de errores de negocio.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrInsufficientStock,
		ErrIntegrity, ErrReferenced, ErrUnauthorized, ErrForbidden,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
