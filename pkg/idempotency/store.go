// Package idempotency guarda la respuesta de operaciones POST por clave de idempotencia,
// para que un reintento del cliente no registre la operación dos veces.
package idempotency

import (
	"context"
	"errors"
)

// ErrInProgress otra petición con la misma clave todavía no terminó.
var ErrInProgress = errors.New("idempotency: operación en curso con la misma clave")

// Response respuesta guardada para reenviar en los reintentos.
type Response struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store reserva claves y guarda respuestas.
//
// Begin devuelve (nil, nil) si la clave quedó reservada para quien llama,
// la respuesta guardada si la operación ya terminó, o ErrInProgress.
type Store interface {
	Begin(ctx context.Context, key string) (*Response, error)
	Complete(ctx context.Context, key string, resp Response) error
	Abort(ctx context.Context, key string) error
}
