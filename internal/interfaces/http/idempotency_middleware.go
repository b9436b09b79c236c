package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/pkg/idempotency"
)

// HeaderIdempotencyKey cabecera que identifica un intento de operación.
const HeaderIdempotencyKey = "Idempotency-Key"

// IdempotencyMiddleware reenvía la respuesta guardada cuando se repite la clave.
// Solo se guardan respuestas 2xx; ante un error la clave se libera para permitir el reintento.
// La clave se acota al usuario del token. Sin cabecera la petición pasa sin cambios.
func IdempotencyMiddleware(store idempotency.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderIdempotencyKey)
		if key == "" {
			return c.Next()
		}
		if len(key) > 128 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Idempotency-Key demasiado larga", Field: HeaderIdempotencyKey})
		}
		scoped := c.Method() + ":" + c.Route().Path + ":" + GetUserID(c) + ":" + key
		ctx := c.UserContext()

		cached, err := store.Begin(ctx, scoped)
		switch {
		case errors.Is(err, idempotency.ErrInProgress):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_IN_PROGRESS", Message: "ya hay una petición en curso con la misma Idempotency-Key"})
		case err != nil:
			return writeError(c, err)
		case cached != nil:
			c.Set("Idempotent-Replayed", "true")
			if cached.ContentType != "" {
				c.Set(fiber.HeaderContentType, cached.ContentType)
			}
			return c.Status(cached.Status).Send(cached.Body)
		}

		if err := c.Next(); err != nil {
			_ = store.Abort(ctx, scoped)
			return err
		}
		status := c.Response().StatusCode()
		if status < 200 || status >= 300 {
			if err := store.Abort(ctx, scoped); err != nil {
				log.Warn().Err(err).Msg("idempotency: no se pudo liberar la clave")
			}
			return nil
		}
		resp := idempotency.Response{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
		}
		if err := store.Complete(ctx, scoped, resp); err != nil {
			log.Warn().Err(err).Msg("idempotency: no se pudo guardar la respuesta")
		}
		return nil
	}
}
