package entity

import (
	"strings"
	"time"
)

// Category agrupa productos. El nombre es único sin distinguir mayúsculas (ver domain.NameKey).
// Borrar una categoría deja a sus productos sin categoría.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rename cambia el nombre y la fecha de modificación.
func (c *Category) Rename(name string, now time.Time) {
	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = now
}
