package entity

import "time"

// Client cliente al que se le registran ventas.
type Client struct {
	ID        string
	FullName  string // único
	TaxID     string // cédula o RUC, opcional pero único si se informa
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time // se fija al crear y no cambia
}
