package domain

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// CheckoutForm holds the delivery and contact fields a shopper fills in
// before submitting an order. Notes is the only optional field.
type CheckoutForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Notes   string `json:"notes"`
}

// Validate runs the required-field and format checks. It returns a
// per-field error map; an empty map means the form is valid. Messages
// are customer-facing, in the store's language.
func (f CheckoutForm) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "El nombre es requerido"
	}

	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "El email es requerido"
	} else if !emailPattern.MatchString(f.Email) {
		errs["email"] = "Ingresa un email válido"
	}

	if strings.TrimSpace(f.Phone) == "" {
		errs["phone"] = "El teléfono es requerido"
	} else if !phonePattern.MatchString(strings.ReplaceAll(f.Phone, " ", "")) {
		errs["phone"] = "Ingresa un teléfono válido de 10 dígitos"
	}

	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "La dirección es requerida"
	}

	if strings.TrimSpace(f.City) == "" {
		errs["city"] = "La ciudad es requerida"
	}

	return errs
}
