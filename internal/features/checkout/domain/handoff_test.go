package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildHandoffMessage(t *testing.T) {
	items := []DraftItem{
		{ProductID: "p1", Name: "Galaxy S24", Price: 3500000, Quantity: 1},
		{ProductID: "p2", Name: "Cargador USB-C", Price: 45000, Quantity: 2},
	}
	totals := Totals{Subtotal: 3590000, Shipping: 0, Total: 3590000}
	form := validForm()
	form.Notes = "Entregar en portería"
	now := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)

	msg := BuildHandoffMessage("a1b2c3d4-0000-4000-8000-000000000000", items, totals, form, now)

	assert.Contains(t, msg, "NUEVA ORDEN - TECHSTORE")
	assert.Contains(t, msg, "#A1B2C3D4")
	assert.Contains(t, msg, "28/08/2026 14:30")
	assert.Contains(t, msg, "• Galaxy S24 x1 - $ 3.500.000")
	assert.Contains(t, msg, "• Cargador USB-C x2 - $ 90.000")
	assert.Contains(t, msg, "*Envío:* Gratis")
	assert.Contains(t, msg, "*Total:* $ 3.590.000")
	assert.Contains(t, msg, "Nombre: Laura Gómez")
	assert.Contains(t, msg, "Notas: Entregar en portería")
}

func TestBuildHandoffMessage_PaidShipping(t *testing.T) {
	items := []DraftItem{{ProductID: "p2", Name: "Cargador USB-C", Price: 45000, Quantity: 1}}
	totals := Totals{Subtotal: 45000, Shipping: 15000, Total: 60000}

	msg := BuildHandoffMessage("ref", items, totals, validForm(), time.Now())

	assert.Contains(t, msg, "*Envío:* $ 15.000")
	assert.NotContains(t, msg, "Gratis")
	assert.NotContains(t, msg, "Notas:")
}

func TestWhatsAppURL(t *testing.T) {
	got := WhatsAppURL("573014610269", "hola mundo & más")

	assert.True(t, strings.HasPrefix(got, "https://wa.me/573014610269?text="))
	assert.Contains(t, got, "hola+mundo+%26+m%C3%A1s")
}
