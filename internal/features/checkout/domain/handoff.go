package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"techstore-api/internal/core/money"
)

// shortRef truncates an order reference to the 8-character form shown
// to customers.
func shortRef(orderID string) string {
	if len(orderID) > 8 {
		return strings.ToUpper(orderID[:8])
	}
	return strings.ToUpper(orderID)
}

// BuildHandoffMessage renders the order summary sent to the store over
// WhatsApp. It is a pure function of its inputs so the exact text can
// be asserted in tests.
func BuildHandoffMessage(orderID string, items []DraftItem, totals Totals, form CheckoutForm, now time.Time) string {
	var b strings.Builder

	b.WriteString("🛒 *NUEVA ORDEN - TECHSTORE*\n\n")
	fmt.Fprintf(&b, "📋 *Orden:* #%s\n", shortRef(orderID))
	fmt.Fprintf(&b, "📅 *Fecha:* %s\n\n", now.Format("02/01/2006 15:04"))

	b.WriteString("*Productos:*\n")
	for _, item := range items {
		fmt.Fprintf(&b, "• %s x%d - %s\n", item.Name, item.Quantity, money.FormatPrice(item.Price*float64(item.Quantity)))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "*Subtotal:* %s\n", money.FormatPrice(totals.Subtotal))
	if totals.Shipping == 0 {
		b.WriteString("*Envío:* Gratis\n")
	} else {
		fmt.Fprintf(&b, "*Envío:* %s\n", money.FormatPrice(totals.Shipping))
	}
	fmt.Fprintf(&b, "*Total:* %s\n\n", money.FormatPrice(totals.Total))

	b.WriteString("👤 *Datos de entrega:*\n")
	fmt.Fprintf(&b, "Nombre: %s\n", form.Name)
	fmt.Fprintf(&b, "Teléfono: %s\n", form.Phone)
	fmt.Fprintf(&b, "Dirección: %s\n", form.Address)
	fmt.Fprintf(&b, "Ciudad: %s\n", form.City)
	if strings.TrimSpace(form.Notes) != "" {
		fmt.Fprintf(&b, "Notas: %s\n", form.Notes)
	}

	b.WriteString("\nPor favor confirma la disponibilidad y el tiempo de entrega. ¡Gracias!")

	return b.String()
}

// WhatsAppURL builds the wa.me link that opens a chat with the store
// number, pre-filled with the handoff message.
func WhatsAppURL(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message))
}
