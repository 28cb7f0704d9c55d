package notification

import (
	"fmt"
	"net/url"
	"strings"
)

const countryCode = "55"

// Digits strips everything but digits from a phone number.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// FormatBRL renders a price the pt-BR way: R$ 1.234,56.
func FormatBRL(value float64) string {
	s := fmt.Sprintf("%.2f", value)
	whole, frac, _ := strings.Cut(s, ".")

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}
	return fmt.Sprintf("R$ %s,%s", grouped.String(), frac)
}

// ConfirmationMessage builds the booking confirmation text the client
// sends to the professional. The date is shown as DD/MM/YYYY.
func ConfirmationMessage(clientName, dayKey, startTime string, serviceNames []string, total float64) string {
	parts := strings.Split(dayKey, "-")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	dateLabel := strings.Join(parts, "/")

	return fmt.Sprintf(
		"Olá! Gostaria de confirmar meu agendamento:\n\n*Nome:* %s\n*Data:* %s às %s\n*Serviços:* %s\n*Total:* %s",
		clientName, dateLabel, startTime, strings.Join(serviceNames, ", "), FormatBRL(total),
	)
}

// AdminGreeting is the message a professional sends back to a client
// when acknowledging a new booking from the dashboard.
func AdminGreeting(clientName string) string {
	return fmt.Sprintf("Recebi seu agendamento %s, estou ansiosa para te atender!", clientName)
}

// DeepLink builds a wa.me URL that opens a chat with the professional
// pre-filled with the given message. Numbers stored without the country
// code get the Brazilian prefix.
func DeepLink(professionalPhone, message string) string {
	digits := Digits(professionalPhone)
	if !strings.HasPrefix(digits, countryCode) || len(digits) <= 11 {
		digits = countryCode + digits
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message))
}
