package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "R$ 0,00"},
		{80, "R$ 80,00"},
		{50.5, "R$ 50,50"},
		{1234.5, "R$ 1.234,50"},
		{1234567.89, "R$ 1.234.567,89"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBRL(tt.value))
	}
}

func TestConfirmationMessage(t *testing.T) {
	msg := ConfirmationMessage("Maria", "2026-01-05", "09:00", []string{"Corte", "Escova"}, 130.5)

	want := "Olá! Gostaria de confirmar meu agendamento:\n\n" +
		"*Nome:* Maria\n" +
		"*Data:* 05/01/2026 às 09:00\n" +
		"*Serviços:* Corte, Escova\n" +
		"*Total:* R$ 130,50"
	assert.Equal(t, want, msg)
}

func TestAdminGreeting(t *testing.T) {
	assert.Equal(t, "Recebi seu agendamento Maria, estou ansiosa para te atender!", AdminGreeting("Maria"))
}

func TestDeepLinkAddsCountryCode(t *testing.T) {
	link := DeepLink("(11) 98765-4321", "Olá")
	assert.Equal(t, "https://wa.me/5511987654321?text=Ol%C3%A1", link)
}

func TestDeepLinkKeepsExistingCountryCode(t *testing.T) {
	link := DeepLink("+55 11 98765-4321", "oi")
	assert.Equal(t, "https://wa.me/5511987654321?text=oi", link)
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "5511987654321", Digits("+55 (11) 98765-4321"))
	assert.Equal(t, "", Digits("sem número"))
}
