package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wedding-backend/models"
)

func TestRenderTemplate(t *testing.T) {
	last := "Smith"
	guest := &models.Guest{
		FirstName:  "John",
		LastName:   &last,
		InviteCode: "ABCD-2345",
	}
	template := &models.EmailTemplate{
		Subject: "You're invited, [FirstName]!",
		HTML:    "<p>Dear [GuestName], your code is [InviteCode].</p>",
	}

	subject, html := renderTemplate(template, guest)
	assert.Equal(t, "You're invited, John!", subject)
	assert.Equal(t, "<p>Dear John Smith, your code is ABCD-2345.</p>", html)
}

func TestSendEligible(t *testing.T) {
	email := "john@example.com"
	bad := "not-an-email"

	tests := []struct {
		name     string
		guest    models.Guest
		eligible bool
	}{
		{"primary with email", models.Guest{Email: &email}, true},
		{"primary without email", models.Guest{}, false},
		{"primary with malformed email", models.Guest{Email: &bad}, false},
		{"plus-one with email", models.Guest{Email: &email, IsPlusOne: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, tt.guest.SendEligible())
		})
	}
}
