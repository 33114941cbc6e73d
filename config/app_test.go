package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	app := &App{AdminEmails: []string{"bride@example.com", "groom@example.com"}}

	assert.True(t, app.IsAdmin("bride@example.com"))
	assert.True(t, app.IsAdmin("BRIDE@Example.COM"))
	assert.True(t, app.IsAdmin("  groom@example.com "))
	assert.False(t, app.IsAdmin("guest@example.com"))
	assert.False(t, app.IsAdmin(""))
}

func TestLoadAppAdminEmails(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "Bride@Example.com, ,groom@example.com")

	app := LoadApp()
	assert.Equal(t, []string{"bride@example.com", "groom@example.com"}, app.AdminEmails)
}
