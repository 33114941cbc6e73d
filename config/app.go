package config

import (
	"os"
	"strings"
)

// App holds all environment-derived settings. Built once in main and passed
// to the components that need it; core logic never reads env directly.
type App struct {
	AdminEmails []string

	JWTSecret string

	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string

	EmailFrom     string
	EmailFromName string

	S3Bucket    string
	S3URLPrefix string

	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioPhoneNumber  string
	TwilioWhatsAppFrom string
}

func LoadApp() *App {
	app := &App{
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKey:       os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:       os.Getenv("AWS_SECRET_ACCESS_KEY"),
		EmailFrom:          os.Getenv("EMAIL_FROM"),
		EmailFromName:      os.Getenv("EMAIL_FROM_NAME"),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		S3URLPrefix:        os.Getenv("S3_URL_PREFIX"),
		TwilioAccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:  os.Getenv("TWILIO_PHONE_NUMBER"),
		TwilioWhatsAppFrom: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	}

	if app.AWSRegion == "" {
		app.AWSRegion = "us-east-1"
	}

	for _, email := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		email = strings.TrimSpace(email)
		if email != "" {
			app.AdminEmails = append(app.AdminEmails, strings.ToLower(email))
		}
	}

	return app
}

// IsAdmin reports whether the given email is on the admin allow-list.
// Comparison is case-insensitive.
func (a *App) IsAdmin(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, admin := range a.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}
