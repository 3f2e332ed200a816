package inputval

import "strings"

// Contact is the contact-form payload.
type Contact struct {
	Name        string `json:"name" validate:"required,max=200" msg:"Please enter your name." msg_max:"Please keep your name under 200 characters."`
	Email       string `json:"email" validate:"required,email" msg:"Please enter a valid email address."`
	CountryName string `json:"countryName"`
	CountryCode string `json:"countryCode" validate:"required,countrycode" msg:"Please enter a valid country code (e.g. +44)."`
	WhatsApp    string `json:"whatsapp" validate:"required,whatsapp" msg:"Please enter a valid WhatsApp number (6-15 digits)."`
	Message     string `json:"message" validate:"required,max=5000" msg:"Please enter a message." msg_max:"Please keep your message under 5000 characters."`
}

// Trimmed returns c with surrounding whitespace removed from every field.
func (c Contact) Trimmed() Contact {
	return Contact{
		Name:        strings.TrimSpace(c.Name),
		Email:       strings.TrimSpace(c.Email),
		CountryName: strings.TrimSpace(c.CountryName),
		CountryCode: strings.TrimSpace(c.CountryCode),
		WhatsApp:    strings.TrimSpace(c.WhatsApp),
		Message:     strings.TrimSpace(c.Message),
	}
}

// ValidateContact returns the first validation message, or "" when c is
// valid, together with the normalized phone number.
func ValidateContact(c Contact) (phone string, msg string) {
	c = c.Trimmed()
	if res := Validate(c); res.HasErrors() {
		return "", res.First()
	}
	return NormalizePhone(c.CountryCode, c.WhatsApp), ""
}
