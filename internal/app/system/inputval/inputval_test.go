package inputval

import (
	"strings"
	"testing"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},
		{"user123@example.co.uk", true},
		{"a@b.co", true},
		{"  a@b.co  ", true}, // trimmed

		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"user@localhost", false}, // needs a dot in the domain
		{"not-an-email", false},
		{"user @example.com", false},
		{"user@exam ple.com", false},
		{"a@@b.co", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got := IsValidEmail(tt.email)
			if got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidCountryCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"+1", true},
		{"+44", true},
		{"+1684", true},
		{"44", false},
		{"+", false},
		{"+12345", false},
		{"+4a", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidCountryCode(tt.code); got != tt.want {
			t.Errorf("IsValidCountryCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestIsValidWhatsApp(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"7700 900123", true},
		{"(770) 090-0123", true},
		{"123456", true},
		{"123456789012345", true},
		{"12345", false},
		{"1234567890123456", false},
		{"phone", false},
	}
	for _, tt := range tests {
		if got := IsValidWhatsApp(tt.number); got != tt.want {
			t.Errorf("IsValidWhatsApp(%q) = %v, want %v", tt.number, got, tt.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("+44", "7700 900-123"); got != "+447700900123" {
		t.Errorf("NormalizePhone = %q", got)
	}
}

func validContact() Contact {
	return Contact{
		Name:        "Sam Lee",
		Email:       "sam@example.com",
		CountryName: "United Kingdom",
		CountryCode: "+44",
		WhatsApp:    "7700 900123",
		Message:     "I'd like a quote.",
	}
}

func TestValidateContact(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Contact)
		wantMsg string
	}{
		{"valid", func(c *Contact) {}, ""},
		{"missing name", func(c *Contact) { c.Name = "  " }, "Please enter your name."},
		{"bad email", func(c *Contact) { c.Email = "not-an-email" }, "Please enter a valid email address."},
		{"empty email", func(c *Contact) { c.Email = "" }, "Please enter a valid email address."},
		{"country code without plus", func(c *Contact) { c.CountryCode = "44" }, "Please enter a valid country code (e.g. +44)."},
		{"short whatsapp", func(c *Contact) { c.WhatsApp = "12-34" }, "Please enter a valid WhatsApp number (6-15 digits)."},
		{"missing message", func(c *Contact) { c.Message = "" }, "Please enter a message."},
		{"message too long", func(c *Contact) { c.Message = strings.Repeat("a", 5001) }, "Please keep your message under 5000 characters."},
		{"message at limit", func(c *Contact) { c.Message = strings.Repeat("a", 5000) }, ""},
		{"name too long", func(c *Contact) { c.Name = strings.Repeat("n", 201) }, "Please keep your name under 200 characters."},
		{"first failure wins", func(c *Contact) { c.Name = ""; c.Email = "bad" }, "Please enter your name."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validContact()
			tt.mutate(&c)
			phone, msg := ValidateContact(c)
			if msg != tt.wantMsg {
				t.Fatalf("msg = %q, want %q", msg, tt.wantMsg)
			}
			if tt.wantMsg == "" && phone != "+447700900123" {
				t.Errorf("phone = %q, want +447700900123", phone)
			}
			if tt.wantMsg != "" && phone != "" {
				t.Errorf("phone = %q on failure, want empty", phone)
			}
		})
	}
}

func TestValidate_DefaultMessages(t *testing.T) {
	type input struct {
		Name  string `validate:"required,max=10" label:"Full name"`
		Email string `validate:"required,email" label:"Email address"`
	}

	tests := []struct {
		name      string
		in        input
		wantFirst string
		wantCount int
	}{
		{"valid", input{"John", "john@example.com"}, "", 0},
		{"missing name", input{"", "john@example.com"}, "Full name is required.", 1},
		{"name too long", input{"VeryLongNameThatExceedsLimit", "john@example.com"}, "Full name must be at most 10 characters.", 1},
		{"invalid email", input{"John", "not-an-email"}, "A valid email address is required.", 1},
		{"missing both", input{"", ""}, "Full name is required.", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(&tt.in)
			if res.First() != tt.wantFirst {
				t.Errorf("First() = %q, want %q", res.First(), tt.wantFirst)
			}
			if len(res.Errors) != tt.wantCount {
				t.Errorf("len(Errors) = %d, want %d", len(res.Errors), tt.wantCount)
			}
		})
	}
}

func TestResult_All(t *testing.T) {
	r := &Result{Errors: []FieldError{{Message: "Error 1"}, {Message: "Error 2"}}}
	if r.All() != "Error 1; Error 2" {
		t.Errorf("All() = %q", r.All())
	}
	if (&Result{}).All() != "" {
		t.Error("empty All() should be empty")
	}
}
