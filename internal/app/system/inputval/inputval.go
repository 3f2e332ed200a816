// internal/app/system/inputval/inputval.go
//
// Package inputval validates form and JSON input with struct tags.
//
//	type input struct {
//	    Name string `validate:"required,max=100" label:"Name"`
//	}
//
// A `msg` tag replaces every rule's message for that field, so a form can
// show one fixed message per field.
package inputval

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FieldError describes one failed rule.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// Result collects field errors in struct field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

type ruleFunc func(value, param string) bool

var rules = map[string]ruleFunc{
	"required":    func(v, _ string) bool { return strings.TrimSpace(v) != "" },
	"email":       func(v, _ string) bool { return IsValidEmail(v) },
	"countrycode": func(v, _ string) bool { return IsValidCountryCode(v) },
	"whatsapp":    func(v, _ string) bool { return IsValidWhatsApp(v) },
	"max": func(v, p string) bool {
		n, err := strconv.Atoi(p)
		return err != nil || utf8.RuneCountInString(strings.TrimSpace(v)) <= n
	},
}

func defaultMessage(label, rule, param string) string {
	switch rule {
	case "required":
		return label + " is required."
	case "email":
		return "A valid email address is required."
	case "countrycode":
		return label + " must be + followed by 1-4 digits."
	case "whatsapp":
		return label + " must contain 6-15 digits."
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, param)
	default:
		return label + " is invalid."
	}
}

// Validate checks every string field of v (a struct or pointer to struct)
// against its `validate` tag. Only the first failing rule of each field is
// reported. Non-required rules are skipped for empty values.
//
// The message comes from a `msg_<rule>` tag, then a `msg` tag, then a
// generated default.
func Validate(v any) *Result {
	res := &Result{}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return res
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		tag := f.Tag.Get("validate")
		if tag == "" || f.Type.Kind() != reflect.String {
			continue
		}
		label := f.Tag.Get("label")
		if label == "" {
			label = f.Name
		}
		value := rv.Field(i).String()

		for _, spec := range strings.Split(tag, ",") {
			name, param, _ := strings.Cut(strings.TrimSpace(spec), "=")
			fn, ok := rules[name]
			if !ok {
				continue
			}
			if name != "required" && strings.TrimSpace(value) == "" {
				continue
			}
			if fn(value, param) {
				continue
			}
			msg := f.Tag.Get("msg_" + name)
			if msg == "" {
				msg = f.Tag.Get("msg")
			}
			if msg == "" {
				msg = defaultMessage(label, name, param)
			}
			res.Errors = append(res.Errors, FieldError{Field: f.Name, Rule: name, Message: msg})
			break
		}
	}
	return res
}

var (
	emailRe       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	countryCodeRe = regexp.MustCompile(`^\+\d{1,4}$`)
)

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// IsValidCountryCode reports whether s is "+" followed by 1-4 digits.
func IsValidCountryCode(s string) bool {
	return countryCodeRe.MatchString(strings.TrimSpace(s))
}

// Digits returns only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidWhatsApp reports whether s has 6-15 digits once separators are removed.
func IsValidWhatsApp(s string) bool {
	n := len(Digits(s))
	return n >= 6 && n <= 15
}

// NormalizePhone joins a country code and the digits of a local number,
// e.g. ("+44", "07700 900123") -> "+4407700900123".
func NormalizePhone(countryCode, number string) string {
	return strings.TrimSpace(countryCode) + Digits(number)
}
