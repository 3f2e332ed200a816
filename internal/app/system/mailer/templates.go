// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// ContactNotificationData holds the fields of a contact-form submission.
type ContactNotificationData struct {
	SiteName    string
	Reference   string
	Name        string
	Email       string
	Country     string
	Phone       string
	Message     string
	SubmittedAt string
}

// BuildContactNotification creates the operator notification for a new
// enquiry. Replies go straight to the enquirer.
func BuildContactNotification(data ContactNotificationData) Email {
	return Email{
		To:       "", // Set by caller
		ReplyTo:  data.Email,
		Subject:  fmt.Sprintf("New %s enquiry from %s", data.SiteName, data.Name),
		TextBody: buildContactText(data),
		HTMLBody: buildContactHTML(data),
	}
}

func buildContactText(data ContactNotificationData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("New enquiry received on %s (ref %s)\n\n", data.SubmittedAt, data.Reference))
	buf.WriteString(fmt.Sprintf("Name:     %s\n", data.Name))
	buf.WriteString(fmt.Sprintf("Email:    %s\n", data.Email))
	buf.WriteString(fmt.Sprintf("Country:  %s\n", data.Country))
	buf.WriteString(fmt.Sprintf("WhatsApp: %s\n\n", data.Phone))
	buf.WriteString("Message:\n")
	buf.WriteString(data.Message + "\n")
	return buf.String()
}

var contactHTML = template.Must(template.New("contact").Parse(contactHTMLTemplate))

func buildContactHTML(data ContactNotificationData) string {
	var buf bytes.Buffer
	_ = contactHTML.Execute(&buf, data)
	return buf.String()
}

const contactHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>New enquiry</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 560px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 28px 32px 20px; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 20px; font-weight: 600; color: #0f766e;">New {{.SiteName}} enquiry</h1>
              <p style="margin: 6px 0 0; font-size: 13px; color: #6b7280;">{{.SubmittedAt}} &middot; ref {{.Reference}}</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px;">
              <table role="presentation" width="100%" cellspacing="0" cellpadding="6" style="font-size: 15px; color: #374151;">
                <tr><td style="width: 110px; color: #6b7280;">Name</td><td>{{.Name}}</td></tr>
                <tr><td style="color: #6b7280;">Email</td><td><a href="mailto:{{.Email}}" style="color: #0f766e;">{{.Email}}</a></td></tr>
                <tr><td style="color: #6b7280;">Country</td><td>{{.Country}}</td></tr>
                <tr><td style="color: #6b7280;">WhatsApp</td><td>{{.Phone}}</td></tr>
              </table>
              <div style="margin-top: 20px; padding: 16px; background-color: #f9fafb; border-radius: 6px; font-size: 15px; color: #1f2937; white-space: pre-wrap;">{{.Message}}</div>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
