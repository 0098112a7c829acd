// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const SiteName = "IHSB"

// AdmissionData holds the fields admission emails show.
type AdmissionData struct {
	ID            string
	StudentName   string
	ClassApplying string
	GuardianName  string
	GuardianEmail string
	GuardianPhone string
	Status        string
	AdminURL      string
}

// ContactData is a contact form submission.
type ContactData struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// BuildAdmissionConfirmation is sent to the guardian after a public
// submission.
func BuildAdmissionConfirmation(d AdmissionData) Email {
	var text strings.Builder
	fmt.Fprintf(&text, "Dear %s,\n\n", d.GuardianName)
	fmt.Fprintf(&text, "We have received the admission application for %s (class %s).\n", d.StudentName, d.ClassApplying)
	fmt.Fprintf(&text, "Your reference number is %s.\n\n", d.ID)
	text.WriteString("Our admissions office will review the application and contact you with the next steps.\n\n")
	fmt.Fprintf(&text, "%s Admissions\n", SiteName)

	return Email{
		To:       d.GuardianEmail,
		Subject:  fmt.Sprintf("%s admission application received: %s", SiteName, d.StudentName),
		TextBody: text.String(),
		HTMLBody: render(admissionConfirmationHTML, d),
	}
}

// BuildAdmissionAlert notifies the admissions office of a new application.
func BuildAdmissionAlert(to string, d AdmissionData) Email {
	var text strings.Builder
	fmt.Fprintf(&text, "New admission application %s\n\n", d.ID)
	fmt.Fprintf(&text, "Student: %s\nClass: %s\n", d.StudentName, d.ClassApplying)
	fmt.Fprintf(&text, "Guardian: %s\nPhone: %s\nEmail: %s\n", d.GuardianName, d.GuardianPhone, d.GuardianEmail)
	if d.AdminURL != "" {
		fmt.Fprintf(&text, "\nReview: %s\n", d.AdminURL)
	}
	return Email{
		To:       to,
		ReplyTo:  d.GuardianEmail,
		Subject:  fmt.Sprintf("New admission application: %s (class %s)", d.StudentName, d.ClassApplying),
		TextBody: text.String(),
	}
}

// BuildAdmissionStatus tells the guardian their application changed state.
func BuildAdmissionStatus(d AdmissionData) Email {
	var text strings.Builder
	fmt.Fprintf(&text, "Dear %s,\n\n", d.GuardianName)
	fmt.Fprintf(&text, "The admission application for %s (reference %s) is now %s.\n\n", d.StudentName, d.ID, d.Status)
	switch d.Status {
	case "approved":
		text.WriteString("Congratulations. The admissions office will contact you about enrolment.\n\n")
	case "rejected":
		text.WriteString("Please contact the admissions office if you have any questions.\n\n")
	}
	fmt.Fprintf(&text, "%s Admissions\n", SiteName)

	return Email{
		To:       d.GuardianEmail,
		Subject:  fmt.Sprintf("%s admission application %s", SiteName, d.Status),
		TextBody: text.String(),
		HTMLBody: render(admissionStatusHTML, d),
	}
}

// BuildContactMessage forwards a contact form submission to the office.
func BuildContactMessage(to string, d ContactData) Email {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s <%s>\n", d.Name, d.Email)
	if d.Phone != "" {
		fmt.Fprintf(&buf, "Phone: %s\n", d.Phone)
	}
	buf.WriteString("\n")
	buf.WriteString(d.Message)
	buf.WriteString("\n")

	subject := d.Subject
	if subject == "" {
		subject = "Website enquiry"
	}
	return Email{
		To:       to,
		ReplyTo:  d.Email,
		Subject:  fmt.Sprintf("[%s contact] %s", SiteName, subject),
		TextBody: buf.String(),
	}
}

var templates = map[string]*template.Template{}

func init() {
	for name, src := range map[string]string{
		admissionConfirmationHTML: admissionConfirmationSrc,
		admissionStatusHTML:       admissionStatusSrc,
	} {
		templates[name] = template.Must(template.New(name).Parse(layoutSrc + src))
	}
}

func render(name string, data any) string {
	var buf bytes.Buffer
	if err := templates[name].Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}

const (
	admissionConfirmationHTML = "admission_confirmation"
	admissionStatusHTML       = "admission_status"
)

const layoutSrc = `{{define "layout_open"}}<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr><td align="center" style="padding: 40px 20px;">
      <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 520px; background-color: #ffffff; border-radius: 8px;">
        <tr><td style="padding: 28px 32px; border-bottom: 1px solid #e5e7eb; text-align: center;">
          <h1 style="margin: 0; font-size: 22px; color: #065f46;">IHSB Admissions</h1>
        </td></tr>
        <tr><td style="padding: 32px; font-size: 15px; color: #374151; line-height: 1.6;">{{end}}
{{define "layout_close"}}        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>{{end}}`

const admissionConfirmationSrc = `{{template "layout_open"}}
          <p>Dear {{.GuardianName}},</p>
          <p>We have received the admission application for <strong>{{.StudentName}}</strong> (class {{.ClassApplying}}).</p>
          <p style="background-color: #f3f4f6; border-radius: 6px; padding: 16px; text-align: center;">Reference number<br><strong style="font-family: 'Courier New', monospace; font-size: 18px;">{{.ID}}</strong></p>
          <p>Our admissions office will review the application and contact you with the next steps.</p>
{{template "layout_close"}}`

const admissionStatusSrc = `{{template "layout_open"}}
          <p>Dear {{.GuardianName}},</p>
          <p>The admission application for <strong>{{.StudentName}}</strong> (reference {{.ID}}) is now <strong>{{.Status}}</strong>.</p>
          {{if eq .Status "approved"}}<p>Congratulations. The admissions office will contact you about enrolment.</p>{{end}}
          {{if eq .Status "rejected"}}<p>Please contact the admissions office if you have any questions.</p>{{end}}
{{template "layout_close"}}`
