package mailer

import (
	"bytes"
	"fmt"
	"text/template"
)

// Appointment notification templates. Data keys: PractitionerName,
// ConsumerName, Date, Start, End, Type.
var templates = map[string]struct {
	subject string
	body    string
}{
	TemplateBookingReceived: {
		subject: "Booking request received",
		body: `Hi {{.ConsumerName}},

Your booking request with {{.PractitionerName}} on {{.Date}} from {{.Start}} to {{.End}} ({{.Type}}) has been received and is awaiting confirmation.
`,
	},
	TemplateBookingConfirmed: {
		subject: "Your appointment is confirmed",
		body: `Hi {{.ConsumerName}},

{{.PractitionerName}} confirmed your appointment on {{.Date}} from {{.Start}} to {{.End}} ({{.Type}}).
`,
	},
	TemplateBookingCancelled: {
		subject: "Your appointment was cancelled",
		body: `Hi {{.ConsumerName}},

Your appointment with {{.PractitionerName}} on {{.Date}} from {{.Start}} to {{.End}} has been cancelled. The time slot is available again if you want to rebook.
`,
	},
}

// Render renders a named template with data, returning subject and text body.
func Render(name string, data map[string]any) (string, string, error) {
	t, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	tpl, err := template.New(name).Parse(t.body)
	if err != nil {
		return "", "", err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return t.subject, buf.String(), nil
}
