package mailer

import (
	"strings"
	"testing"
)

func TestRenderBookingTemplates(t *testing.T) {
	data := map[string]any{
		"PractitionerName": "Dr. Ayu",
		"ConsumerName":     "Budi",
		"Date":             "Monday, 7 September 2026",
		"Start":            "09:00",
		"End":              "10:00",
		"Type":             "online",
	}

	cases := []struct {
		template    string
		wantSubject string
		wantInBody  []string
	}{
		{TemplateBookingReceived, "Booking request received", []string{"Dr. Ayu", "Budi", "awaiting confirmation"}},
		{TemplateBookingConfirmed, "Your appointment is confirmed", []string{"Dr. Ayu", "09:00", "10:00"}},
		{TemplateBookingCancelled, "Your appointment was cancelled", []string{"available again"}},
	}
	for _, tc := range cases {
		t.Run(tc.template, func(t *testing.T) {
			subject, body, err := Render(tc.template, data)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if subject != tc.wantSubject {
				t.Errorf("subject = %q, want %q", subject, tc.wantSubject)
			}
			for _, want := range tc.wantInBody {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q:\n%s", want, body)
				}
			}
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, err := Render("no-such-template", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}
