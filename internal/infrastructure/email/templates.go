package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Template names
const (
	TemplateWelcome           = "welcome"
	TemplateStaffInvitation   = "staff_invitation"
	TemplateOrderConfirmation = "order_confirmation"
	TemplatePaymentReceived   = "payment_received"
)

var templates = mustParseTemplates(
	TemplateWelcome,
	TemplateStaffInvitation,
	TemplateOrderConfirmation,
	TemplatePaymentReceived,
)

// Every body template defines "body", so each gets its own set with the layout
func mustParseTemplates(names ...string) map[string]*template.Template {
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(template.ParseFS(templateFiles, "templates/layout.html", "templates/"+name+".html"))
	}
	return out
}

func render(name string, data interface{}) (string, error) {
	tmpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("email: unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("email: render %s: %w", name, err)
	}
	return buf.String(), nil
}

type action struct {
	URL   string
	Label string
}

type lineView struct {
	Name     string
	Quantity int
	Subtotal string
}

var titleCaser = cases.Title(language.Spanish)

// displayName title-cases a person name and falls back for empty input
func displayName(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	return titleCaser.String(strings.ToLower(name))
}
