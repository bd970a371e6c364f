package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// emailData fills the shared layout in base.html. CTAURL empty hides the
// button row.
type emailData struct {
	Title    string
	Heading  string
	CTALabel string
	CTAURL   string
}

// Each message template is paired with the base layout once at startup, so a
// broken template crashes the process at boot instead of at send time.
var emailTemplates = map[string]*template.Template{
	"verification.html":   mustParse("verification.html"),
	"password_reset.html": mustParse("password_reset.html"),
}

func mustParse(name string) *template.Template {
	return template.Must(template.New("base.html").ParseFS(templateFS,
		"templates/base.html", "templates/"+name))
}

func renderEmailTemplate(name string, data emailData) (string, error) {
	tmpl, ok := emailTemplates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
