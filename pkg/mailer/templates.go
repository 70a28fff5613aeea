package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var activationTmpl = template.Must(template.New("activation").Parse(`<h2>Hello {{.Name}}!</h2>
<p>Please click here to <a href="{{.Link}}" target="_blank">activate your account</a>.</p>
<p>This link expires in {{.ExpiresIn}}.</p>`))

type activationData struct {
	Name      string
	Link      string
	ExpiresIn string
}

// ActivationEmail renders the body of the account activation email.
func ActivationEmail(name, link, expiresIn string) (string, error) {
	var buf bytes.Buffer
	if err := activationTmpl.Execute(&buf, activationData{Name: name, Link: link, ExpiresIn: expiresIn}); err != nil {
		return "", fmt.Errorf("render activation email: %w", err)
	}
	return buf.String(), nil
}
