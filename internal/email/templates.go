package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
)

var resetPasswordHTML = htmltemplate.Must(htmltemplate.New("reset_password").Parse(`
<h1>Password reset requested</h1>
<p>A password reset was requested for your SalonCart admin account.</p>
<p><a href="{{.ResetURL}}">Reset your password</a></p>
<p>The link expires in {{.ExpiryMinutes}} minutes. If you did not request this, ignore this email.</p>
`))

// ResetPasswordEmail renders the admin reset email for the given link.
func ResetPasswordEmail(to, resetURL string, expiryMinutes int) (*Email, error) {
	var html bytes.Buffer
	err := resetPasswordHTML.Execute(&html, struct {
		ResetURL      string
		ExpiryMinutes int
	}{ResetURL: resetURL, ExpiryMinutes: expiryMinutes})
	if err != nil {
		return nil, fmt.Errorf("failed to render reset email: %w", err)
	}

	text := fmt.Sprintf(
		"A password reset was requested for your SalonCart admin account.\n\n"+
			"Reset link (expires in %d minutes): %s\n\n"+
			"If you did not request this, ignore this email.\n",
		expiryMinutes, resetURL,
	)

	return &Email{
		To:      to,
		Subject: "Reset your SalonCart password",
		Text:    text,
		HTML:    html.String(),
	}, nil
}
