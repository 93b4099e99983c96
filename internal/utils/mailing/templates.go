package mailing

import (
	"fmt"
	"html"
)

const (
	SubjectWelcome         = "Welcome to Recipe API"
	SubjectPasswordChanged = "Your password was changed"
)

func WelcomeBody(name string, appURL string) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>your account is ready. Start sharing recipes at <a href=\"%s\">%s</a>.</p>",
		html.EscapeString(name), html.EscapeString(appURL), html.EscapeString(appURL),
	)
}

func PasswordChangedBody(name string) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>the password of your account was just changed. If this was not you, contact support.</p>",
		html.EscapeString(name),
	)
}
