package views

import (
	"context"
	"fmt"
	"strings"
)

// LoginView signs a user in
type LoginView struct {
	session Session
	message Message
}

// NewLoginView creates a login screen
func NewLoginView(s Session) *LoginView {
	return &LoginView{session: s}
}

// Message returns the last outcome
func (v *LoginView) Message() Message {
	return v.message
}

// Submit attempts a login. Both fields are required.
func (v *LoginView) Submit(ctx context.Context, email, password string) Message {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		v.message = failure("Email and password are required.")
		return v.message
	}

	res := v.session.Login(ctx, email, password)
	if !res.Success {
		v.message = failure(res.Message)
		return v.message
	}

	user, _ := v.session.User()
	v.message = success(fmt.Sprintf("Logged in as %s (%s).", user.Email, user.Role))
	return v.message
}

// Run prompts for credentials, filling in what is already known
func (v *LoginView) Run(ctx context.Context, p Prompter, email, password string) (Message, error) {
	var err error
	if email == "" {
		email, err = p.String(Prompt{Message: "Email", Placeholder: "you@company.com", Required: true})
		if err != nil {
			return Message{}, err
		}
	}
	if password == "" {
		password, err = p.String(Prompt{Message: "Password", Required: true, Secret: true})
		if err != nil {
			return Message{}, err
		}
	}
	return v.Submit(ctx, email, password), nil
}
