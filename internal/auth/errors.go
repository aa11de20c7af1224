package auth

import (
	"errors"
	"fmt"
)

// Messages shown to the user. The wording is part of the UI contract.
const (
	MsgLoginFailed        = "Login failed. Check server status."
	MsgTokenMissing       = "Authentication token missing."
	MsgRegistered         = "User registered successfully."
	MsgRegistrationFailed = "Registration failed."
)

var (
	// ErrNoSession is returned when an operation needs a session and none is held
	ErrNoSession = errors.New("no active session")

	// ErrRefreshRejected means the backend refused the refresh token and the
	// session was ended
	ErrRefreshRejected = errors.New("refresh token rejected")
)

// Result is the outcome of a Gate operation. Gate operations never return
// errors to views; every failure is folded into Message.
type Result struct {
	Success bool
	Message string
}

func ok(message string) Result {
	return Result{Success: true, Message: message}
}

func fail(message string) Result {
	return Result{Success: false, Message: message}
}

func unknownRoleMessage(role string) string {
	return fmt.Sprintf("Login failed. Unknown role %q.", role)
}
