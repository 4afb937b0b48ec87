package service

import "net/mail"

// Límites de entrada, idénticos para registro y login.
const (
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 256
	maxNameLength     = 100
)

// ValidationError acumula errores por campo para respuestas 422.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) orNil() *ValidationError {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func validateRegister(email, password, name string) error {
	verr := &ValidationError{}
	checkEmail(verr, email)
	checkPassword(verr, password)
	if len(name) > maxNameLength {
		verr.add("name", "name too long")
	}
	if v := verr.orNil(); v != nil {
		return v
	}
	return nil
}

func validateLogin(email, password string) error {
	verr := &ValidationError{}
	checkEmail(verr, email)
	checkPassword(verr, password)
	if v := verr.orNil(); v != nil {
		return v
	}
	return nil
}

func checkEmail(verr *ValidationError, email string) {
	if email == "" {
		verr.add("email", "email is required")
		return
	}
	if len(email) > maxEmailLength {
		verr.add("email", "email too long")
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		verr.add("email", "invalid email address")
	}
}

func checkPassword(verr *ValidationError, password string) {
	if len(password) < minPasswordLength {
		verr.add("password", "password too short (min 8 characters)")
		return
	}
	if len(password) > maxPasswordLength {
		verr.add("password", "password too long")
	}
}
