package validator

import (
	"net/mail"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

const maxContentLength = 2000

func ValidateRegister(email, nickname, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		errs.Add("nickname", "Nickname is required")
	} else if len(nickname) > 50 {
		errs.Add("nickname", "Nickname is too long")
	}

	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
	}

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateNickname(nickname string) ValidationErrors {
	errs := make(ValidationErrors)

	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		errs.Add("nickname", "Nickname is required")
	} else if len(nickname) > 50 {
		errs.Add("nickname", "Nickname is too long")
	}

	return errs
}

func ValidatePost(content string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(content) == "" {
		errs.Add("content", "Content is required")
	} else if len(content) > maxContentLength {
		errs.Add("content", "Content is too long")
	}

	return errs
}

func ValidateComment(content string) ValidationErrors {
	return ValidatePost(content)
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}
}
