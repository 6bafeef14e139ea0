package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// UsernamePattern определяет допустимый формат username AWX:
// буквы, цифры и символы @ . + - _
var UsernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 1
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 150
)

// ValidateUsername проверяет, что username соответствует требованиям AWX
// Формат: буквы, цифры и @.+-_
// Длина: 1-150 символов
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters, digits and @.+-_ characters")
	}

	return nil
}

// ValidatePassword проверяет, что пароль передан
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	return nil
}

// ValidateToken проверяет формат bearer token
func ValidateToken(token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if strings.ContainsAny(token, " \t\r\n") {
		return fmt.Errorf("token must not contain whitespace")
	}
	return nil
}
