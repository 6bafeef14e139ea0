package auth

import "errors"

var (
	// ErrUnauthorized - сервер отклонил учетные данные (401/403)
	ErrUnauthorized = errors.New("unauthorized access")

	// ErrUnknownEndpoint - identity endpoint недоступен или не найден
	ErrUnknownEndpoint = errors.New("unknown endpoint")

	// ErrNoCredentials - не задан ни токен, ни логин с паролем
	ErrNoCredentials = errors.New("no credentials configured")

	// ErrNotLoggedIn - нет сохраненной сессии
	ErrNotLoggedIn = errors.New("not logged in")
)
