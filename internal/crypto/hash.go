package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch возвращается, если пароль не совпал с сохраненным хешем
var ErrPasswordMismatch = errors.New("password does not match")

// HashPassword хеширует пароль пользователя через bcrypt
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword сравнивает пароль с bcrypt хешем
func VerifyPassword(password, hash string) error {
	if hash == "" {
		return fmt.Errorf("password hash cannot be empty")
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	return nil
}

// HashToken хеширует bearer токен через SHA256.
// Токен уже случайный, поэтому медленный хеш не нужен.
func HashToken(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("token cannot be empty")
	}

	hash := sha256.Sum256([]byte(token))

	// Возвращаем hex-encoded строку
	return hex.EncodeToString(hash[:]), nil
}

// VerifyToken проверяет, соответствует ли токен сохраненному хешу
func VerifyToken(token, hashedToken string) error {
	if hashedToken == "" {
		return fmt.Errorf("hashed token cannot be empty")
	}

	computedHash, err := HashToken(token)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(computedHash), []byte(hashedToken)) != 1 {
		return fmt.Errorf("invalid token")
	}
	return nil
}
