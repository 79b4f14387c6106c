// Package password хеширует пароли пользователей bcrypt и проверяет их при входе.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxLength bcrypt учитывает только первые 72 байта пароля.
const maxLength = 72

var (
	// ErrTooLong пароль длиннее, чем может учесть bcrypt.
	ErrTooLong = errors.New("password is longer than 72 bytes")
	// ErrMismatch пароль не соответствует хешу.
	ErrMismatch = errors.New("password does not match")
)

// GetHash возвращает bcrypt-хеш пароля для хранения в таблице users.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	if len(password) > maxLength {
		return "", fmt.Errorf("%s: %w", op, ErrTooLong)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// CompareHash сравнивает сохранённый хеш с введённым паролем.
// Несовпадение возвращается как ErrMismatch, прочие ошибки bcrypt оборачиваются как есть.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
