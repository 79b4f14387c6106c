// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// RoleUser роль оператора, назначаемая при регистрации.
const RoleUser = "user"

// User представляет зарегистрированного оператора системы.
type User struct {
	UUID         string    `json:"uid"`      // Уникальный идентификатор пользователя
	Email        string    `json:"email"`    // Электронная почта
	Username     string    `json:"username"` // Имя пользователя (уникальное)
	PasswordHash string    `json:"-"`        // Хэш пароля пользователя
	Role         string    `json:"role"`     // Роль пользователя, admin или user
	CreatedAt    time.Time `json:"created_at"`
}

// DummyRegister принимает данные регистрации из JSON-запроса.
type DummyRegister struct {
	Username string `json:"username" validate:"required,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// DummyLogin принимает данные входа из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
