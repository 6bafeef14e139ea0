package models

import (
	"strconv"
	"time"
)

// User представляет пользователя stub сервера
type User struct {
	CreatedAt    time.Time  `json:"created_at"`   // время создания
	LastLogin    *time.Time `json:"last_login"`   // время последнего выпуска токена
	Username     string     `json:"username"`     // уникальный username
	PasswordHash string     `json:"-"`            // bcrypt хеш пароля
	ID           int64      `json:"id"`           // числовой ID, как в AWX
	IsSuperuser  bool       `json:"is_superuser"` // администратор
}

// Fields возвращает представление пользователя в формате ресурса users
func (u *User) Fields() map[string]any {
	fields := map[string]any{
		"id":                u.ID,
		"type":              Users.Singular,
		"url":               Users.Endpoint + "/" + strconv.FormatInt(u.ID, 10) + "/",
		"username":          u.Username,
		"first_name":        "",
		"last_name":         "",
		"email":             "",
		"is_superuser":      u.IsSuperuser,
		"is_system_auditor": false,
		"created":           u.CreatedAt.UTC().Format(time.RFC3339),
		"last_login":        nil,
	}
	if u.LastLogin != nil {
		fields["last_login"] = u.LastLogin.UTC().Format(time.RFC3339)
	}
	return fields
}

// AccessToken - выпущенный personal access token. Сам токен не хранится,
// только его sha256 хеш и jti.
type AccessToken struct {
	ExpiresAt   time.Time `json:"expires"`
	CreatedAt   time.Time `json:"created"`
	JTI         string    `json:"-"`
	TokenHash   string    `json:"-"`
	Description string    `json:"description"`
	Scope       string    `json:"scope"`
	ID          int64     `json:"id"`
	UserID      int64     `json:"user"`
}

// StoredRecord - запись ресурса в хранилище stub сервера
type StoredRecord struct {
	Created  time.Time
	Modified time.Time
	Fields   map[string]any // только записываемые поля
	Resource string         // имя коллекции, например "projects"
	ID       int64
}
