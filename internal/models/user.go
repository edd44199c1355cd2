package models

// User — учётная запись. Коллекция пользователей целиком сериализуется
// в JSON-файл, поэтому теги задают формат хранения.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` // bcrypt-хеш, не исходный пароль
	Verified bool   `json:"verified"`
	Token    string `json:"token,omitempty"`
}

// PublicUser — поля пользователя, отдаваемые наружу в API.
type PublicUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

// Public возвращает представление без хеша пароля и токена.
func (u User) Public() PublicUser {
	return PublicUser{Name: u.Name, Email: u.Email, Verified: u.Verified}
}
