package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// GenerateToken возвращает одноразовый токен подтверждения почты.
func GenerateToken() (string, error) {
	return gonanoid.New(32)
}
