package service

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"accsvc/internal/mailer"
	"accsvc/internal/models"
	"accsvc/internal/store"
	"accsvc/internal/utils"
)

// Суффикс почтового домена, обязательный при регистрации
const requiredEmailSuffix = "@gmail.com"

// внутренний маркер "совпадение не найдено", отменяет запись в Update
var errNoMatch = errors.New("no match")

// Accounts реализует бизнес-правила регистрации, входа и подтверждения
// почты поверх файлового хранилища. Мейлер и хранилище внедряются
// снаружи, что позволяет подменять их в тестах.
type Accounts struct {
	store  *store.Store
	mailer mailer.Mailer
}

// New создаёт сервис учётных записей.
func New(st *store.Store, m mailer.Mailer) *Accounts {
	return &Accounts{store: st, mailer: m}
}

// Register создаёт нового пользователя и отправляет письмо
// подтверждения. Доставка письма best-effort: её исход не влияет на
// результат регистрации и выполняется вне блокировки хранилища.
func (s *Accounts) Register(name, email, password, baseURL string) error {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if name == "" || email == "" || password == "" {
		return ErrFieldsIncomplete
	}
	if !strings.HasSuffix(email, requiredEmailSuffix) {
		return ErrBadEmailDomain
	}

	// bcrypt медленный, считаем хеш до захвата мьютекса хранилища
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	token, err := utils.GenerateToken()
	if err != nil {
		return err
	}

	err = s.store.Update(func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if strings.EqualFold(u.Name, name) || strings.EqualFold(u.Email, email) {
				return nil, ErrAccountExists
			}
		}
		return append(users, models.User{
			Name:     name,
			Email:    email,
			Password: string(hash),
			Verified: false,
			Token:    token,
		}), nil
	})
	if err != nil {
		return err
	}

	go s.mailer.SendVerification(email, name, token, baseURL)
	return nil
}

// Login проверяет учётные данные по имени или почте.
// Непроверенная почта блокирует вход, но неверный пароль
// сообщается независимо от статуса подтверждения.
func (s *Accounts) Login(usernameOrEmail, password string) (models.PublicUser, error) {
	ident := strings.ToLower(strings.TrimSpace(usernameOrEmail))
	password = strings.TrimSpace(password)
	if ident == "" || password == "" {
		return models.PublicUser{}, ErrFieldsIncomplete
	}

	users, err := s.store.Load()
	if err != nil {
		return models.PublicUser{}, err
	}
	for _, u := range users {
		if !strings.EqualFold(u.Name, ident) && !strings.EqualFold(u.Email, ident) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			return models.PublicUser{}, ErrWrongPassword
		}
		if !u.Verified {
			return models.PublicUser{}, ErrNotVerified
		}
		return u.Public(), nil
	}
	return models.PublicUser{}, ErrNoAccount
}

// ConfirmVerification отмечает пользователя подтверждённым по паре
// почта+токен. Переход одноразовый: токен очищается, повторный вызов
// с тем же токеном уже не совпадёт. Ответ не различает неизвестную
// почту и неверный токен, чтобы не раскрывать список адресов.
func (s *Accounts) ConfirmVerification(email, token string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	token = strings.TrimSpace(token)
	if email == "" || token == "" {
		return false, nil
	}

	err := s.store.Update(func(users []models.User) ([]models.User, error) {
		for i := range users {
			if strings.EqualFold(users[i].Email, email) && users[i].Token != "" && users[i].Token == token {
				users[i].Verified = true
				users[i].Token = ""
				return users, nil
			}
		}
		return nil, errNoMatch
	})
	if errors.Is(err, errNoMatch) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ResendVerification выпускает новый токен для неподтверждённой
// учётной записи и повторно отправляет письмо. Для неизвестной или уже
// подтверждённой почты ответ нейтральный, письмо не отправляется.
func (s *Accounts) ResendVerification(email, baseURL string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrFieldsIncomplete
	}

	token, err := utils.GenerateToken()
	if err != nil {
		return err
	}

	var name string
	err = s.store.Update(func(users []models.User) ([]models.User, error) {
		for i := range users {
			if strings.EqualFold(users[i].Email, email) && !users[i].Verified {
				users[i].Token = token
				name = users[i].Name
				return users, nil
			}
		}
		return nil, errNoMatch
	})
	if errors.Is(err, errNoMatch) {
		return nil
	}
	if err != nil {
		return err
	}

	go s.mailer.SendVerification(email, name, token, baseURL)
	return nil
}
