package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"accsvc/internal/models"
	"accsvc/internal/service"
)

// Общие структуры запросов и ответов для Swagger и тестов

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type ResendRequest struct {
	Email string `json:"email"`
}

type APIResponse struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg"`
}

type LoginResponse struct {
	OK   bool               `json:"ok"`
	Msg  string             `json:"msg"`
	User *models.PublicUser `json:"user,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создаёт учётную запись и отправляет письмо со ссылкой подтверждения
// @Tags auth
// @Accept json
// @Produce json
// @Param input body RegisterRequest true "данные регистрации"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /register [post]
func Register(svc *service.Accounts, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r RegisterRequest
		if err := c.BindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, APIResponse{OK: false, Msg: "invalid json"})
			return
		}
		err := svc.Register(r.Name, r.Email, r.Password, baseURL)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, APIResponse{OK: true, Msg: "registered, check your email"})
		case errors.Is(err, service.ErrFieldsIncomplete):
			c.JSON(http.StatusBadRequest, APIResponse{OK: false, Msg: "fields incomplete"})
		case errors.Is(err, service.ErrBadEmailDomain):
			c.JSON(http.StatusBadRequest, APIResponse{OK: false, Msg: "bad email domain"})
		case errors.Is(err, service.ErrAccountExists):
			c.JSON(http.StatusConflict, APIResponse{OK: false, Msg: "already exists"})
		default:
			log.Printf("register: %v", err)
			c.JSON(http.StatusInternalServerError, APIResponse{OK: false, Msg: "internal error"})
		}
	}
}

// Login godoc
// @Summary Вход пользователя
// @Description Проверяет учётные данные по имени или почте. Вход возможен только после подтверждения почты.
// @Tags auth
// @Accept json
// @Produce json
// @Param input body LoginRequest true "учётные данные"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /login [post]
func Login(svc *service.Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r LoginRequest
		if err := c.BindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, APIResponse{OK: false, Msg: "invalid json"})
			return
		}
		user, err := svc.Login(r.UsernameOrEmail, r.Password)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, LoginResponse{OK: true, Msg: "login ok", User: &user})
		case errors.Is(err, service.ErrFieldsIncomplete):
			c.JSON(http.StatusBadRequest, APIResponse{OK: false, Msg: "fields incomplete"})
		case errors.Is(err, service.ErrNoAccount):
			c.JSON(http.StatusNotFound, APIResponse{OK: false, Msg: "no such account"})
		case errors.Is(err, service.ErrWrongPassword):
			c.JSON(http.StatusUnauthorized, APIResponse{OK: false, Msg: "wrong password"})
		case errors.Is(err, service.ErrNotVerified):
			c.JSON(http.StatusForbidden, APIResponse{OK: false, Msg: "email not verified"})
		default:
			log.Printf("login: %v", err)
			c.JSON(http.StatusInternalServerError, APIResponse{OK: false, Msg: "internal error"})
		}
	}
}

// Verify godoc
// @Summary Подтверждение почты по ссылке из письма
// @Description Отмечает учётную запись подтверждённой и показывает страницу с результатом. Неизвестная почта и неверный токен не различаются.
// @Tags auth
// @Produce html
// @Param email query string true "почта"
// @Param token query string true "токен подтверждения"
// @Success 200 {string} string "HTML-страница"
// @Router /verify [get]
func Verify(svc *service.Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := svc.ConfirmVerification(c.Query("email"), c.Query("token"))
		if err != nil {
			log.Printf("verify: %v", err)
			ok = false
		}
		c.HTML(http.StatusOK, "verified.html", gin.H{"Success": ok})
	}
}

// Resend godoc
// @Summary Повторная отправка письма подтверждения
// @Description Выпускает новый токен для неподтверждённой учётной записи. Ответ не раскрывает, существует ли почта.
// @Tags auth
// @Accept json
// @Produce json
// @Param input body ResendRequest true "почта"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /resend [post]
func Resend(svc *service.Accounts, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r ResendRequest
		if err := c.BindJSON(&r); err != nil {
			c.JSON(http.StatusBadRequest, APIResponse{OK: false, Msg: "invalid json"})
			return
		}
		err := svc.ResendVerification(r.Email, baseURL)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, APIResponse{OK: true, Msg: "if the account exists, a mail was sent"})
		case errors.Is(err, service.ErrFieldsIncomplete):
			c.JSON(http.StatusBadRequest, APIResponse{OK: false, Msg: "fields incomplete"})
		default:
			log.Printf("resend: %v", err)
			c.JSON(http.StatusInternalServerError, APIResponse{OK: false, Msg: "internal error"})
		}
	}
}
