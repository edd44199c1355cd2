// @title Account API
// @version 1.0
// @description Сервис учётных записей: регистрация, вход, подтверждение почты
// @BasePath /

package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"accsvc/config"
	"accsvc/internal/handlers"
	"accsvc/internal/mailer"
	"accsvc/internal/service"
	"accsvc/internal/store"

	docs "accsvc/docs"
)

func main() {
	// 1. Загружаем конфиг из .env / окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// 1.1 Определяем режим запуска (dev/prod)
	env := os.Getenv("APP_ENV")
	if env == "prod" || env == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 2. Открываем файловое хранилище пользователей
	st, err := store.New(cfg.UsersFile)
	if err != nil {
		log.Fatalf("store open failed: %v", err)
	}

	// 3. Мейлер: без SMTP-учётных данных отправка отключена,
	// регистрация при этом продолжает работать
	m := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.MailLogFile, cfg.MailTimeout)
	svc := service.New(st, m)

	docs.SwaggerInfo.BasePath = "/"

	// 4. Создаём Gin-роутер и регистрируем маршруты
	r := gin.Default()
	r.Use(cors.Default())
	r.LoadHTMLGlob("web/templates/*")

	r.GET("/", handlers.Index())
	r.GET("/success", handlers.Success())
	r.GET("/health", handlers.Health(st))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/register", handlers.Register(svc, cfg.BaseURL))
	r.POST("/login", handlers.Login(svc))
	r.GET("/verify", handlers.Verify(svc))
	r.POST("/resend", handlers.Resend(svc, cfg.BaseURL))

	// 5. Запускаем сервер
	addr := ":" + cfg.Port
	log.Printf("listening on %s …", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
