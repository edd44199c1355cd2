package handlers

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"accsvc/internal/mailer"
	"accsvc/internal/service"
	"accsvc/internal/store"
)

const testBaseURL = "http://localhost:8080"

// setupTest создаёт файловое хранилище во временной директории
// и маршруты для тестов. SMTP не настроен: письма не уходят,
// но журнал доставки ведётся.
func setupTest(t *testing.T) (*store.Store, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	st, err := store.New(filepath.Join(dir, "users.json"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	m := mailer.New("", 587, "", "", "", filepath.Join(dir, "mail.log"), time.Second)
	svc := service.New(st, m)

	r := gin.Default()
	r.LoadHTMLGlob("../../web/templates/*")
	r.GET("/", Index())
	r.GET("/success", Success())
	r.GET("/health", Health(st))
	r.POST("/register", Register(svc, testBaseURL))
	r.POST("/login", Login(svc))
	r.GET("/verify", Verify(svc))
	r.POST("/resend", Resend(svc, testBaseURL))

	return st, r
}
