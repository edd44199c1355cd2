package mailer

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"net/url"
	"strconv"
	"time"
)

// Mailer описывает интерфейс отправки писем подтверждения.
type Mailer interface {
	// SendVerification отправляет ссылку подтверждения и возвращает,
	// удалась ли доставка. Неудача никогда не считается ошибкой
	// регистрации — результат только фиксируется в журнале доставки.
	SendVerification(toEmail, username, token, baseURL string) bool
}

// SMTPMailer отправляет письма через внешний SMTP-релей.
type SMTPMailer struct {
	host    string
	port    int
	user    string
	pass    string
	from    string
	timeout time.Duration
	log     *deliveryLog
}

// New создаёт SMTP-мейлер. Без учётных данных возвращается заглушка:
// отправка отключена, но журнал доставки продолжает вестись.
func New(host string, port int, user, pass, from, logPath string, timeout time.Duration) Mailer {
	dl := newDeliveryLog(logPath)
	if host == "" || user == "" || pass == "" {
		return &disabledMailer{log: dl}
	}
	if from == "" {
		from = user
	}
	return &SMTPMailer{
		host:    host,
		port:    port,
		user:    user,
		pass:    pass,
		from:    from,
		timeout: timeout,
		log:     dl,
	}
}

// SendVerification собирает ссылку вида {baseURL}/verify?email=...&token=...
// и передаёт её релею.
func (m *SMTPMailer) SendVerification(toEmail, username, token, baseURL string) bool {
	link := VerificationLink(baseURL, toEmail, token)
	subject := "Please verify your email"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nClick the link below to verify your account:\r\n%s\r\n\r\nIf you did not register, ignore this mail.\r\n",
		username, link,
	)
	err := m.send(toEmail, subject, body)
	m.log.record(toEmail, err)
	return err == nil
}

// VerificationLink строит ссылку подтверждения для письма.
func VerificationLink(baseURL, email, token string) string {
	return baseURL + "/verify?email=" + url.QueryEscape(email) + "&token=" + url.QueryEscape(token)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := "From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
		"\r\n" + body

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)

	// Ограничиваем всю сессию дедлайном, чтобы недоступный релей
	// не подвешивал вызывающего
	conn, err := net.DialTimeout("tcp", addr, m.timeout)
	if err != nil {
		return err
	}
	if err := conn.SetDeadline(time.Now().Add(m.timeout)); err != nil {
		conn.Close()
		return err
	}
	if m.port == 465 {
		conn = tls.Client(conn, &tls.Config{ServerName: m.host})
	}
	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()
	if m.port != 465 {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
				return err
			}
		}
	}
	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(m.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	wc, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// disabledMailer — заглушка при отсутствии настроек релея.
type disabledMailer struct {
	log *deliveryLog
}

func (m *disabledMailer) SendVerification(toEmail, username, token, baseURL string) bool {
	m.log.record(toEmail, errNotConfigured)
	return false
}

var _ Mailer = (*SMTPMailer)(nil)
var _ Mailer = (*disabledMailer)(nil)
