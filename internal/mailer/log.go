package mailer

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var errNotConfigured = errors.New("smtp not configured")

// deliveryLog ведёт append-only журнал попыток доставки:
// по одной строке на попытку, с меткой времени, получателем и статусом.
type deliveryLog struct {
	mu   sync.Mutex
	path string
}

func newDeliveryLog(path string) *deliveryLog {
	return &deliveryLog{path: path}
}

func (l *deliveryLog) record(recipient string, sendErr error) {
	line := fmt.Sprintf("%s\t%s\tOK\n", time.Now().Format(time.RFC3339), recipient)
	if sendErr != nil {
		line = fmt.Sprintf("%s\t%s\tFAIL\t%s\n", time.Now().Format(time.RFC3339), recipient, sendErr)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		log.Printf("mail log: %v", err)
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		log.Printf("mail log: %v", err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		log.Printf("mail log: %v", err)
	}
}
