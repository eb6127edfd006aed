package bookingref

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Prefix префикс номера бронирования, видимого клиенту
const Prefix = "BK"

// Generate генерирует человекочитаемый номер бронирования вида "BK-123456A1B2"
// Суффикс состоит из последних 6 цифр unix-времени в миллисекундах и 4 случайных
// hex-символов. Коллизии крайне маловероятны, но не исключены - уникальность
// гарантируется constraint'ом в БД, при нарушении вызывающая сторона генерирует
// номер повторно
func Generate() string {
	return generateAt(time.Now())
}

// Generator обёртка над Generate для внедрения через интерфейс
type Generator struct{}

func (Generator) Generate() string {
	return Generate()
}

func generateAt(now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}

	buf := make([]byte, 2)
	// crypto/rand.Read на поддерживаемых платформах не возвращает ошибок
	_, _ = rand.Read(buf)
	suffix := strings.ToUpper(hex.EncodeToString(buf))

	return fmt.Sprintf("%s-%s%s", Prefix, millis, suffix)
}
