package utils

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const qrCodeSize = 256

// GenerateTelQRCode генерирует PNG с QR-кодом ссылки tel:, чтобы менеджер
// мог позвонить клиенту, отсканировав код телефоном.
func GenerateTelQRCode(telLink string) ([]byte, error) {
	if telLink == "" {
		return nil, fmt.Errorf("пустая ссылка для QR-кода")
	}
	// qrcode.Medium - уровень коррекции ошибок, 256 - размер QR-кода в пикселях.
	qrBytes, err := qrcode.Encode(telLink, qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка кодирования QR-кода: %w", err)
	}
	return qrBytes, nil
}
