package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/models"
)

const codeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomCode returns a random string over codeChars of the given length.
func randomCode(length int) string {
	result := make([]byte, length)
	charsetLen := big.NewInt(int64(len(codeChars)))

	for i := 0; i < length; i++ {
		randomIndex, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			// Fallback if crypto/rand fails. This should never happen in practice.
			randomIndex = big.NewInt(int64(i % len(codeChars)))
		}
		result[i] = codeChars[randomIndex.Int64()]
	}

	return string(result)
}

// GenerateInvoiceNumber generates a unique invoice number for the creation
// instant. Format: FAT-YYYYMMDD-XXXXXX (ex: FAT-20250601-K3H9QW).
func GenerateInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("FAT-%s-%s", now.Format("20060102"), randomCode(6))
}

// GenerateTemporaryPassword generates a one-time temporary password handed to
// the user after an administrative reset. Only the bcrypt hash is stored.
func GenerateTemporaryPassword() string {
	return randomCode(10)
}

// PaymentURL returns the static payment URL stub for an invoice. Real gateway
// integration is out of scope; cash payments have no URL.
func PaymentURL(method models.PaymentMethod, invoiceNumber string) string {
	switch method {
	case models.PaymentMethodBoleto:
		return fmt.Sprintf("https://pagamentos.eccoserv.com.br/boleto/%s", invoiceNumber)
	case models.PaymentMethodPix:
		return fmt.Sprintf("https://pagamentos.eccoserv.com.br/pix/%s", invoiceNumber)
	case models.PaymentMethodCard:
		return fmt.Sprintf("https://pagamentos.eccoserv.com.br/cartao/%s", invoiceNumber)
	}
	return ""
}
