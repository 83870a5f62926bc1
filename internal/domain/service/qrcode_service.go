package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for check-in QR code generation and parsing
type QRCodeService interface {
	// GenerateCheckInQR generates a QR code for a workshop registration check-in
	GenerateCheckInQR(registrationID uuid.UUID, code string) ([]byte, error)

	// ParseCheckInQR parses QR code data and returns the registration ID and check-in code
	ParseCheckInQR(qrData string) (uuid.UUID, string, error)
}
