package service

import "github.com/google/uuid"

// QRCodeService generates and parses product share QR codes.
type QRCodeService interface {
	// GenerateProductQR renders a PNG QR code pointing at the given listing.
	GenerateProductQR(productID uuid.UUID) ([]byte, error)

	// ParseProductQR decodes QR payload data back into a product ID.
	ParseProductQR(qrData string) (uuid.UUID, error)
}
