package service

// QRCodeService defines the interface for QR code generation.
type QRCodeService interface {
	// GenerateOrderQR renders an order code as a PNG QR image.
	GenerateOrderQR(orderCode string) ([]byte, error)
}
