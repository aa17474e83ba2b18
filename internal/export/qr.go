package export

import (
	"github.com/skip2/go-qrcode"

	"github.com/agentstation/tripmap/pkg/errors"
)

// DefaultQRSize is the PNG edge length in pixels.
const DefaultQRSize = 512

// TokenQR encodes a sync token as a PNG QR code with medium error
// recovery. Tokens carrying photos are often too large for a QR code;
// those return a ValidationError and must be shared as text.
func TokenQR(token string, size int) ([]byte, error) {
	if token == "" {
		return nil, errors.NewValidationError("token", token, "token is empty")
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(token, qrcode.Medium, size)
	if err != nil {
		return nil, errors.NewValidationError("token", len(token), "token too large for a QR code: "+err.Error())
	}
	return png, nil
}
