package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// QR payloads are "ticket:<code>;event:<id>;signature:<hmac>". The signature
// binds the redemption code to its event so a payload scanned at the door
// cannot be replayed against a different event's check-in desk.

func GenerateQRPayload(code string, eventID uuid.UUID, secretKey string) string {
	signature := signQRPayload(code, eventID, secretKey)
	return fmt.Sprintf("ticket:%s;event:%s;signature:%s", code, eventID.String(), signature)
}

func signQRPayload(code string, eventID uuid.UUID, secretKey string) string {
	data := fmt.Sprintf("%s:%s", code, eventID.String())
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// ExtractRedemptionCode pulls the redemption code out of scanned QR data.
// Bare codes (no "ticket:" prefix) are accepted as-is so manual entry at the
// door still works; signed payloads must verify.
func ExtractRedemptionCode(qrData, secretKey string) (string, error) {
	if !strings.HasPrefix(qrData, "ticket:") {
		if qrData == "" || strings.Contains(qrData, ";") {
			return "", fmt.Errorf("invalid QR data format")
		}
		return qrData, nil
	}

	parts := strings.Split(qrData, ";")
	if len(parts) != 3 || !strings.HasPrefix(parts[1], "event:") || !strings.HasPrefix(parts[2], "signature:") {
		return "", fmt.Errorf("invalid QR data format")
	}

	code := strings.TrimPrefix(parts[0], "ticket:")
	eventID, err := uuid.Parse(strings.TrimPrefix(parts[1], "event:"))
	if err != nil {
		return "", fmt.Errorf("invalid event ID in QR data")
	}

	signature := strings.TrimPrefix(parts[2], "signature:")
	expected := signQRPayload(code, eventID, secretKey)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return "", fmt.Errorf("invalid QR code signature")
	}

	return code, nil
}
