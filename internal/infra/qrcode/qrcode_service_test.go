package qrcode

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestQRCodeService_GenerateProductQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	png, err := svc.GenerateProductQR(uuid.New())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader))
}

func TestQRCodeService_ParseProductQR_RoundTrip(t *testing.T) {
	svc := NewQRCodeService(256, "M")
	productID := uuid.New()

	payload, err := json.Marshal(QRCodeData{ProductID: productID.String(), Type: "product"})
	require.NoError(t, err)

	parsed, err := svc.ParseProductQR(string(payload))
	require.NoError(t, err)
	assert.Equal(t, productID, parsed)
}

func TestQRCodeService_ParseProductQR_Rejects(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	_, err := svc.ParseProductQR("not-json")
	require.Error(t, err)

	payload, err := json.Marshal(QRCodeData{ProductID: uuid.NewString(), Type: "user"})
	require.NoError(t, err)
	_, err = svc.ParseProductQR(string(payload))
	require.Error(t, err)

	payload, err = json.Marshal(QRCodeData{ProductID: "not-a-uuid", Type: "product"})
	require.NoError(t, err)
	_, err = svc.ParseProductQR(string(payload))
	require.Error(t, err)
}

func TestNewQRCodeService_UnknownLevelDefaultsToMedium(t *testing.T) {
	svc := NewQRCodeService(128, "bogus").(*qrcodeService)
	assert.Equal(t, NewQRCodeService(128, "M").(*qrcodeService).errorCorrectionLevel, svc.errorCorrectionLevel)
}
