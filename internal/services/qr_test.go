package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQR(t *testing.T) {
	service := NewQRService(logrus.New())

	png, err := service.GenerateQR("vless://uuid@example.com:443")
	require.NoError(t, err)

	// PNG signature
	assert.True(t, len(png) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestSaveQRWritesGeneratedPNG(t *testing.T) {
	service := NewQRService(logrus.New())
	path := filepath.Join(t.TempDir(), "client-qr.png")

	require.NoError(t, service.SaveQR("trojan://secret@example.com:443", path))

	written, err := os.ReadFile(path)
	require.NoError(t, err)

	expected, err := service.GenerateQR("trojan://secret@example.com:443")
	require.NoError(t, err)
	assert.Equal(t, expected, written)
}
