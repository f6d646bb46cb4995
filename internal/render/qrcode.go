package render

import (
	"image"
	"sync"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// GenerateQRCodeImage returns a borderless QR code image for payload.
// If payload is empty, it returns (nil, nil).
func GenerateQRCodeImage(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	return code.Image(sizePx), nil
}

// QRCache keeps the most recently generated code; screens redraw the same
// URL every frame.
type QRCache struct {
	mu      sync.Mutex
	payload string
	size    int
	img     image.Image
}

func (c *QRCache) Image(payload string, sizePx int) (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.img != nil && c.payload == payload && c.size == sizePx {
		return c.img, nil
	}
	img, err := GenerateQRCodeImage(payload, sizePx)
	if err != nil {
		return nil, err
	}
	c.payload, c.size, c.img = payload, sizePx, img
	return img, nil
}
