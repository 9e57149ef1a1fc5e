// Package qr renders a vendor's join link as a QR code, either as a PNG or
// as a printable HTML page for the counter.
package qr

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"image/color"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Size is the PNG edge length in pixels.
const Size = 220

var (
	foreground = color.RGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
	background = color.White
)

// PNG encodes link as a QR code image.
func PNG(link string) ([]byte, error) {
	code, err := encode(link)
	if err != nil {
		return nil, err
	}
	png, err := code.PNG(Size)
	if err != nil {
		return nil, fmt.Errorf("render qr png: %w", err)
	}
	return png, nil
}

// Terminal renders link as block characters for printing to a terminal.
func Terminal(link string) (string, error) {
	code, err := encode(link)
	if err != nil {
		return "", err
	}
	return code.ToSmallString(false), nil
}

func encode(link string) (*qrcode.QRCode, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil, errors.New("qr link is empty")
	}
	code, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	code.ForegroundColor = foreground
	code.BackgroundColor = background
	return code, nil
}

// Page is the data for the printable sign.
type Page struct {
	BusinessName string
	Link         string
}

var pageTemplate = template.Must(template.New("qr").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; text-align: center; padding: 20px; color: #2c3e50; }
.container { max-width: 500px; margin: 0 auto; }
h1 { margin-bottom: 10px; }
.instructions { color: #7f8c8d; margin-bottom: 20px; }
.qr img { width: {{.Size}}px; height: {{.Size}}px; }
.link { margin-top: 20px; font-size: 14px; word-break: break-all; }
.footer { margin-top: 30px; font-size: 12px; color: #95a5a6; }
</style>
</head>
<body>
<div class="container">
<h1>{{.Title}}</h1>
<p class="instructions">Scan to join our waitlist</p>
<div class="qr"><img src="{{.Image}}" alt="Waitlist QR code"></div>
<p class="link">{{.Link}}</p>
<p class="footer">Powered by InLine</p>
</div>
</body>
</html>
`))

// HTML renders a printable page with the QR code embedded as a data URL.
func HTML(p Page) ([]byte, error) {
	png, err := PNG(p.Link)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(p.BusinessName)
	if title == "" {
		title = "Join our waitlist"
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, struct {
		Title string
		Link  string
		Size  int
		Image template.URL
	}{
		Title: title,
		Link:  strings.TrimSpace(p.Link),
		Size:  Size,
		Image: template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
	})
	if err != nil {
		return nil, fmt.Errorf("render qr page: %w", err)
	}
	return buf.Bytes(), nil
}
