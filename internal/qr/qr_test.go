package qr

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
)

const link = "http://localhost:4200/customer/7"

func TestPNG(t *testing.T) {
	data, err := PNG(link)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != Size || b.Dy() != Size {
		t.Fatalf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), Size, Size)
	}
	// The quiet zone is background.
	r, g, b, _ := img.At(0, 0).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Fatalf("corner = %x %x %x, want white", r, g, b)
	}
}

func TestPNG_EmptyLink(t *testing.T) {
	if _, err := PNG("  "); err == nil {
		t.Fatalf("PNG(empty) should fail")
	}
	if _, err := HTML(Page{BusinessName: "Cafe"}); err == nil {
		t.Fatalf("HTML without link should fail")
	}
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(link)
	if err != nil {
		t.Fatalf("Terminal: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines < 10 {
		t.Fatalf("Terminal rendered %d lines, want a full code", lines)
	}
}

func TestHTML(t *testing.T) {
	page, err := HTML(Page{BusinessName: "Ben & Jerry's", Link: link})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	out := string(page)
	for _, want := range []string{
		"<h1>Ben &amp; Jerry&#39;s</h1>",
		"Scan to join our waitlist",
		`src="data:image/png;base64,`,
		link,
		"Powered by InLine",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("HTML missing %q", want)
		}
	}
}

func TestHTML_DefaultTitle(t *testing.T) {
	page, err := HTML(Page{Link: link})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(string(page), "<h1>Join our waitlist</h1>") {
		t.Fatalf("HTML missing default title")
	}
}
