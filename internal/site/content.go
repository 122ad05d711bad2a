package site

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
)

//go:embed content.toml
var embeddedContent []byte

// ErrInvalidContent is returned when the content file is missing required
// values.
var ErrInvalidContent = errors.New("invalid site content")

// Content is the site copy that lives next to the code rather than in the
// content API: hero media, contacts and the default menu.
type Content struct {
	Site    SiteInfo `toml:"site"`
	Contact Contact  `toml:"contact"`
	Hero    Hero     `toml:"hero"`
}

// SiteInfo holds site-wide settings.
type SiteInfo struct {
	Name        string `toml:"name"`
	DefaultMenu string `toml:"default_menu"`
	MenuPDF     string `toml:"menu_pdf"`
	Since       int    `toml:"since"`
}

// Contact holds the booking channels.
type Contact struct {
	WhatsApp  string `toml:"whatsapp"`
	Phone     string `toml:"phone"`
	Instagram string `toml:"instagram"`
	Address   string `toml:"address"`
}

// WhatsAppURL returns the wa.me chat link.
func (c Contact) WhatsAppURL() string {
	return "https://wa.me/" + digits(c.WhatsApp)
}

// PhoneURL returns the tel: link.
func (c Contact) PhoneURL() string {
	return "tel:+" + digits(c.Phone)
}

// Hero holds the background media of the hero section.
type Hero struct {
	Image       string      `toml:"image"`
	MobileImage string      `toml:"mobile_image"`
	Collage     []string    `toml:"collage"`
	Videos      []HeroVideo `toml:"videos"`
}

// HeroVideo is one clip of the background rotation.
type HeroVideo struct {
	Src    string `toml:"src"`
	Poster string `toml:"poster"`
}

// LoadContent reads the content file at path, or the embedded default when
// path is empty.
func LoadContent(path string) (Content, error) {
	data := embeddedContent
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Content{}, fmt.Errorf("read content %s: %w", path, err)
		}
		data = b
	}
	return ParseContent(data)
}

// ParseContent decodes and validates a TOML content document.
func ParseContent(data []byte) (Content, error) {
	var c Content
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Content{}, fmt.Errorf("parse content: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Content{}, fmt.Errorf("%w: unknown key %s", ErrInvalidContent, undecoded[0])
	}
	if strings.TrimSpace(c.Site.DefaultMenu) == "" {
		return Content{}, fmt.Errorf("%w: site.default_menu is required", ErrInvalidContent)
	}
	if digits(c.Contact.WhatsApp) == "" || digits(c.Contact.Phone) == "" {
		return Content{}, fmt.Errorf("%w: contact.whatsapp and contact.phone are required", ErrInvalidContent)
	}
	for i, v := range c.Hero.Videos {
		if strings.TrimSpace(v.Src) == "" {
			return Content{}, fmt.Errorf("%w: hero.videos[%d].src is empty", ErrInvalidContent, i)
		}
	}
	return c, nil
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
