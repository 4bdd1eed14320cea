// Package site carries the static identity of the company site: name,
// canonical domain, founding year, and the contact details surfaced in
// structured data. The compiled-in default is the production identity;
// a YAML overlay exists so staging deployments can point at another
// domain without a rebuild.
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Address is the registered office, emitted as schema.org PostalAddress.
type Address struct {
	Street     string `yaml:"street"`
	Locality   string `yaml:"locality"`
	Region     string `yaml:"region"`
	PostalCode string `yaml:"postal_code"`
	Country    string `yaml:"country"`
}

// Config is the read-only site identity record. It is assembled once at
// startup and never mutated afterwards.
type Config struct {
	Name            string   `yaml:"name" validate:"required"`
	LegalName       string   `yaml:"legal_name"`
	Domain          string   `yaml:"domain" validate:"required,fqdn"`
	BaseURL         string   `yaml:"base_url" validate:"required,url"`
	FoundingYear    int      `yaml:"founding_year" validate:"required,gte=1900,lte=2100"`
	ThemeColor      string   `yaml:"theme_color" validate:"omitempty,hexcolor"`
	DefaultKeywords []string `yaml:"default_keywords"`
	DefaultOGImage  string   `yaml:"default_og_image"`
	LogoPath        string   `yaml:"logo"`
	ContactEmail    string   `yaml:"contact_email" validate:"omitempty,email"`
	ContactPhone    string   `yaml:"contact_phone"`
	Address         Address  `yaml:"address"`
}

// Defaults returns the production identity.
func Defaults() Config {
	return Config{
		Name:         "Mirai Staffing",
		LegalName:    "株式会社ミライスタッフィング",
		Domain:       "www.miraiworks.jp",
		BaseURL:      "https://www.miraiworks.jp",
		FoundingYear: 2003,
		ThemeColor:   "#0f6cbd",
		DefaultKeywords: []string{
			"人材派遣",
			"staffing",
			"recruitment",
			"jobs in japan",
		},
		DefaultOGImage: "/assets/img/og-default.png",
		LogoPath:       "/assets/img/logo.png",
		ContactEmail:   "info@miraiworks.jp",
		ContactPhone:   "+81-52-123-4567",
		Address: Address{
			Street:     "栄3-15-33",
			Locality:   "名古屋市中区",
			Region:     "愛知県",
			PostalCode: "460-0008",
			Country:    "JP",
		},
	}
}

// Load returns the defaults, overlaid with the YAML file at path when
// one is given and exists, then validated. A missing overlay file is
// not an error; a malformed or invalid one is.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// defaults only
		case err != nil:
			return Config{}, fmt.Errorf("site: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("site: parse %s: %w", path, err)
			}
		}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("site: invalid config: %w", err)
	}
	return cfg, nil
}
