package seo

import (
	"encoding/json"
	"strconv"

	"miraiworks.jp/mirai-web/internal/site"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization builds the company's schema.org Organization record from
// the static site identity.
func Organization(cfg site.Config) map[string]any {
	m := map[string]any{
		"@context":     "https://schema.org",
		"@type":        "Organization",
		"name":         cfg.Name,
		"url":          cfg.BaseURL,
		"foundingDate": strconv.Itoa(cfg.FoundingYear),
	}
	if cfg.LegalName != "" {
		m["legalName"] = cfg.LegalName
	}
	if cfg.LogoPath != "" {
		m["logo"] = cfg.BaseURL + cfg.LogoPath
	}
	if cfg.ContactEmail != "" || cfg.ContactPhone != "" {
		cp := map[string]any{
			"@type":       "ContactPoint",
			"contactType": "customer support",
		}
		if cfg.ContactEmail != "" {
			cp["email"] = cfg.ContactEmail
		}
		if cfg.ContactPhone != "" {
			cp["telephone"] = cfg.ContactPhone
		}
		m["contactPoint"] = cp
	}
	if cfg.Address != (site.Address{}) {
		m["address"] = map[string]any{
			"@type":           "PostalAddress",
			"streetAddress":   cfg.Address.Street,
			"addressLocality": cfg.Address.Locality,
			"addressRegion":   cfg.Address.Region,
			"postalCode":      cfg.Address.PostalCode,
			"addressCountry":  cfg.Address.Country,
		}
	}
	return m
}

// WebSite returns a minimal WebSite schema with optional SearchAction.
func WebSite(cfg site.Config, searchActionURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      cfg.BaseURL,
	}
	if searchActionURL != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchActionURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// JobPosting returns a minimal schema.org JobPosting payload for a
// listed position.
func JobPosting(cfg site.Config, title, description, url, datePosted, employmentType, region string) map[string]any {
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "JobPosting",
		"title":       title,
		"description": description,
		"hiringOrganization": map[string]any{
			"@type": "Organization",
			"name":  cfg.Name,
			"url":   cfg.BaseURL,
		},
	}
	if url != "" {
		m["url"] = url
	}
	if datePosted != "" {
		m["datePosted"] = datePosted
	}
	if employmentType != "" {
		m["employmentType"] = employmentType
	}
	if region != "" {
		m["jobLocation"] = map[string]any{
			"@type": "Place",
			"address": map[string]any{
				"@type":          "PostalAddress",
				"addressRegion":  region,
				"addressCountry": "JP",
			},
		}
	}
	return m
}

// NewsArticle returns a minimal NewsArticle schema payload.
func NewsArticle(headline, url, imageURL, datePublished string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "NewsArticle",
		"headline": headline,
	}
	if url != "" {
		m["url"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	if datePublished != "" {
		m["datePublished"] = datePublished
	}
	return m
}
