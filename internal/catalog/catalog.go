// Package catalog holds the remote catalog's record shape and the pure
// helpers the presentation layer needs to render one.
package catalog

import (
	"strconv"
	"strings"
)

// ImageLinks carries the cover variants a volume may expose. Any subset
// can be absent.
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
	Medium         string `json:"medium,omitempty"`
	Large          string `json:"large,omitempty"`
	ExtraLarge     string `json:"extraLarge,omitempty"`
}

// VolumeInfo is the subset of catalog metadata the application reads.
type VolumeInfo struct {
	Title         string      `json:"title,omitempty"`
	Authors       []string    `json:"authors,omitempty"`
	Description   string      `json:"description,omitempty"`
	Categories    []string    `json:"categories,omitempty"`
	PublishedDate string      `json:"publishedDate,omitempty"`
	Publisher     string      `json:"publisher,omitempty"`
	PageCount     int         `json:"pageCount,omitempty"`
	ImageLinks    *ImageLinks `json:"imageLinks,omitempty"`
}

// APIError is the error payload the catalog returns in place of a volume
// for unknown identifiers. It travels inside the record on purpose: the
// lookup path passes such responses through instead of raising.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// BookRecord is one catalog volume. Fields beyond these are dropped on
// decode; the application never writes records back to the catalog.
type BookRecord struct {
	ID         string      `json:"id,omitempty"`
	VolumeInfo *VolumeInfo `json:"volumeInfo,omitempty"`
	Error      *APIError   `json:"error,omitempty"`
}

// Empty reports whether the record carries no usable volume data, either
// because the catalog returned nothing or because it returned an error
// payload.
func (r BookRecord) Empty() bool {
	return r.Error != nil || (r.ID == "" && r.VolumeInfo == nil)
}

// CoverURL picks the best available cover image, preferring larger
// variants, and upgrades plain-http URLs to https so covers render on
// pages served over TLS. Returns "" when the record has no images.
func CoverURL(r BookRecord) string {
	if r.VolumeInfo == nil || r.VolumeInfo.ImageLinks == nil {
		return ""
	}
	links := r.VolumeInfo.ImageLinks
	url := links.ExtraLarge
	if url == "" {
		url = links.Large
	}
	if url == "" {
		url = links.Medium
	}
	if url == "" {
		url = links.Thumbnail
	}
	return strings.Replace(url, "http://", "https://", 1)
}

// PublicationInfo joins the publication facts that are present into one
// display line, e.g. "Published: 2001 • Publisher: Tor • 304 pages".
func PublicationInfo(v VolumeInfo) string {
	var parts []string
	if v.PublishedDate != "" {
		parts = append(parts, "Published: "+v.PublishedDate)
	}
	if v.Publisher != "" {
		parts = append(parts, "Publisher: "+v.Publisher)
	}
	if v.PageCount > 0 {
		parts = append(parts, strconv.Itoa(v.PageCount)+" pages")
	}
	return strings.Join(parts, " • ")
}
