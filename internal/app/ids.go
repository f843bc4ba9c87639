package app

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// newID returns a prefixed random identifier such as "bkg-3f9a0c12e7".
// Ten hex characters of entropy keeps ids short enough for vault slips and
// QR payloads while collisions stay negligible at this catalog's scale.
func newID(prefix string) string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return prefix + "-" + hex.EncodeToString(b)
}

// newSKU generates a human-readable SKU like "AUR-RIN-4F2A" from a category.
func newSKU(category string) string {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	cat := strings.ToUpper(category)
	if len(cat) > 3 {
		cat = cat[:3]
	}
	return "AUR-" + cat + "-" + strings.ToUpper(hex.EncodeToString(b))
}
