package render

import (
	"regexp"
	"strings"
)

var (
	filenameStrip      = regexp.MustCompile(`[^a-z0-9\s]+`)
	filenameWhitespace = regexp.MustCompile(`\s+`)
	filenameHyphenRun  = regexp.MustCompile(`-+`)
)

// sanitizeFilenamePart lowercases, strips everything outside [a-z0-9\s],
// collapses whitespace runs to single hyphens, collapses hyphen runs and
// trims leading/trailing hyphens.
func sanitizeFilenamePart(value string) string {
	value = strings.ToLower(value)
	value = filenameStrip.ReplaceAllString(value, "")
	value = filenameWhitespace.ReplaceAllString(value, "-")
	value = filenameHyphenRun.ReplaceAllString(value, "-")
	return strings.Trim(value, "-")
}

// ExportFilename derives the download filename for an exported invoice from
// the recipient display name and the invoice number.
func ExportFilename(recipientName, invoiceNumber string) string {
	parts := []string{"invoice"}
	if base := sanitizeFilenamePart(recipientName); base != "" {
		parts = append(parts, base)
	}
	if number := strings.TrimSpace(invoiceNumber); number != "" {
		parts = append(parts, number)
	}
	return strings.Join(parts, "-") + ".pdf"
}
