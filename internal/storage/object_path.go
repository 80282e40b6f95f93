package storage

import (
	"fmt"
	"mime"
	"path"
	"strings"
	"time"
)

// attachmentCategory is where uploads land when the caller supplies no
// category of its own.
const attachmentCategory = "attachments"

// sanitizeKeyPart lowercases a path component and keeps alphanumerics, dashes,
// and underscores. Spaces turn into dashes so human file names stay readable
// in object listings.
func sanitizeKeyPart(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, value)
	return strings.Trim(mapped, "-_")
}

func normalizeExtension(ext string) string {
	cleaned := sanitizeKeyPart(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if cleaned == "" {
		return "bin"
	}
	return cleaned
}

// buildObjectPath lays keys out as <category>/<year>/<month>/<base>.<ext>.
// Month-level directories keep listings manageable without per-day fan-out.
func buildObjectPath(category, baseName, ext string) string {
	now := time.Now().UTC()
	cat := sanitizeKeyPart(category)
	if cat == "" {
		cat = attachmentCategory
	}
	base := sanitizeKeyPart(baseName)
	if base == "" {
		base = fmt.Sprintf("%d", now.UnixNano())
	}
	return path.Join(cat, now.Format("2006/01"), base+"."+normalizeExtension(ext))
}

func detectContentType(ext string) string {
	if typeName := mime.TypeByExtension("." + normalizeExtension(ext)); typeName != "" {
		return typeName
	}
	return "application/octet-stream"
}

func trimPrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func joinPrefix(prefix, key string) string {
	prefix = trimPrefix(prefix)
	key = strings.TrimLeft(key, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}

// SanitizeToken exposes the key-part sanitiser for callers composing their own
// base names.
func SanitizeToken(value string) string {
	return sanitizeKeyPart(value)
}
