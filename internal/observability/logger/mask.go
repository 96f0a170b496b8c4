package logger

import (
	"net/http"
	"strings"
)

// SafeFieldsFromRequest builds the request block of an access log line:
// method, route path, body size, and headers with credentials masked. Owner
// identity (X-Owner-Id) is logged as-is; it is an identifier, not a secret.
func SafeFieldsFromRequest(req *http.Request) map[string]any {
	if req == nil {
		return map[string]any{}
	}
	size := req.ContentLength
	if size < 0 {
		size = 0
	}
	return map[string]any{
		"method":         req.Method,
		"path":           req.URL.Path,
		"content_length": size,
		"headers":        MaskHeaders(req.Header),
	}
}

// MaskHeaders copies headers, masking Authorization and Cookie values.
// Billfold does no credential checking itself, but proxies in front of it
// routinely forward both headers.
func MaskHeaders(headers http.Header) map[string]string {
	masked := make(map[string]string, len(headers))
	for key, values := range headers {
		joined := strings.Join(values, ",")
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "authorization":
			masked[key] = MaskAuthorization(joined)
		case "cookie":
			masked[key] = MaskCookie(joined)
		default:
			masked[key] = joined
		}
	}
	return masked
}

// MaskAuthorization keeps the Bearer scheme visible and masks the token to
// its last four characters.
func MaskAuthorization(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parts := strings.Fields(value)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return "Bearer " + maskTail(parts[1])
	}
	return maskTail(value)
}

// MaskCookie masks each cookie value while keeping the cookie names.
func MaskCookie(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parts := strings.Split(value, ";")
	masked := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		if idx := strings.Index(segment, "="); idx >= 0 {
			name := strings.TrimSpace(segment[:idx])
			val := strings.TrimSpace(segment[idx+1:])
			segment = name + "=" + maskTail(val)
		} else {
			segment = maskTail(segment)
		}
		masked = append(masked, segment)
	}
	return strings.Join(masked, "; ")
}

func maskTail(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****" + value
	}
	return "****" + value[len(value)-4:]
}
