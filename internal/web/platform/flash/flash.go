// Package flash provides short-lived web notices shown after mutating actions.
//
// A notice is carried in a cookie and rendered by the next page load. Each
// notice expires five seconds after it is written; writing a new notice
// replaces the cookie wholesale, so the previous notice's hide deadline is
// discarded rather than racing it.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// CookieName is the canonical cookie used for transient web notices.
const CookieName = "mhs_notice"

// DisplayWindow is how long a notice stays visible once written.
const DisplayWindow = 5000 * time.Millisecond

// Kind classifies notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice stores one transient message.
type Notice struct {
	Kind      Kind   `json:"kind"`
	Message   string `json:"message"`
	ExpiresAt int64  `json:"expires_at"`
}

// Success creates a success notice carrying the given message text.
func Success(message string) Notice {
	return Notice{Kind: KindSuccess, Message: message}
}

// Error creates an error notice carrying the given message text.
func Error(message string) Notice {
	return Notice{Kind: KindError, Message: message}
}

// Write stores a notice cookie for subsequent page renders. The notice
// becomes invisible DisplayWindow after this call.
func Write(w http.ResponseWriter, r *http.Request, notice Notice) {
	writeAt(w, r, notice, time.Now())
}

func writeAt(w http.ResponseWriter, r *http.Request, notice Notice, now time.Time) {
	if w == nil {
		return
	}
	normalized, ok := normalizeNotice(notice)
	if !ok {
		return
	}
	normalized.ExpiresAt = now.Add(DisplayWindow).UnixMilli()
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(DisplayWindow / time.Second),
	})
}

// Read returns the live notice for this request, if any. An expired notice is
// cleared and not returned.
func Read(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	return readAt(w, r, time.Now())
}

func readAt(w http.ResponseWriter, r *http.Request, now time.Time) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return Notice{}, false
	}
	notice, ok := decodeNotice(cookie.Value)
	if !ok {
		Clear(w, r)
		return Notice{}, false
	}
	if now.UnixMilli() >= notice.ExpiresAt {
		Clear(w, r)
		return Notice{}, false
	}
	return notice, true
}

// Clear expires any notice cookie.
func Clear(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func decodeNotice(raw string) (Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	normalized, ok := normalizeNotice(notice)
	if !ok {
		return Notice{}, false
	}
	normalized.ExpiresAt = notice.ExpiresAt
	return normalized, true
}

func normalizeNotice(notice Notice) (Notice, bool) {
	notice.Message = strings.TrimSpace(notice.Message)
	if notice.Message == "" {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindError:
		return notice, true
	default:
		return Notice{}, false
	}
}

func isHTTPS(r *http.Request) bool {
	return r != nil && r.TLS != nil
}
