package api

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"motorist/internal/constants"
)

// Login проверяет пароль администратора и выдаёт cookie сессии.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if !passwordsEqual(req.Password, h.adminPassword) {
		h.log.Warnw("Неудачная попытка входа в админку", "ip", ip)
		h.metrics.LoginAttempt("rejected")
		writeJSONError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	s, err := h.sessions.Create(r.Context(), ip)
	if err != nil {
		h.log.Errorw("Login: не удалось создать сессию", "ip", ip, "error", err)
		h.metrics.LoginAttempt("error")
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constants.SESSION_COOKIE_NAME,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(h.sessions.TTL() / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	h.log.Infow("Вход в админку", "ip", ip)
	h.metrics.LoginAttempt("accepted")
	writeJSONSuccess(w, "Logged in", map[string]any{"expires_at": s.ExpiresAt})
}

// Logout завершает сессию и стирает cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if s, ok := sessionFromContext(r.Context()); ok {
		if err := h.sessions.Destroy(r.Context(), s.ID); err != nil {
			h.log.Errorw("Logout: не удалось удалить сессию", "error", err)
		} else {
			h.log.Infow("Выход из админки", "ip", clientIP(r), "session_ip", s.IP)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SESSION_COOKIE_NAME,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSONSuccess(w, "Logged out", nil)
}

// passwordsEqual сравнивает хеши, чтобы время не зависело от длины пароля.
func passwordsEqual(given, want string) bool {
	if want == "" {
		return false
	}
	a := sha256.Sum256([]byte(given))
	b := sha256.Sum256([]byte(want))
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
