package auth

import (
	"net/http"
	"time"
)

type CookieSettings struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

func SetSessionCookie(w http.ResponseWriter, cs CookieSettings, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cs.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cs.TTL.Seconds()),
		Expires:  time.Now().Add(cs.TTL),
		HttpOnly: true,
		Secure:   cs.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, cs CookieSettings) {
	http.SetCookie(w, &http.Cookie{
		Name:     cs.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cs.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
