package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	clientCookie = "jetdash_client"
	themeCookie  = "jetdash_theme"
	themeKey     = "theme"

	ThemeLight = "light"
	ThemeDark  = "dark"

	cookieMaxAge = 365 * 24 * 60 * 60
)

// clientID makes sure every browser carries a stable id that preferences are
// stored under
func (s *Server) clientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(clientCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(clientCookie, id, cookieMaxAge, "/", "", s.cfg.SecureCookies, true)
		}
		c.Set(clientCookie, id)
		c.Next()
	}
}

// theme resolves the preference for the current client. The database wins
// over the cookie; anything unrecognised means light.
func (s *Server) theme(c *gin.Context) string {
	if s.deps.Preferences != nil {
		if id := c.GetString(clientCookie); id != "" {
			value, ok, err := s.deps.Preferences.Get(id, themeKey)
			if err != nil {
				slog.Warn("Error reading theme preference", "client", id, "error", err)
			} else if ok {
				return normalizeTheme(value)
			}
		}
	}
	if value, err := c.Cookie(themeCookie); err == nil {
		return normalizeTheme(value)
	}
	return ThemeLight
}

func (s *Server) setTheme(c *gin.Context, theme string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(themeCookie, theme, cookieMaxAge, "/", "", s.cfg.SecureCookies, false)

	if s.deps.Preferences == nil {
		return
	}
	id := c.GetString(clientCookie)
	if err := s.deps.Preferences.Set(id, themeKey, theme); err != nil {
		slog.Warn("Error saving theme preference", "client", id, "error", err)
	}
}

func normalizeTheme(v string) string {
	if v == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// handleTheme flips the theme and sends the browser back where it came from
func (s *Server) handleTheme(c *gin.Context) {
	next := ThemeDark
	if s.theme(c) == ThemeDark {
		next = ThemeLight
	}
	s.setTheme(c, next)
	c.Redirect(http.StatusSeeOther, safeReturn(c.PostForm("return")))
}

// safeReturn only allows local paths so the form cannot redirect off-site
func safeReturn(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return "/"
	}
	return path
}
