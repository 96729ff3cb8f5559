package web

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// Flash is a one-shot notice carried across a redirect in a cookie.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

func setFlash(c *gin.Context, kind, message string) {
	v := url.QueryEscape(kind + "|" + message)
	c.SetCookie(flashCookie, v, 60, "/", "", false, true)
}

// takeFlash reads and clears the flash cookie. Nil when none is set.
func takeFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(decoded, "|")
	if !ok {
		return nil
	}
	return &Flash{Kind: kind, Message: message}
}
