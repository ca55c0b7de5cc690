package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/smallbiznis/vitrine/internal/config"
)

const flashSessionName = "vitrine_flash"

// Flash carries one notification across the redirect that follows a form
// submission.
type Flash struct {
	store sessions.Store
}

func NewFlash(cfg config.Config) *Flash {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	return &Flash{store: store}
}

func (f *Flash) Set(c *gin.Context, message string) error {
	session, err := f.store.Get(c.Request, flashSessionName)
	if err != nil && session == nil {
		return err
	}
	session.AddFlash(message)
	return session.Save(c.Request, c.Writer)
}

// Pop returns the pending notification, if any, and clears it.
func (f *Flash) Pop(c *gin.Context) string {
	session, err := f.store.Get(c.Request, flashSessionName)
	if err != nil || session == nil {
		return ""
	}
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return ""
	}
	_ = session.Save(c.Request, c.Writer)

	message, _ := flashes[0].(string)
	return message
}
