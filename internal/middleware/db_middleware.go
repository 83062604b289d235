package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gracechurch/server/internal/mailer"
	"github.com/gracechurch/server/internal/storage"
)

func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

func StorageMiddleware(store *storage.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("storage", store)
		c.Next()
	}
}

func GetStorage(c *gin.Context) *storage.Client {
	store, exists := c.Get("storage")
	if !exists {
		return nil
	}
	return store.(*storage.Client)
}

func MailerMiddleware(m *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("mailer", m)
		c.Next()
	}
}

func GetMailer(c *gin.Context) *mailer.Mailer {
	m, exists := c.Get("mailer")
	if !exists {
		return nil
	}
	return m.(*mailer.Mailer)
}
