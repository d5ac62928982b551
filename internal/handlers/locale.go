package handlers

import (
	"github.com/SscSPs/pleasybank_client/internal/utils/accounting"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// requestLanguage picks the label language from the Accept-Language header, falling back
// to the configured default locale.
func requestLanguage(c *gin.Context, fallback language.Tag) language.Tag {
	header := c.GetHeader("Accept-Language")
	if header == "" {
		return accounting.MatchLanguage(fallback)
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return accounting.MatchLanguage(fallback)
	}
	return accounting.MatchLanguage(append(tags, fallback)...)
}
