package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/pleasybank_client/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetupSwaggerRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		production bool
		wantStatus int
	}{
		{name: "served outside production", production: false, wantStatus: http.StatusOK},
		{name: "hidden in production", production: true, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			setupSwaggerRoutes(r, &config.Config{IsProduction: tt.production})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"title": "PleasyBank Client API"`)
				assert.Contains(t, w.Body.String(), `"/accounts/{accountID}/settlement/counterpart"`)
				assert.Contains(t, w.Body.String(), `"basePath": "/api/v1"`)
			}
		})
	}
}
