package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/bidboard/common"
	"github.com/stretchr/testify/assert"
)

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		handler        gin.HandlerFunc
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "api error with kind and fields",
			handler: func(c *gin.Context) {
				c.Error(common.APIError{
					Status:  http.StatusBadRequest,
					Kind:    common.KindInvalidStatus,
					Message: "invalid bid status",
					Fields:  map[string]any{"provided": "Done"},
				})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid bid status","kind":"invalid_status","fields":{"provided":"Done"}}`,
		},
		{
			name: "api error without kind",
			handler: func(c *gin.Context) {
				c.Error(common.Errf(http.StatusNotFound, "nothing here"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"nothing here"}`,
		},
		{
			name: "plain error becomes 500",
			handler: func(c *gin.Context) {
				c.Error(errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"boom","kind":"store_unavailable"}`,
		},
		{
			name: "last error wins",
			handler: func(c *gin.Context) {
				c.Error(errors.New("first"))
				c.Error(common.KindErrf(http.StatusConflict, common.KindInvalidTransition, "second"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"second","kind":"invalid_transition"}`,
		},
		{
			name: "written response is left alone",
			handler: func(c *gin.Context) {
				c.JSON(http.StatusAccepted, gin.H{"ok": true})
				c.Error(errors.New("late"))
			},
			expectedStatus: http.StatusAccepted,
			expectedBody:   `{"ok":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/", tt.handler)

			w := serve(r, http.MethodGet, "/")
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
