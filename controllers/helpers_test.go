package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"typed request error keeps its status", newRequestError(http.StatusConflict, "Insufficient stock"),
			http.StatusConflict, `{"error":"Insufficient stock"}`},
		{"wrapped request error unwraps", fmt.Errorf("placing order: %w", newRequestError(http.StatusBadRequest, "Quantity must be at least 1")),
			http.StatusBadRequest, `{"error":"Quantity must be at least 1"}`},
		{"plain error maps to 500", errors.New("connection reset"),
			http.StatusInternalServerError, `{"error":"connection reset"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
