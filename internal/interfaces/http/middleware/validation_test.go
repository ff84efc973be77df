package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pos/backend/internal/interfaces/http/dto"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	SetupValidator()
	gin.SetMode(gin.TestMode)

	type input struct {
		PaymentType string `json:"payment_type" binding:"required,oneof=CASH CREDIT"`
		Amount      int    `json:"amount" binding:"required,gt=0"`
	}

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req input
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	t.Run("lists failed fields by json tag", func(t *testing.T) {
		body := strings.NewReader(`{"payment_type": "WIRE", "amount": -1}`)
		req := httptest.NewRequest(http.MethodPost, "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		require.Len(t, resp.Error.Details, 2)

		fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
		assert.Contains(t, fields, "payment_type")
		assert.Contains(t, fields, "amount")
	})

	t.Run("passes valid input through", func(t *testing.T) {
		body := strings.NewReader(`{"payment_type": "CASH", "amount": 5}`)
		req := httptest.NewRequest(http.MethodPost, "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed json gets a plain bad request", func(t *testing.T) {
		body := strings.NewReader(`{`)
		req := httptest.NewRequest(http.MethodPost, "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
	})
}

func TestGetValidationMessage(t *testing.T) {
	type subject struct {
		Name string `binding:"required" json:"name"`
		Kind string `binding:"oneof=RECEIPT PAYMENT" json:"kind"`
	}

	v := validator.New()
	v.SetTagName("binding")
	err := v.Struct(subject{Kind: "TRANSFER"})
	require.Error(t, err)

	for _, e := range err.(validator.ValidationErrors) {
		switch e.StructField() {
		case "Name":
			assert.Equal(t, "This field is required", getValidationMessage(e))
		case "Kind":
			assert.Equal(t, "Must be one of: RECEIPT PAYMENT", getValidationMessage(e))
		}
	}
}
