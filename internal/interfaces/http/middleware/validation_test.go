package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bistro/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priceInput struct {
	Email    string           `json:"email" binding:"required,email"`
	Price    decimal.Decimal  `json:"price" binding:"positive_decimal,max_decimal=1000"`
	Discount *decimal.Decimal `json:"discount" binding:"omitempty,nonnegative_decimal"`
	Rating   int              `json:"rating" binding:"min=0,max=5"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req priceInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.String(http.StatusOK, req.Price.String())
	})
	return router
}

func post(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupValidator_Decimals(t *testing.T) {
	router := newValidationRouter()

	tests := []struct {
		name   string
		body   string
		status int
		fields []string
	}{
		{"valid", `{"email":"a@b.co","price":"12.50","rating":4}`, http.StatusOK, nil},
		{"numeric price", `{"email":"a@b.co","price":9.99}`, http.StatusOK, nil},
		{"zero price", `{"email":"a@b.co","price":"0"}`, http.StatusBadRequest, []string{"price"}},
		{"negative price", `{"email":"a@b.co","price":"-1"}`, http.StatusBadRequest, []string{"price"}},
		{"price at the cap", `{"email":"a@b.co","price":"1000.00"}`, http.StatusOK, nil},
		{"price above the cap", `{"email":"a@b.co","price":"1000.01"}`, http.StatusBadRequest, []string{"price"}},
		{"huge price", `{"email":"a@b.co","price":"184467440737095516.17"}`, http.StatusBadRequest, []string{"price"}},
		{"zero discount allowed", `{"email":"a@b.co","price":"1","discount":"0"}`, http.StatusOK, nil},
		{"negative discount", `{"email":"a@b.co","price":"1","discount":"-0.01"}`, http.StatusBadRequest, []string{"discount"}},
		{"several failures", `{"email":"nope","price":"0","rating":6}`, http.StatusBadRequest, []string{"email", "price", "rating"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(router, tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.fields == nil {
				return
			}

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

			var got []string
			for _, d := range resp.Error.Details {
				got = append(got, d.Field)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestHandleValidationError_MalformedJSON(t *testing.T) {
	w := post(newValidationRouter(), `{"email":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidJSON, decodeError(t, w).Code)
}

func TestGetValidationMessage_DecimalTags(t *testing.T) {
	w := post(newValidationRouter(), `{"email":"a@b.co","price":"-3"}`)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "positive_decimal", resp.Error.Details[0].Tag)
	assert.Equal(t, "Must be a positive amount", resp.Error.Details[0].Message)
}

func TestGetValidationMessage_MaxDecimal(t *testing.T) {
	w := post(newValidationRouter(), `{"email":"a@b.co","price":"5000"}`)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "max_decimal", resp.Error.Details[0].Tag)
	assert.Equal(t, "Must be at most 1000", resp.Error.Details[0].Message)
}
