package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
}

type lineInput struct {
	Product  string          `json:"product" binding:"required"`
	Quantity int             `json:"quantity" binding:"required,gte=1"`
	Discount decimal.Decimal `json:"discount" binding:"gte=0"`
}

type cartInput struct {
	Items []lineInput `json:"items" binding:"required,min=1,dive"`
}

func bind(t *testing.T, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var in cartInput
	return w, BindJSON(c, &in)
}

func TestBindJSONReportsFieldErrors(t *testing.T) {
	w, ok := bind(t, `{"items":[{"product":"p1","quantity":0,"discount":-1}]}`)
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors []FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "items[0].quantity", body.Errors[0].Path)
	assert.Equal(t, "items[0].discount", body.Errors[1].Path)
	assert.Equal(t, "body", body.Errors[0].Location)
}

func TestBindJSONEmptyItems(t *testing.T) {
	w, ok := bind(t, `{"items":[]}`)
	require.False(t, ok)
	assert.Contains(t, w.Body.String(), `"path":"items"`)
}

func TestBindJSONMalformed(t *testing.T) {
	w, ok := bind(t, `{"items":`)
	require.False(t, ok)
	assert.JSONEq(t, `{"message":"Invalid request body"}`, w.Body.String())
}

func TestBindJSONValid(t *testing.T) {
	_, ok := bind(t, `{"items":[{"product":"p1","quantity":2,"discount":"1.50"}]}`)
	assert.True(t, ok)
}

func TestErrorMapsKinds(t *testing.T) {
	tests := []struct {
		err    error
		status int
		body   string
	}{
		{apperror.NotFound("Sale not found"), http.StatusNotFound, `{"message":"Sale not found"}`},
		{apperror.InsufficientStock("Insufficient stock for Tile. Available: 1"), http.StatusBadRequest, `{"message":"Insufficient stock for Tile. Available: 1"}`},
		{errors.New("db down"), http.StatusInternalServerError, `{"message":"Error creating sale","error":"db down"}`},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/sales", nil)

		Error(c, logger.NewNop(), tt.err, "creating sale")
		assert.Equal(t, tt.status, w.Code)
		assert.JSONEq(t, tt.body, w.Body.String())
	}
}

func TestPaginated(t *testing.T) {
	body := Paginated("sales", []string{"a"}, 21, Page{Page: 2, Limit: 10})
	assert.Equal(t, 3, body["totalPages"])
	assert.Equal(t, 2, body["currentPage"])
	assert.Equal(t, 21, body["total"])
}
