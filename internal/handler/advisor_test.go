package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sakif/ecofinds/internal/handler"
	"github.com/sakif/ecofinds/internal/model"
	"github.com/sakif/ecofinds/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestAdvisorHandler_HandleSuggest(t *testing.T) {
	h := handler.NewAdvisorHandler(service.NewPriceAdvisor())

	t.Run("valid request", func(t *testing.T) {
		reqBody := `{"title":"Desk Lamp","category":"Other","listedPrice":25,"quality":0.8}`
		req := httptest.NewRequest(http.MethodPost, "/api/ai/price-suggest", bytes.NewBufferString(reqBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		h.HandleSuggest(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res model.PriceSuggestResponse
		err := json.NewDecoder(rr.Body).Decode(&res)
		assert.NoError(t, err)
		// Other baseline 50, no title signals, quality 0.8.
		assert.Equal(t, float64(50), res.MarketPrice)
		assert.Equal(t, float64(40), res.FairPrice)
		assert.Equal(t, 0.8, res.QualityAdjusted)
		assert.NotEmpty(t, res.Rationale)
	})

	t.Run("invalid request body", func(t *testing.T) {
		reqBody := `{"title":`
		req := httptest.NewRequest(http.MethodPost, "/api/ai/price-suggest", bytes.NewBufferString(reqBody))
		rr := httptest.NewRecorder()

		h.HandleSuggest(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing listed price", func(t *testing.T) {
		reqBody := `{"title":"Desk Lamp","category":"Other"}`
		req := httptest.NewRequest(http.MethodPost, "/api/ai/price-suggest", bytes.NewBufferString(reqBody))
		rr := httptest.NewRecorder()

		h.HandleSuggest(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var res handler.ErrorResponse
		err := json.NewDecoder(rr.Body).Decode(&res)
		assert.NoError(t, err)
		assert.Equal(t, "validation_error", res.Error)
	})
}
