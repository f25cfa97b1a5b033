package handler

import (
	"net/http"

	"github.com/sakif/ecofinds/internal/model"
	"github.com/sakif/ecofinds/internal/service"
)

// AdvisorHandler exposes the fair-price suggestion route.
type AdvisorHandler struct {
	advisor *service.PriceAdvisor
}

func NewAdvisorHandler(advisor *service.PriceAdvisor) *AdvisorHandler {
	return &AdvisorHandler{advisor: advisor}
}

// HandleSuggest estimates a fair second-hand price for a prospective
// listing, along with the sustainability savings of buying used.
//
// HTTP: POST /api/ai/price-suggest
func (h *AdvisorHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	var req model.PriceSuggestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.advisor.Suggest(req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
