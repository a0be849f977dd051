// File: internal/infra/web/handlers.go
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"telegram-stars-store/internal/domain"
	"telegram-stars-store/internal/domain/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// loginHandler exchanges the configured API key for a session token.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if s.cfg.APIKey == "" || req.APIKey != s.cfg.APIKey {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	token, err := s.auth.Mint(w)
	if err != nil {
		s.log.Error().Err(err).Msg("mint session token")
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Token string `json:"token"`
	}{Token: token})
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.statsUC.Snapshot(r.Context())
	if err != nil {
		http.Error(w, "Failed to get stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		PaymentCount        int64 `json:"payment_count"`
		RevenueTotal        int64 `json:"revenue_total"`
		ActiveSubscriptions int64 `json:"active_subscriptions"`
	}{
		PaymentCount:        st.PaymentCount,
		RevenueTotal:        st.RevenueTotal,
		ActiveSubscriptions: st.ActiveSubscriptions,
	})
}

type productView struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	DurationDays int    `json:"duration_days"`
	Active       bool   `json:"active"`
}

func toProductView(p *model.Product) productView {
	return productView{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Amount:       p.Amount,
		Currency:     p.Currency,
		DurationDays: p.DurationDays,
		Active:       p.Active,
	}
}

func (s *Server) productsListHandler(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.AllProducts(r.Context())
	if err != nil {
		http.Error(w, "Failed to list products", http.StatusInternalServerError)
		return
	}
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	writeJSON(w, http.StatusOK, struct {
		Data []productView `json:"data"`
	}{Data: views})
}

type productCreateRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	DurationDays int    `json:"duration_days"`
}

func (s *Server) productsCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req productCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Currency == "" {
		req.Currency = "XTR"
	}
	p, err := s.catalog.Create(r.Context(), req.Title, req.Description, req.Amount, req.Currency, req.DurationDays)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, toProductView(p))
}

func (s *Server) refundsHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	recs, err := s.refunds.History(r.Context(), limit)
	if err != nil {
		http.Error(w, "Failed to list refunds", http.StatusInternalServerError)
		return
	}
	type refundView struct {
		ID       int64  `json:"id"`
		ChargeID string `json:"charge_id"`
		AdminID  int64  `json:"admin_id"`
		Reason   string `json:"reason"`
		Date     string `json:"date"`
	}
	views := make([]refundView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, refundView{
			ID:       rec.ID,
			ChargeID: rec.ChargeID,
			AdminID:  rec.AdminID,
			Reason:   rec.Reason,
			Date:     rec.Date.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, struct {
		Data []refundView `json:"data"`
	}{Data: views})
}
