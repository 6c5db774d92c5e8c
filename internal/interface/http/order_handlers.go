package http

import (
	"net/http"

	checkoutuc "example.com/storefront/internal/usecase/checkout"
)

type checkoutRequest struct {
	CustomerName string `json:"customer_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Address      string `json:"address" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
}

func (a *API) handleCheckout(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req checkoutRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	o, err := a.checkoutSvc.Checkout(r.Context(), cartID, checkoutuc.Input{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Address:      req.Address,
		Phone:        req.Phone,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapOrder(o))
}

func (a *API) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := a.checkoutSvc.ListOrders(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, mapOrder(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (a *API) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := a.checkoutSvc.GetOrder(r.Context(), urlParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(o))
}
