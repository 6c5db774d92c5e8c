package http

import "net/http"

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	c, err := a.cartSvc.Get(r.Context(), cartID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(c))
}

func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req addCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	c, err := a.cartSvc.Add(r.Context(), cartID, req.ProductID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(c))
}

func (a *API) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	c, err := a.cartSvc.Remove(r.Context(), cartID, urlParam(r, "productID"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(c))
}

func (a *API) handleEmptyCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if err := a.cartSvc.Empty(r.Context(), cartID); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
