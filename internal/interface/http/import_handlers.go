package http

import (
	"errors"
	"net/http"
	"strconv"

	importeruc "example.com/storefront/internal/usecase/importer"
)

func (a *API) handleImportProduct(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		respondError(w, http.StatusBadRequest, errors.New("product id is required"))
		return
	}
	externalID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("product id must be numeric"))
		return
	}

	d, err := a.importSvc.Import(r.Context(), externalID)
	if err != nil {
		switch {
		case errors.Is(err, importeruc.ErrNotFound):
			respondError(w, http.StatusNotFound, err)
		case errors.Is(err, importeruc.ErrNotConfigured):
			respondError(w, http.StatusInternalServerError, err)
		default:
			respondError(w, http.StatusBadGateway, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, mapDraft(d))
}
