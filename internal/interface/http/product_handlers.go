package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	domproduct "example.com/storefront/internal/domain/product"
	cataloguc "example.com/storefront/internal/usecase/catalog"
	productuc "example.com/storefront/internal/usecase/product"
)

const maxUploadBytes = 32 << 20

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	criteria, err := viewCriteriaFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	filter := domproduct.ListFilter{
		Category:    r.URL.Query().Get("category"),
		Subcategory: r.URL.Query().Get("subcategory"),
	}

	products, err := a.productSvc.List(r.Context(), filter)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	view := cataloguc.DeriveView(products, criteria)
	resp := make([]map[string]any, 0, len(view))
	for _, p := range view {
		resp = append(resp, mapProduct(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.productSvc.GetByID(r.Context(), urlParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

func (a *API) handleListProductsAdmin(w http.ResponseWriter, r *http.Request) {
	filter := domproduct.ListFilter{
		Category:    r.URL.Query().Get("category"),
		Subcategory: r.URL.Query().Get("subcategory"),
	}

	products, err := a.productSvc.List(r.Context(), filter)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

// handleCreateProduct accepts the admin form as multipart/form-data: the
// scalar product fields plus an "image" part and zero or more "images[N]"
// parts, N counted from 0 with no gaps.
func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Errorf("parse form: %w", err))
		return
	}

	p, err := productFromForm(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err)
		return
	}

	image, err := formBlob(r, "image")
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, errors.New("image file is required"))
		return
	}

	var gallery []productuc.Blob
	for i := 0; ; i++ {
		b, err := formBlob(r, fmt.Sprintf("images[%d]", i))
		if err != nil {
			break
		}
		gallery = append(gallery, b)
	}

	created, err := a.productSvc.Create(r.Context(), productuc.CreateInput{
		Product: *p,
		Image:   image,
		Images:  gallery,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapProduct(created))
}

func productFromForm(r *http.Request) (*domproduct.Product, error) {
	p := &domproduct.Product{
		ID:               r.FormValue("id"),
		Name:             r.FormValue("name"),
		Brand:            r.FormValue("brand"),
		ShortDescription: r.FormValue("shortDescription"),
		FullDescription:  r.FormValue("fullDescription"),
		Category:         r.FormValue("category"),
		Subcategory:      r.FormValue("subcategory"),
		Seller:           r.FormValue("seller"),
		HasStock:         r.FormValue("hasStock") == "true",
	}

	var err error
	if p.Price, err = parseFloatField(r, "price"); err != nil {
		return nil, err
	}
	if p.Rating, err = parseFloatField(r, "rating"); err != nil {
		return nil, err
	}
	if v := r.FormValue("originalPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid originalPrice: %q", v)
		}
		p.OriginalPrice = &f
	}
	if v := r.FormValue("color"); v != "" {
		p.Color = &v
	}
	if v := r.FormValue("stock"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid stock: %q", v)
		}
		p.Stock = &n
	}
	return p, nil
}

func parseFloatField(r *http.Request, name string) (float64, error) {
	v := r.FormValue(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, v)
	}
	return f, nil
}

func formBlob(r *http.Request, field string) (productuc.Blob, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return productuc.Blob{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return productuc.Blob{}, fmt.Errorf("read %s: %w", field, err)
	}
	return productuc.Blob{
		Data:        data,
		ContentType: blobContentType(header),
	}, nil
}

func blobContentType(header *multipart.FileHeader) string {
	if header == nil {
		return ""
	}
	return header.Header.Get("Content-Type")
}

func viewCriteriaFrom(r *http.Request) (cataloguc.Criteria, error) {
	q := r.URL.Query()
	c := cataloguc.Criteria{Sort: cataloguc.SortKey(q.Get("sort"))}

	if v := q.Get("min_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, fmt.Errorf("invalid min_price: %q", v)
		}
		c.Price.Min = &f
	}
	if v := q.Get("max_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, fmt.Errorf("invalid max_price: %q", v)
		}
		c.Price.Max = &f
	}
	return c, nil
}
