package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	domcart "example.com/storefront/internal/domain/cart"
	domorder "example.com/storefront/internal/domain/order"
	domproduct "example.com/storefront/internal/domain/product"
	cartuc "example.com/storefront/internal/usecase/cart"
	checkoutuc "example.com/storefront/internal/usecase/checkout"
	importeruc "example.com/storefront/internal/usecase/importer"
	productuc "example.com/storefront/internal/usecase/product"
)

// cartIDHeader carries the client-chosen cart identity on every cart and
// checkout request.
const cartIDHeader = "X-Cart-Id"

type API struct {
	productSvc  *productuc.Service
	cartSvc     *cartuc.Service
	checkoutSvc *checkoutuc.Service
	importSvc   *importeruc.Service
	validator   *validator.Validate
	corsOrigin  string
}

type Dependencies struct {
	ProductService  *productuc.Service
	CartService     *cartuc.Service
	CheckoutService *checkoutuc.Service
	ImportService   *importeruc.Service
	CORSOrigin      string
}

func NewAPI(deps Dependencies) *API {
	validate := validator.New()
	return &API{
		productSvc:  deps.ProductService,
		cartSvc:     deps.CartService,
		checkoutSvc: deps.CheckoutService,
		importSvc:   deps.ImportService,
		validator:   validate,
		corsOrigin:  deps.CORSOrigin,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{a.corsOrigin},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", cartIDHeader},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", a.handleListProducts)
		r.Get("/products/{id}", a.handleGetProduct)
		r.Get("/import/notion", a.handleImportProduct)

		// The admin create endpoint takes multipart form data, so the
		// JSON content-type guard only wraps the JSON-body routes.
		r.Group(func(jr chi.Router) {
			jr.Use(chimw.AllowContentType("application/json"))
			jr.Post("/me/cart/items", a.handleAddCartItem)
			jr.Post("/me/checkout", a.handleCheckout)
		})

		r.Get("/me/cart", a.handleGetCart)
		r.Delete("/me/cart/items/{productID}", a.handleRemoveCartItem)
		r.Delete("/me/cart", a.handleEmptyCart)

		r.Route("/admin", func(admin chi.Router) {
			admin.Route("/products", func(rr chi.Router) {
				rr.Get("/", a.handleListProductsAdmin)
				rr.Post("/", a.handleCreateProduct)
			})

			admin.Route("/orders", func(rr chi.Router) {
				rr.Get("/", a.handleListOrders)
				rr.Get("/{id}", a.handleGetOrder)
			})
		})
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func cartIDFrom(r *http.Request) (string, error) {
	id := r.Header.Get(cartIDHeader)
	if id == "" {
		return "", errors.New("missing " + cartIDHeader + " header")
	}
	return id, nil
}

func urlParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func mapProduct(p *domproduct.Product) map[string]any {
	return map[string]any{
		"id":               p.ID,
		"name":             p.Name,
		"brand":            p.Brand,
		"price":            p.Price,
		"originalPrice":    p.OriginalPrice,
		"rating":           p.Rating,
		"shortDescription": p.ShortDescription,
		"fullDescription":  p.FullDescription,
		"color":            p.Color,
		"category":         p.Category,
		"subcategory":      p.Subcategory,
		"seller":           p.Seller,
		"hasStock":         p.HasStock,
		"stock":            p.Stock,
		"image":            p.Image,
		"images":           p.Images,
		"createdAt":        p.CreatedAt,
	}
}

func mapCart(c *domcart.Cart) map[string]any {
	lines := make([]map[string]any, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, map[string]any{
			"product":  mapProduct(&l.Product),
			"quantity": l.Quantity,
		})
	}
	return map[string]any{
		"id":    c.ID,
		"lines": lines,
		"total": c.Total(),
	}
}

func mapOrder(o *domorder.Order) map[string]any {
	lines := make([]map[string]any, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, map[string]any{
			"product":  mapProduct(&l.Product),
			"quantity": l.Quantity,
		})
	}
	return map[string]any{
		"id":           o.ID,
		"cartId":       o.CartID,
		"status":       o.Status,
		"lines":        lines,
		"total":        o.Total,
		"customerName": o.CustomerName,
		"email":        o.Email,
		"address":      o.Address,
		"phone":        o.Phone,
		"createdAt":    o.CreatedAt,
	}
}

func mapDraft(d *importeruc.Draft) map[string]any {
	return map[string]any{
		"id":               d.ID,
		"name":             d.Name,
		"brand":            d.Brand,
		"price":            d.Price,
		"originalPrice":    d.OriginalPrice,
		"rating":           d.Rating,
		"shortDescription": d.ShortDescription,
		"fullDescription":  d.FullDescription,
		"color":            d.Color,
		"category":         d.Category,
		"subcategory":      d.Subcategory,
		"seller":           d.Seller,
		"hasStock":         d.HasStock,
		"stock":            d.Stock,
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domproduct.ErrProductInvalid),
		errors.Is(err, domorder.ErrEmptyOrder):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domproduct.ErrProductAlreadyExists):
		respondError(w, http.StatusConflict, err)
	case errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domorder.ErrOrderNotFound),
		errors.Is(err, importeruc.ErrNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, productuc.ErrUploadFailed):
		respondError(w, http.StatusBadGateway, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
