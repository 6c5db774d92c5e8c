package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"example.com/storefront/internal/infra/persistence/memory"
	importeruc "example.com/storefront/internal/usecase/importer"
	productuc "example.com/storefront/internal/usecase/product"
)

type fakeUploader struct {
	uploads int
	fail    bool
	removed []string
}

func (f *fakeUploader) Upload(_ context.Context, _ productuc.Blob) (string, error) {
	if f.fail {
		return "", errors.New("bucket unavailable")
	}
	f.uploads++
	return fmt.Sprintf("https://storage.googleapis.com/shop-assets/products/%d.jpg", f.uploads), nil
}

func (f *fakeUploader) Remove(_ context.Context, url string) error {
	f.removed = append(f.removed, url)
	return nil
}

type fakeImportSource struct {
	drafts map[int64]*importeruc.Draft
	err    error
}

func (f *fakeImportSource) FetchProduct(_ context.Context, id int64) (*importeruc.Draft, error) {
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.drafts[id]; ok {
		return d, nil
	}
	return nil, importeruc.ErrNotFound
}

func quietLogger() *log.Entry {
	l := log.New()
	l.SetLevel(log.PanicLevel)
	return log.NewEntry(l)
}

func setupProductAPI(t *testing.T, uploader productuc.Uploader, source importeruc.Source) *API {
	t.Helper()
	productRepo := memory.NewProductRepository()
	seedProducts(t, productRepo)

	return NewAPI(Dependencies{
		ProductService: productuc.NewService(productRepo, uploader, quietLogger()),
		ImportService:  importeruc.NewService(source),
		CORSOrigin:     "*",
	})
}

func listIDs(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var response map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	data, ok := response["data"].([]any)
	require.True(t, ok, "data should be an array")

	ids := make([]string, 0, len(data))
	for _, item := range data {
		ids = append(ids, item.(map[string]any)["id"].(string))
	}
	return ids
}

func TestListProducts_DefaultIsNewestFirst(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{}, nil).Router()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=newest", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, []string{"c", "b", "a"}, listIDs(t, rec))
}

func TestListProducts_SortAndPriceWindow(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{}, nil).Router()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet,
		"/api/v1/products?sort=priceLowToHigh&max_price=20", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, []string{"a", "b"}, listIDs(t, rec))
}

func TestListProducts_RatingSort(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{}, nil).Router()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=rating", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"b", "a", "c"}, listIDs(t, rec))
}

func TestListProducts_CategoryFilter(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{}, nil).Router()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/products?category=toys", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"c"}, listIDs(t, rec))
}

func TestListProducts_InvalidPriceParam_Returns400(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{}, nil).Router()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/products?min_price=abc", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestGetProduct_Found(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{}, nil).Router()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/products/a", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var p map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Equal(t, "Widget", p["name"])
}

func TestGetProduct_Unknown_Returns404(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{}, nil).Router()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/products/zzz", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func adminCreateRequest(t *testing.T, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile(name, name+".jpg")
		require.NoError(t, err)
		_, err = io.Copy(fw, bytes.NewReader(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func validProductFields() map[string]string {
	return map[string]string{
		"id":          "p-99",
		"name":        "New Widget",
		"brand":       "Acme",
		"price":       "49.99",
		"rating":      "4",
		"category":    "tools",
		"subcategory": "hand tools",
		"hasStock":    "true",
	}
}

func TestCreateProduct_UploadsAndPersists(t *testing.T) {
	up := &fakeUploader{}
	router := setupProductAPI(t, up, nil).Router()

	req := adminCreateRequest(t, validProductFields(), map[string][]byte{
		"image":     []byte("main"),
		"images[0]": []byte("g0"),
		"images[1]": []byte("g1"),
	})
	rec := doRequest(router, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var p map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Equal(t, "p-99", p["id"])
	require.NotEmpty(t, p["image"])
	require.Len(t, p["images"].([]any), 2)
	require.Equal(t, 3, up.uploads)

	listRec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/admin/products/", nil))
	require.Contains(t, listIDs(t, listRec), "p-99")
}

func TestCreateProduct_MissingSubcategory_Returns422(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{}, nil).Router()

	fields := validProductFields()
	delete(fields, "subcategory")

	rec := doRequest(router, adminCreateRequest(t, fields, map[string][]byte{"image": []byte("x")}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestCreateProduct_MissingImage_Returns422(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{}, nil).Router()

	rec := doRequest(router, adminCreateRequest(t, validProductFields(), nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestCreateProduct_UploadFailure_Returns502AndNothingStored(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{fail: true}, nil).Router()

	rec := doRequest(router, adminCreateRequest(t, validProductFields(), map[string][]byte{
		"image": []byte("main"),
	}))
	require.Equal(t, http.StatusBadGateway, rec.Code, rec.Body.String())

	listRec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/admin/products/", nil))
	require.NotContains(t, listIDs(t, listRec), "p-99")
}

func TestCreateProduct_DuplicateID_Returns409(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{}, nil).Router()

	fields := validProductFields()
	fields["id"] = "a" // already seeded

	rec := doRequest(router, adminCreateRequest(t, fields, map[string][]byte{"image": []byte("x")}))
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestImportProduct_Found(t *testing.T) {
	source := &fakeImportSource{drafts: map[int64]*importeruc.Draft{
		42: {ID: "42", Name: "Imported Widget", Price: 12.5},
	}}
	router := setupProductAPI(t, &fakeUploader{}, source).Router()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/import/notion?id=42", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var d map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	require.Equal(t, "Imported Widget", d["name"])
}

func TestImportProduct_MissingID_Returns400(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{}, &fakeImportSource{}).Router()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/import/notion", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportProduct_NonNumericID_Returns400(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{}, &fakeImportSource{}).Router()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/import/notion?id=abc", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportProduct_NotFound_Returns404(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{}, &fakeImportSource{drafts: map[int64]*importeruc.Draft{}}).Router()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/import/notion?id=7", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportProduct_NotConfigured_Returns500(t *testing.T) {
	router := setupProductAPI(t, &fakeUploader{}, nil).Router()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/import/notion?id=7", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestImportProduct_UpstreamFailure_Returns502(t *testing.T) {
	source := &fakeImportSource{err: errors.New("timeout")}
	router := setupProductAPI(t, &fakeUploader{}, source).Router()

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/import/notion?id=7", nil))
	require.Equal(t, http.StatusBadGateway, rec.Code)
}
