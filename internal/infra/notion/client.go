package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"example.com/storefront/internal/usecase/importer"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
)

// Client queries a Notion database for product rows. It implements the
// import source port.
type Client struct {
	baseURL    string
	apiKey     string
	databaseID string
	client     *http.Client
}

func NewClient(apiKey, databaseID string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		apiKey:     strings.TrimSpace(apiKey),
		databaseID: strings.TrimSpace(databaseID),
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point at a local server.
func NewClientWithBaseURL(apiKey, databaseID, baseURL string) *Client {
	c := NewClient(apiKey, databaseID)
	c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return c
}

type queryRequest struct {
	Filter queryFilter `json:"filter"`
}

type queryFilter struct {
	Property string       `json:"property"`
	Number   numberEquals `json:"number"`
}

type numberEquals struct {
	Equals int64 `json:"equals"`
}

type queryResponse struct {
	Results []page `json:"results"`
}

type page struct {
	Properties map[string]property `json:"properties"`
}

type property struct {
	Number   *float64   `json:"number"`
	Checkbox bool       `json:"checkbox"`
	Title    []richText `json:"title"`
	RichText []richText `json:"rich_text"`
	Select   *selection `json:"select"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type selection struct {
	Name string `json:"name"`
}

func (c *Client) FetchProduct(ctx context.Context, externalID int64) (*importer.Draft, error) {
	if c.apiKey == "" || c.databaseID == "" {
		return nil, importer.ErrNotConfigured
	}

	body, _ := json.Marshal(queryRequest{
		Filter: queryFilter{
			Property: "ID",
			Number:   numberEquals{Equals: externalID},
		},
	})

	url := fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL, c.databaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
		return nil, fmt.Errorf("notion query failed status=%d body=%s", res.StatusCode, strings.TrimSpace(string(payload)))
	}

	var qr queryResponse
	if err := json.NewDecoder(res.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("decode notion response: %w", err)
	}
	if len(qr.Results) == 0 {
		return nil, importer.ErrNotFound
	}

	return draftFromPage(qr.Results[0]), nil
}

// Property names mirror the upstream database verbatim; several carry a
// trailing space there.
func draftFromPage(p page) *importer.Draft {
	props := p.Properties
	return &importer.Draft{
		ID:               numberAsID(props["ID"]),
		Name:             firstText(props["Name"].Title),
		Brand:            firstText(props["Brands"].RichText),
		Price:            numberOrZero(props["Price"]),
		OriginalPrice:    props["Original Price"].Number,
		Rating:           numberOrZero(props["Rating "]),
		ShortDescription: firstText(props["Short Description "].RichText),
		FullDescription:  joinedText(props["Full Description "].RichText),
		Color:            optionalText(props["Color "].RichText),
		Category:         selectName(props["Category"]),
		Subcategory:      selectName(props["Subcategory "]),
		Seller:           firstText(props["Seller "].RichText),
		HasStock:         props["Has Stock "].Checkbox,
		Stock:            numberAsInt(props["Stock"]),
	}
}

func numberAsID(p property) string {
	if p.Number == nil {
		return ""
	}
	return strconv.FormatFloat(*p.Number, 'f', -1, 64)
}

func numberOrZero(p property) float64 {
	if p.Number == nil {
		return 0
	}
	return *p.Number
}

func numberAsInt(p property) *int64 {
	if p.Number == nil {
		return nil
	}
	n := int64(*p.Number)
	return &n
}

func firstText(texts []richText) string {
	if len(texts) == 0 {
		return ""
	}
	return texts[0].PlainText
}

func optionalText(texts []richText) *string {
	if len(texts) == 0 || texts[0].PlainText == "" {
		return nil
	}
	s := texts[0].PlainText
	return &s
}

func joinedText(texts []richText) string {
	parts := make([]string, 0, len(texts))
	for _, t := range texts {
		parts = append(parts, t.PlainText)
	}
	return strings.Join(parts, "\n")
}

func selectName(p property) string {
	if p.Select == nil {
		return ""
	}
	return p.Select.Name
}
