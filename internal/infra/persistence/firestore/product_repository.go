package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domproduct "example.com/storefront/internal/domain/product"
)

const productCollection = "products"

// productDoc is the persisted shape, kept separate from the domain entity
// so document field names stay stable.
type productDoc struct {
	Name             string    `firestore:"name"`
	Brand            string    `firestore:"brand"`
	Price            float64   `firestore:"price"`
	OriginalPrice    *float64  `firestore:"originalPrice"`
	Rating           float64   `firestore:"rating"`
	ShortDescription string    `firestore:"shortDescription"`
	FullDescription  string    `firestore:"fullDescription"`
	Color            *string   `firestore:"color"`
	Category         string    `firestore:"category"`
	Subcategory      string    `firestore:"subcategory"`
	Seller           string    `firestore:"seller"`
	HasStock         bool      `firestore:"hasStock"`
	Stock            *int64    `firestore:"stock"`
	Image            string    `firestore:"image"`
	Images           []string  `firestore:"images"`
	CreatedAt        time.Time `firestore:"createdAt"`
}

type ProductRepository struct {
	client *firestore.Client
}

func NewProductRepository(client *firestore.Client) *ProductRepository {
	return &ProductRepository{client: client}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	ref := r.client.Collection(productCollection).Doc(p.ID)

	_, err := ref.Create(ctx, toProductDoc(p))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, domproduct.ErrProductAlreadyExists
		}
		return nil, fmt.Errorf("create product %s: %w", p.ID, err)
	}
	return p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	snap, err := r.client.Collection(productCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}

	var doc productDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", id, err)
	}
	return fromProductDoc(snap.Ref.ID, &doc), nil
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	q := r.client.Collection(productCollection).Query
	if filter.Category != "" {
		q = q.Where("category", "==", filter.Category)
	}
	if filter.Subcategory != "" {
		q = q.Where("subcategory", "==", filter.Subcategory)
	}
	q = q.OrderBy("createdAt", firestore.Desc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var products []*domproduct.Product
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}

		var doc productDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", snap.Ref.ID, err)
		}
		products = append(products, fromProductDoc(snap.Ref.ID, &doc))
	}
	return products, nil
}

func toProductDoc(p *domproduct.Product) *productDoc {
	return &productDoc{
		Name:             p.Name,
		Brand:            p.Brand,
		Price:            p.Price,
		OriginalPrice:    p.OriginalPrice,
		Rating:           p.Rating,
		ShortDescription: p.ShortDescription,
		FullDescription:  p.FullDescription,
		Color:            p.Color,
		Category:         p.Category,
		Subcategory:      p.Subcategory,
		Seller:           p.Seller,
		HasStock:         p.HasStock,
		Stock:            p.Stock,
		Image:            p.Image,
		Images:           p.Images,
		CreatedAt:        p.CreatedAt,
	}
}

func fromProductDoc(id string, doc *productDoc) *domproduct.Product {
	return &domproduct.Product{
		ID:               id,
		Name:             doc.Name,
		Brand:            doc.Brand,
		Price:            doc.Price,
		OriginalPrice:    doc.OriginalPrice,
		Rating:           doc.Rating,
		ShortDescription: doc.ShortDescription,
		FullDescription:  doc.FullDescription,
		Color:            doc.Color,
		Category:         doc.Category,
		Subcategory:      doc.Subcategory,
		Seller:           doc.Seller,
		HasStock:         doc.HasStock,
		Stock:            doc.Stock,
		Image:            doc.Image,
		Images:           doc.Images,
		CreatedAt:        doc.CreatedAt,
	}
}
