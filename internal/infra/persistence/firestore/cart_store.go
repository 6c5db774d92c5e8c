package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domcart "example.com/storefront/internal/domain/cart"
)

const cartCollection = "carts"

type cartLineDoc struct {
	Product  productDoc `firestore:"product"`
	Quantity int64      `firestore:"quantity"`
	// The product id lives beside the snapshot because productDoc keeps
	// it out of the document body.
	ProductID string `firestore:"productId"`
}

type cartDoc struct {
	Lines []cartLineDoc `firestore:"lines"`
}

type CartStore struct {
	client *firestore.Client
	logger *log.Entry
}

func NewCartStore(client *firestore.Client, logger *log.Entry) *CartStore {
	return &CartStore{client: client, logger: logger}
}

func (s *CartStore) Load(ctx context.Context, cartID string) (*domcart.Cart, error) {
	snap, err := s.client.Collection(cartCollection).Doc(cartID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domcart.New(cartID), nil
		}
		return nil, fmt.Errorf("load cart %s: %w", cartID, err)
	}

	var doc cartDoc
	if err := snap.DataTo(&doc); err != nil {
		// Unreadable documents hydrate as empty; the next Save
		// overwrites the slot wholesale.
		s.logger.WithError(err).WithField("cart_id", cartID).Warn("corrupt cart document, treating as empty")
		return domcart.New(cartID), nil
	}

	c := domcart.New(cartID)
	for _, l := range doc.Lines {
		p := fromProductDoc(l.ProductID, &l.Product)
		c.Lines = append(c.Lines, domcart.Line{Product: *p, Quantity: l.Quantity})
	}
	return c, nil
}

func (s *CartStore) Save(ctx context.Context, c *domcart.Cart) error {
	doc := cartDoc{Lines: make([]cartLineDoc, 0, len(c.Lines))}
	for _, l := range c.Lines {
		doc.Lines = append(doc.Lines, cartLineDoc{
			ProductID: l.Product.ID,
			Product:   *toProductDoc(&l.Product),
			Quantity:  l.Quantity,
		})
	}

	_, err := s.client.Collection(cartCollection).Doc(c.ID).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("save cart %s: %w", c.ID, err)
	}
	return nil
}

func (s *CartStore) Delete(ctx context.Context, cartID string) error {
	_, err := s.client.Collection(cartCollection).Doc(cartID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("delete cart %s: %w", cartID, err)
	}
	return nil
}
