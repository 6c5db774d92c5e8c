package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domcart "example.com/storefront/internal/domain/cart"
	domorder "example.com/storefront/internal/domain/order"
)

const orderCollection = "orders"

type orderDoc struct {
	CartID       string        `firestore:"cartId"`
	Status       string        `firestore:"status"`
	Lines        []cartLineDoc `firestore:"lines"`
	Total        float64       `firestore:"total"`
	CustomerName string        `firestore:"customerName"`
	Email        string        `firestore:"email"`
	Address      string        `firestore:"address"`
	Phone        string        `firestore:"phone"`
	CreatedAt    time.Time     `firestore:"createdAt"`
}

type OrderRepository struct {
	client *firestore.Client
}

func NewOrderRepository(client *firestore.Client) *OrderRepository {
	return &OrderRepository{client: client}
}

func (r *OrderRepository) Create(ctx context.Context, o *domorder.Order) (*domorder.Order, error) {
	doc := orderDoc{
		CartID:       o.CartID,
		Status:       string(o.Status),
		Lines:        make([]cartLineDoc, 0, len(o.Lines)),
		Total:        o.Total,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Address:      o.Address,
		Phone:        o.Phone,
		CreatedAt:    o.CreatedAt,
	}
	for _, l := range o.Lines {
		doc.Lines = append(doc.Lines, cartLineDoc{
			ProductID: l.Product.ID,
			Product:   *toProductDoc(&l.Product),
			Quantity:  l.Quantity,
		})
	}

	if _, err := r.client.Collection(orderCollection).Doc(o.ID).Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create order %s: %w", o.ID, err)
	}
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]*domorder.Order, error) {
	iter := r.client.Collection(orderCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var orders []*domorder.Order
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}

		o, err := decodeOrder(snap)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domorder.Order, error) {
	snap, err := r.client.Collection(orderCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domorder.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return decodeOrder(snap)
}

func decodeOrder(snap *firestore.DocumentSnapshot) (*domorder.Order, error) {
	var doc orderDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", snap.Ref.ID, err)
	}

	o := &domorder.Order{
		ID:           snap.Ref.ID,
		CartID:       doc.CartID,
		Status:       domorder.Status(doc.Status),
		Lines:        make([]domcart.Line, 0, len(doc.Lines)),
		Total:        doc.Total,
		CustomerName: doc.CustomerName,
		Email:        doc.Email,
		Address:      doc.Address,
		Phone:        doc.Phone,
		CreatedAt:    doc.CreatedAt,
	}
	for _, l := range doc.Lines {
		p := fromProductDoc(l.ProductID, &l.Product)
		o.Lines = append(o.Lines, domcart.Line{Product: *p, Quantity: l.Quantity})
	}
	return o, nil
}
