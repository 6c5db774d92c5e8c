package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	domcart "example.com/storefront/internal/domain/cart"
)

// CartStore keeps one row per cart, the whole cart serialized into a JSON
// payload column. Mutations overwrite the row wholesale.
type CartStore struct {
	db     *sql.DB
	logger *log.Entry
}

func NewCartStore(db *sql.DB, logger *log.Entry) *CartStore {
	return &CartStore{db: db, logger: logger}
}

func (s *CartStore) Load(ctx context.Context, cartID string) (*domcart.Cart, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM carts WHERE cart_id = ?`, cartID)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domcart.New(cartID), nil
		}
		return nil, err
	}

	var lines []domcart.Line
	if err := json.Unmarshal(payload, &lines); err != nil {
		// An unreadable payload hydrates as empty; the row is left in
		// place and gets overwritten by the next successful Save.
		s.logger.WithError(err).WithField("cart_id", cartID).Warn("corrupt cart payload, treating as empty")
		return domcart.New(cartID), nil
	}

	return &domcart.Cart{ID: cartID, Lines: lines}, nil
}

func (s *CartStore) Save(ctx context.Context, c *domcart.Cart) error {
	payload, err := json.Marshal(c.Lines)
	if err != nil {
		return fmt.Errorf("marshal cart %s: %w", c.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO carts (cart_id, payload) VALUES (?, ?)
        ON DUPLICATE KEY UPDATE payload = VALUES(payload)
    `, c.ID, payload)
	return err
}

func (s *CartStore) Delete(ctx context.Context, cartID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM carts WHERE cart_id = ?`, cartID)
	return err
}
