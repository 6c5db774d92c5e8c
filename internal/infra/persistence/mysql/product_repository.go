package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	domproduct "example.com/storefront/internal/domain/product"
)

const mysqlErrDuplicateEntry = 1062

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return nil, fmt.Errorf("marshal images: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO products (
            id, name, brand, price, original_price, rating,
            short_description, full_description, color,
            category, subcategory, seller, has_stock, stock,
            image, images, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, p.ID, p.Name, p.Brand, p.Price, p.OriginalPrice, p.Rating,
		p.ShortDescription, p.FullDescription, p.Color,
		p.Category, p.Subcategory, p.Seller, p.HasStock, p.Stock,
		p.Image, images, p.CreatedAt)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return nil, domproduct.ErrProductAlreadyExists
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, brand, price, original_price, rating,
               short_description, full_description, color,
               category, subcategory, seller, has_stock, stock,
               image, images, created_at
        FROM products WHERE id = ?
    `, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	query := `
        SELECT id, name, brand, price, original_price, rating,
               short_description, full_description, color,
               category, subcategory, seller, has_stock, stock,
               image, images, created_at
        FROM products
    `
	var clauses []string
	var args []any

	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Subcategory != "" {
		clauses = append(clauses, "subcategory = ?")
		args = append(args, filter.Subcategory)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domproduct.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domproduct.Product, error) {
	var (
		p      domproduct.Product
		images []byte
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.Brand, &p.Price, &p.OriginalPrice, &p.Rating,
		&p.ShortDescription, &p.FullDescription, &p.Color,
		&p.Category, &p.Subcategory, &p.Seller, &p.HasStock, &p.Stock,
		&p.Image, &images, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, fmt.Errorf("unmarshal images for product %s: %w", p.ID, err)
		}
	}
	return &p, nil
}
