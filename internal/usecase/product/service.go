package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	domproduct "example.com/storefront/internal/domain/product"
)

var (
	ErrUploadsDisabled = errors.New("image uploads are not configured")
	ErrUploadFailed    = errors.New("image upload failed")
)

type Repository interface {
	domproduct.Repository
}

// Blob is raw image content received from the admin form.
type Blob struct {
	Data        []byte
	ContentType string
}

// Uploader turns a blob into a durable public URL. Remove undoes a
// previous upload given that URL.
type Uploader interface {
	Upload(ctx context.Context, b Blob) (string, error)
	Remove(ctx context.Context, url string) error
}

type CreateInput struct {
	Product domproduct.Product
	Image   Blob
	Images  []Blob
}

type Service struct {
	repo     Repository
	uploader Uploader
	logger   *log.Entry
}

func NewService(repo Repository, uploader Uploader, logger *log.Entry) *Service {
	return &Service{
		repo:     repo,
		uploader: uploader,
		logger:   logger,
	}
}

// Create validates the product, stages every image upload, and only then
// writes the catalog document. Any upload failure aborts the create; objects
// already staged are removed best effort so no orphan survives a failed
// request.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domproduct.Product, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	p := in.Product
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var staged []string
	rollback := func() {
		for _, url := range staged {
			if err := s.uploader.Remove(ctx, url); err != nil {
				s.logger.WithError(err).WithField("url", url).Warn("failed to remove staged image")
			}
		}
	}

	mainURL, err := s.uploader.Upload(ctx, in.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	staged = append(staged, mainURL)

	galleryURLs := make([]string, 0, len(in.Images))
	for _, b := range in.Images {
		url, err := s.uploader.Upload(ctx, b)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		staged = append(staged, url)
		galleryURLs = append(galleryURLs, url)
	}

	p.Image = mainURL
	p.Images = galleryURLs
	p.CreatedAt = time.Now().UTC()

	created, err := s.repo.Create(ctx, &p)
	if err != nil {
		rollback()
		return nil, err
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the catalog newest first.
func (s *Service) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	return s.repo.List(ctx, filter)
}
