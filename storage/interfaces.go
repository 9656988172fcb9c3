package storage

import (
	"context"
	"io"

	"campus-map/models"
)

// DatasetSource is the interface any institution table backend must satisfy.
type DatasetSource interface {
	Load(ctx context.Context) (*models.Dataset, error)
}

// RenderFunc streams an artifact body to w.
type RenderFunc func(w io.Writer) error
