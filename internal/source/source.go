// Package source reads input documents and writes results, either on the
// local filesystem or in Cloud Storage (gs://bucket/object).
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const gcsScheme = "gs://"

// ErrUnsupportedInput is returned for inputs that cannot be handled from
// the given location.
var ErrUnsupportedInput = errors.New("unsupported input")

// Kind is the type of document found at a location.
type Kind int

const (
	KindAnnotation Kind = iota // Vision annotate JSON
	KindPDF                    // PDF with a text layer
	KindImage                  // image to be recognized locally
)

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true,
}

// Store is the remote object storage used for gs:// locations.
type Store interface {
	ReadObject(ctx context.Context, bucket, object string) ([]byte, error)
	WriteObject(ctx context.Context, bucket, object string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, bucket, object string) error
}

// KindOf classifies a location by extension. Anything that is not a PDF
// or an image is treated as annotation JSON.
func KindOf(location string) Kind {
	ext := strings.ToLower(filepath.Ext(location))
	switch {
	case ext == ".pdf":
		return KindPDF
	case imageExts[ext]:
		return KindImage
	default:
		return KindAnnotation
	}
}

// IsRemote reports whether location is a Cloud Storage URI.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, gcsScheme)
}

// ParseURI splits gs://bucket/path/to/object into bucket and object.
func ParseURI(uri string) (bucket, object string, err error) {
	if !IsRemote(uri) {
		return "", "", fmt.Errorf("ParseURI: %q is not a gs:// URI", uri)
	}
	bucket, object, ok := strings.Cut(strings.TrimPrefix(uri, gcsScheme), "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("ParseURI: %q must be gs://bucket/object", uri)
	}
	return bucket, object, nil
}

// Loader reads and writes documents. Remote may be nil when only local
// paths are used.
type Loader struct {
	Remote Store
}

// Read returns the bytes at location.
func (l *Loader) Read(ctx context.Context, location string) ([]byte, error) {
	if !IsRemote(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", location, err)
		}
		return data, nil
	}

	bucket, object, err := l.remote(location)
	if err != nil {
		return nil, err
	}
	data, err := l.Remote.ReadObject(ctx, bucket, object)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	return data, nil
}

// Write stores data at location, replacing any existing content.
func (l *Loader) Write(ctx context.Context, location string, data []byte, contentType string) error {
	if !IsRemote(location) {
		if err := os.WriteFile(location, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", location, err)
		}
		return nil
	}

	bucket, object, err := l.remote(location)
	if err != nil {
		return err
	}
	if err := l.Remote.WriteObject(ctx, bucket, object, data, contentType); err != nil {
		return fmt.Errorf("write %s: %w", location, err)
	}
	return nil
}

// Remove deletes the document at location.
func (l *Loader) Remove(ctx context.Context, location string) error {
	if !IsRemote(location) {
		if err := os.Remove(location); err != nil {
			return fmt.Errorf("remove %s: %w", location, err)
		}
		return nil
	}

	bucket, object, err := l.remote(location)
	if err != nil {
		return err
	}
	if err := l.Remote.DeleteObject(ctx, bucket, object); err != nil {
		return fmt.Errorf("remove %s: %w", location, err)
	}
	return nil
}

func (l *Loader) remote(location string) (string, string, error) {
	if l.Remote == nil {
		return "", "", fmt.Errorf("%w: no storage client for %s", ErrUnsupportedInput, location)
	}
	return ParseURI(location)
}
