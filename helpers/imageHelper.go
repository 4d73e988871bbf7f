package helpers

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/ShubhamPatel2305/Vroomify/pinning"
)

const (
	// MaxImageCount caps the images field on a car listing.
	MaxImageCount = 10
	// MaxImageSizeBytes is the per-file upload cap (5MB).
	MaxImageSizeBytes = 5 << 20
)

// ErrTooManyImages signals that a request carried more acceptable image
// files than a listing may hold.
var ErrTooManyImages = errors.New("a maximum of 10 images is allowed")

// CollectImageFiles reads the "images" parts of a multipart form into memory,
// keeping only parts that declare an image/* content type and fit the size
// cap. Non-image and oversized parts are dropped, not rejected; more than
// MaxImageCount acceptable files fails the request outright rather than
// storing a silently truncated list.
func CollectImageFiles(form *multipart.Form) ([]pinning.File, error) {
	var out []pinning.File
	for _, header := range form.File["images"] {
		if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
			continue
		}
		if header.Size > MaxImageSizeBytes {
			continue
		}
		if len(out) == MaxImageCount {
			return nil, ErrTooManyImages
		}

		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, pinning.File{Name: header.Filename, Data: data})
	}
	return out, nil
}
