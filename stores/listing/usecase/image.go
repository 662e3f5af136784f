package usecase

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/neonflick/goapi/domain/listing"
)

// sniffImage returns the detected content type and file extension of an upload.
// The filename is not trusted.
func (im *impl) sniffImage(img *listing.Image) (string, string, error) {
	if len(img.Body) == 0 {
		return "", "", listing.ErrInvalidImage
	}
	if im.maxImageSize > 0 && len(img.Body) > im.maxImageSize {
		return "", "", listing.ErrImageTooLarge
	}

	mt := mimetype.Detect(img.Body)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", "", listing.ErrInvalidImage
	}
	return mt.String(), mt.Extension(), nil
}
