// Package media handles captured still images and their data URI form.
package media

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/agenthands/labscan/internal/apperr"
)

// DefaultMaxBytes bounds a single captured frame.
const DefaultMaxBytes = 8 << 20

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// Image is one captured frame.
type Image struct {
	MIMEType string
	Data     []byte
}

// DataURI renders the image as data:<mime>;base64,<payload>.
func (i Image) DataURI() string {
	return "data:" + i.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Base64 returns the bare base64 payload.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// Format returns the subtype, e.g. "jpeg" for image/jpeg.
func (i Image) Format() string {
	_, sub, _ := strings.Cut(i.MIMEType, "/")
	return sub
}

// Detect sniffs raw bytes and accepts them only if they are a supported
// image no larger than maxBytes. A maxBytes of zero uses DefaultMaxBytes.
func Detect(data []byte, maxBytes int64) (Image, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if len(data) == 0 {
		return Image{}, apperr.Validation("image is empty")
	}
	if int64(len(data)) > maxBytes {
		return Image{}, apperr.Validation("image is %d bytes, limit is %d", len(data), maxBytes)
	}

	mt := mimetype.Detect(data)
	for _, allowed := range allowedTypes {
		if mt.Is(allowed) {
			return Image{MIMEType: allowed, Data: data}, nil
		}
	}
	return Image{}, apperr.Validation("unsupported image type %s", mt.String())
}

// ParseDataURI decodes a base64 data URI and verifies the payload is a
// supported image. The declared MIME type must agree with the content.
func ParseDataURI(uri string, maxBytes int64) (Image, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return Image{}, apperr.Validation("photo must be a data URI")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Image{}, apperr.Validation("photo data URI has no payload")
	}
	declared, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return Image{}, apperr.Validation("photo data URI must use base64 encoding")
	}
	if declared == "" {
		return Image{}, apperr.Validation("photo data URI must include a MIME type")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, apperr.WrapValidation(err, "decode photo data URI")
	}

	img, err := Detect(data, maxBytes)
	if err != nil {
		return Image{}, err
	}
	if !strings.EqualFold(declared, img.MIMEType) {
		return Image{}, apperr.Validation("photo declared as %s but contains %s", declared, img.MIMEType)
	}
	return img, nil
}
