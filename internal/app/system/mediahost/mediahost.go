// Package mediahost stores uploaded images and documents and returns the
// public URL they are served from.
package mediahost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
)

// Host writes objects under a key and reports their public URL.
type Host interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// Upload describes a stored object.
type Upload struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Folders that uploads may be filed under. Anything else goes to "general".
var Folders = map[string]bool{
	"events":        true,
	"announcements": true,
	"news":          true,
	"sports":        true,
	"academics":     true,
	"alumni":        true,
	"admissions":    true,
	"general":       true,
}

var allowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
}

var (
	ErrEmpty       = apperr.Invalid("file is empty")
	ErrUnsupported = apperr.Invalid("unsupported file type; upload an image (jpeg, png, gif, webp) or a pdf")
)

// Uploader checks uploads and files them under dated, unguessable keys.
type Uploader struct {
	host     Host
	maxBytes int64
	now      func() time.Time
}

func NewUploader(host Host, maxBytes int64) *Uploader {
	return &Uploader{host: host, maxBytes: maxBytes, now: time.Now}
}

// MaxBytes is the largest accepted upload.
func (u *Uploader) MaxBytes() int64 { return u.maxBytes }

// Upload sniffs r's content type, rejects anything not in the allow-list or
// over the size cap, and stores it as <folder>/YYYY/MM/<uuid><ext>.
func (u *Uploader) Upload(ctx context.Context, folder string, r io.Reader, size int64) (Upload, error) {
	if size > u.maxBytes {
		return Upload{}, tooLarge(u.maxBytes)
	}

	head := make([]byte, 3072)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Upload{}, apperr.Wrap(apperr.Validation, err, "could not read upload")
	}
	head = head[:n]
	if n == 0 {
		return Upload{}, ErrEmpty
	}

	mt := mimetype.Detect(head)
	if !mimetype.EqualsAny(mt.String(), allowedTypes...) {
		return Upload{}, ErrUnsupported
	}

	folder = strings.ToLower(strings.TrimSpace(folder))
	if !Folders[folder] {
		folder = "general"
	}
	now := u.now().UTC()
	key := path.Join(folder, fmt.Sprintf("%04d/%02d", now.Year(), now.Month()), uuid.NewString()+mt.Extension())

	body := &capped{r: io.MultiReader(bytes.NewReader(head), r), left: u.maxBytes}
	url, err := u.host.Put(ctx, key, body, size, mt.String())
	if body.over {
		return Upload{}, tooLarge(u.maxBytes)
	}
	if err != nil {
		return Upload{}, apperr.Wrap(apperr.Upstream, err, "store upload")
	}
	return Upload{URL: url, Key: key, Size: body.read, ContentType: mt.String()}, nil
}

func tooLarge(max int64) error {
	return apperr.Newf(apperr.TooLarge, "file exceeds the %d MB limit", max>>20)
}

// capped fails reads past left bytes.
type capped struct {
	r    io.Reader
	left int64
	read int64
	over bool
}

func (c *capped) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read += int64(n)
	if c.read > c.left {
		c.over = true
		return 0, errors.New("upload exceeds size limit")
	}
	return n, err
}
