// internal/app/features/uploads/handler.go
package uploads

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"github.com/ihsb/ihsbsite/internal/app/system/mediahost"
	"go.uber.org/zap"
)

// multipartOverhead allows for form boundaries and the other fields on top
// of the file itself.
const multipartOverhead = 1 << 20

var errNoFile = apperr.Invalid("file is required")

// Handler accepts multipart uploads and hands them to the media host.
type Handler struct {
	Uploader *mediahost.Uploader
	Log      *zap.Logger
}

func NewHandler(u *mediahost.Uploader, logger *zap.Logger) *Handler {
	return &Handler{Uploader: u, Log: logger}
}

// Upload handles POST /api/admin/uploads with a "file" part and an optional
// "folder" field.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	h.store(w, r, "")
}

// UploadTo returns a handler that files every upload under folder,
// ignoring any folder the client sends.
func (h *Handler) UploadTo(folder string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.store(w, r, folder)
	}
}

func (h *Handler) store(w http.ResponseWriter, r *http.Request, folder string) {
	max := h.Uploader.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, max+multipartOverhead)
	if err := r.ParseMultipartForm(max); err != nil {
		jsonresp.Error(w, r, h.Log, parseError(err))
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonresp.Error(w, r, h.Log, errNoFile)
		return
	}
	defer file.Close()

	if folder == "" {
		folder = strings.ToLower(strings.TrimSpace(r.FormValue("folder")))
	}
	up, err := h.Uploader.Upload(r.Context(), folder, file, header.Size)
	if err != nil {
		jsonresp.Error(w, r, h.Log, err)
		return
	}

	h.Log.Info("file uploaded",
		zap.String("key", up.Key),
		zap.Int64("size", up.Size),
		zap.String("content_type", up.ContentType))
	jsonresp.OK(w, up)
}

func parseError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return apperr.New(apperr.TooLarge, "file is too large")
	}
	if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
		return apperr.Invalid("expected a multipart/form-data body")
	}
	return apperr.Wrap(apperr.Validation, err, "malformed upload")
}
