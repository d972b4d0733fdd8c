package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"thrift-store-be/internal/apperror"
	"thrift-store-be/internal/logger"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

type Kind string

const (
	KindItems    Kind = "items"
	KindProducts Kind = "products"
)

const (
	MaxFileSize = 5 << 20
	MaxWidth    = 1200

	// PublicPrefix is the URL prefix uploaded files are served under.
	PublicPrefix = "/uploads/"
)

var (
	ErrNoFile          = apperror.Validation("No file uploaded")
	ErrUnsupportedType = apperror.Validation("Only image files are allowed (jpg, jpeg, png, gif, webp)")
	ErrFileTooLarge    = apperror.Validation("File too large (max 5MB)")
	ErrInvalidImage    = apperror.Validation("Uploaded file is not a valid image")
)

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var allowedMIMEs = map[string]bool{
	"image/jpeg": true, "image/png": true, "image/gif": true, "image/webp": true,
}

// File is an incoming upload before validation.
type File struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Store validates, normalizes and writes images below a root directory.
type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	for _, k := range []Kind{KindItems, KindProducts} {
		if err := os.MkdirAll(filepath.Join(root, string(k)), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string { return s.root }

// Save writes f under kind and returns its public path, e.g. /uploads/items/<uuid>.png.
// Images wider than MaxWidth are downscaled; re-encoding drops embedded metadata.
func (s *Store) Save(ctx context.Context, kind Kind, f File) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "upload"),
		zap.String("method", "Save"),
	)

	if f.Body == nil {
		return "", ErrNoFile
	}

	ext := strings.ToLower(filepath.Ext(f.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	data, err := io.ReadAll(io.LimitReader(f.Body, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrNoFile
	}
	if len(data) > MaxFileSize {
		return "", ErrFileTooLarge
	}

	mimeType := http.DetectContentType(data)
	if mimeType == "application/octet-stream" && f.ContentType != "" {
		mimeType = f.ContentType
	}
	if !allowedMIMEs[mimeType] {
		return "", ErrUnsupportedType
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrInvalidImage.Wrap(err)
	}
	if img.Bounds().Dx() > MaxWidth {
		img = imaging.Resize(img, MaxWidth, 0, imaging.Lanczos)
	}

	format, outExt := outputFormat(ext)
	name := uuid.NewString() + outExt
	fullPath := filepath.Join(s.root, string(kind), name)

	if err := writeImage(fullPath, img, format); err != nil {
		log.Error("failed to write upload", zap.String("path", fullPath), zap.Error(err))
		return "", err
	}

	public := path.Join(PublicPrefix, string(kind), name)
	log.Info("upload stored",
		zap.String("path", public),
		zap.String("mime", mimeType),
		zap.Int("bytes", len(data)),
	)
	return public, nil
}

// outputFormat maps the upload extension to an encodable format. WebP has no
// encoder in imaging, so it is stored as PNG.
func outputFormat(ext string) (imaging.Format, string) {
	switch ext {
	case ".png", ".webp":
		return imaging.PNG, ".png"
	case ".gif":
		return imaging.GIF, ".gif"
	default:
		return imaging.JPEG, ".jpg"
	}
}

func writeImage(fullPath string, img image.Image, format imaging.Format) error {
	out, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", fullPath, err)
	}
	if err := imaging.Encode(out, img, format, imaging.JPEGQuality(90)); err != nil {
		out.Close()
		os.Remove(fullPath)
		return fmt.Errorf("encode image: %w", err)
	}
	return out.Close()
}

// Remove deletes a previously saved file. Paths outside the store are ignored.
func (s *Store) Remove(publicPath string) error {
	rel, ok := s.relative(publicPath)
	if !ok {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, rel))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) relative(publicPath string) (string, bool) {
	if !strings.HasPrefix(publicPath, PublicPrefix) {
		return "", false
	}
	rel := path.Clean(strings.TrimPrefix(publicPath, PublicPrefix))
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.FromSlash(rel), true
}

// Handler serves stored files read-only. Directory listings are disabled.
func (s *Store) Handler() http.Handler {
	fs := http.FileServer(noDirFS{http.Dir(s.root)})
	return http.StripPrefix(strings.TrimSuffix(PublicPrefix, "/"), fs)
}

type noDirFS struct{ fs http.FileSystem }

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	if st, err := f.Stat(); err == nil && st.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
