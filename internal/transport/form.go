package transport

import (
	"errors"
	"net/http"

	"thrift-store-be/internal/apperror"
	"thrift-store-be/internal/upload"
)

// multipartMemory bounds the in-memory part of a parsed form; larger files
// spill to temporary files.
const multipartMemory = 8 << 20

var ErrInvalidForm = apperror.Validation("Invalid form data")

// Form is a parsed multipart request.
type Form struct {
	r *http.Request
}

func ParseForm(r *http.Request) (*Form, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return nil, err
		}
		return nil, ErrInvalidForm.Wrap(err)
	}
	return &Form{r: r}, nil
}

// Value returns a text field and whether it was sent at all.
func (f *Form) Value(name string) (string, bool) {
	vs, ok := f.r.MultipartForm.Value[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// Optional returns a pointer to the field value, nil when absent.
func (f *Form) Optional(name string) *string {
	v, ok := f.Value(name)
	if !ok {
		return nil
	}
	return &v
}

// File opens the uploaded file under name. It returns (nil, nil, nil) when
// the field holds no file. The returned close func must be called.
func (f *Form) File(name string) (*upload.File, func(), error) {
	file, header, err := f.r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, nil, ErrInvalidForm.Wrap(err)
	}
	return &upload.File{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}, func() { _ = file.Close() }, nil
}
