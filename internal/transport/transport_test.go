package transport

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"thrift-store-be/internal/apperror"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withParams(r *http.Request, ps httprouter.Params) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), httprouter.ParamsKey, ps))
}

func TestParamID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r := withParams(httptest.NewRequest(http.MethodGet, "/api/items/5", nil), httprouter.Params{{Key: "id", Value: "5"}})
		id, err := ParamID(r, "id")
		require.NoError(t, err)
		assert.Equal(t, int64(5), id)
	})

	t.Run("NonNumeric", func(t *testing.T) {
		r := withParams(httptest.NewRequest(http.MethodGet, "/api/items/abc", nil), httprouter.Params{{Key: "id", Value: "abc"}})
		_, err := ParamID(r, "id")
		assert.ErrorIs(t, err, apperror.ErrInvalidID)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := ParamID(httptest.NewRequest(http.MethodGet, "/", nil), "id")
		assert.ErrorIs(t, err, apperror.ErrInvalidID)
	})
}

func TestQueryHelpers(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/items?limit=20&page=x&seller_id=3", nil)
	assert.Equal(t, 20, QueryInt(r, "limit"))
	assert.Equal(t, 0, QueryInt(r, "page"))

	id, err := QueryID(r, "seller_id")
	require.NoError(t, err)
	assert.Equal(t, int64(3), *id)

	id, err = QueryID(r, "missing")
	assert.NoError(t, err)
	assert.Nil(t, id)

	_, err = QueryID(httptest.NewRequest(http.MethodGet, "/?seller_id=-1", nil), "seller_id")
	assert.ErrorIs(t, err, apperror.ErrInvalidID)
}

func TestDecode(t *testing.T) {
	type body struct {
		Price *Text `json:"price"`
	}

	t.Run("NumberKeepsLiteral", func(t *testing.T) {
		var b body
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"price": 10.10}`))
		require.NoError(t, Decode(r, &b))
		assert.Equal(t, "10.10", b.Price.String())
	})

	t.Run("String", func(t *testing.T) {
		var b body
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"price": "4.5"}`))
		require.NoError(t, Decode(r, &b))
		assert.Equal(t, "4.5", *b.Price.StringPtr())
	})

	t.Run("NullAndAbsent", func(t *testing.T) {
		var b body
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		require.NoError(t, Decode(r, &b))
		assert.Nil(t, b.Price.StringPtr())
		assert.Equal(t, "", b.Price.String())
	})

	t.Run("EmptyBody", func(t *testing.T) {
		var b body
		r := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
		assert.NoError(t, Decode(r, &b))
	})

	t.Run("Malformed", func(t *testing.T) {
		var b body
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"price":`))
		err := Decode(r, &b)
		assert.ErrorIs(t, err, ErrInvalidJSON)
		assert.Equal(t, http.StatusBadRequest, apperror.Translate(err).Status())
	})

	t.Run("TooLarge", func(t *testing.T) {
		var b body
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"price": "`+strings.Repeat("9", 64)+`"}`))
		r.Body = http.MaxBytesReader(w, r.Body, 8)
		err := Decode(r, &b)
		assert.ErrorIs(t, apperror.Translate(err), apperror.ErrBodyTooLarge)
	})
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated, Message{Message: "ok"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}

func TestForm(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Jacket"))
	fw, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("not really a png"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	require.True(t, IsMultipart(r))

	f, err := ParseForm(r)
	require.NoError(t, err)

	title, ok := f.Value("title")
	assert.True(t, ok)
	assert.Equal(t, "Jacket", title)
	assert.Nil(t, f.Optional("price"))

	file, closeFile, err := f.File("image")
	require.NoError(t, err)
	defer closeFile()
	require.NotNil(t, file)
	assert.Equal(t, "photo.png", file.Filename)

	missing, closeMissing, err := f.File("other")
	require.NoError(t, err)
	closeMissing()
	assert.Nil(t, missing)
}

func TestIsMultipart(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("Content-Type", "application/json")
	assert.False(t, IsMultipart(r))
}
