package handler

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api/middleware"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/ports"
)

func multipartContext(t *testing.T, files map[string]string, sess ports.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for name, content := range files {
		part, err := w.CreateFormFile(imagesField, name)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		_, _ = part.Write([]byte(content))
	}
	_ = w.Close()

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/properties/3/images", buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("property")
	c.SetParamValues("3")
	if sess != nil {
		middleware.SetSession(c, sess)
	}
	return c, rec
}

func TestImageHandler_Upload(t *testing.T) {
	u := newUpstream(t, reply(http.StatusCreated, `{"success":true,"data":[{"id":1},{"id":2}]}`))
	sess := openSession(t, u, signedIn())

	c, rec := multipartContext(t, map[string]string{"a.jpg": "jpeg-bytes", "b.jpg": "more-bytes"}, sess)
	if err := NewImageHandler(u.client).Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	last, body := u.request()
	if !strings.HasPrefix(last.Header.Get("Content-Type"), "multipart/form-data") {
		t.Fatalf("expected multipart upstream request, got %q", last.Header.Get("Content-Type"))
	}
	if strings.Count(body, `name="images[]"`) != 2 {
		t.Fatalf("expected two images[] parts in %q", body)
	}
}

func TestImageHandler_Upload_NoFiles(t *testing.T) {
	c, _ := multipartContext(t, nil, nil)

	err := NewImageHandler(nil).Upload(c)

	var ve *ValidationError
	if !errors.As(err, &ve) || len(ve.Fields["images"]) == 0 {
		t.Fatalf("expected images validation error, got %v", err)
	}
}

func TestImageHandler_Reorder_Validation(t *testing.T) {
	c, _ := newContext(http.MethodPut, "/properties/3/images/reorder", `{"image_ids":[]}`, nil)
	c.SetParamNames("property")
	c.SetParamValues("3")

	err := NewImageHandler(nil).Reorder(c)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
