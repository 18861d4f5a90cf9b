package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

const imagesField = "images[]"

// UploadPropertyImages sends files as a multipart form, one images[] part each.
func (c *Client) UploadPropertyImages(ctx context.Context, propertyID int64, images []domain.ImageUpload) (*domain.Page[domain.PropertyImage], error) {
	if images == nil {
		images = []domain.ImageUpload{}
	}
	return fetchPage[domain.PropertyImage](ctx, c, request{
		method: http.MethodPost,
		path:   propertyPath(propertyID) + "/images",
		route:  "/properties/{id}/images",
		form:   images,
	})
}

func (c *Client) DeletePropertyImage(ctx context.Context, propertyID, imageID int64) (*domain.Response[json.RawMessage], error) {
	return fetch[json.RawMessage](ctx, c, request{
		method: http.MethodDelete,
		path:   fmt.Sprintf("%s/images/%d", propertyPath(propertyID), imageID),
		route:  "/properties/{id}/images/{imageId}",
	})
}

func (c *Client) SetPrimaryImage(ctx context.Context, propertyID, imageID int64) (*domain.Response[json.RawMessage], error) {
	return fetch[json.RawMessage](ctx, c, request{
		method: http.MethodPut,
		path:   fmt.Sprintf("%s/images/%d/primary", propertyPath(propertyID), imageID),
		route:  "/properties/{id}/images/{imageId}/primary",
	})
}

// ReorderImages stores imageIDs as the new display order.
func (c *Client) ReorderImages(ctx context.Context, propertyID int64, imageIDs []int64) (*domain.Response[json.RawMessage], error) {
	return fetch[json.RawMessage](ctx, c, request{
		method: http.MethodPut,
		path:   propertyPath(propertyID) + "/images/reorder",
		route:  "/properties/{id}/images/reorder",
		body:   map[string][]int64{"image_ids": imageIDs},
	})
}

func encodeImages(images []domain.ImageUpload) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, img := range images {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, imagesField, img.Filename))
		ct := img.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", img.Filename, err)
		}
		if _, err := part.Write(img.Content); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", img.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
