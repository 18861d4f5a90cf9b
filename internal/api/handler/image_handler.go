package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/apiclient"
)

const (
	imagesField    = "images[]"
	maxImages      = 10
	maxImageBytes  = 5 << 20
	maxUploadBytes = maxImages * maxImageBytes
)

type ImageHandler struct {
	client *apiclient.Client
}

func NewImageHandler(client *apiclient.Client) *ImageHandler {
	return &ImageHandler{client: client}
}

type reorderRequest struct {
	ImageIDs []int64 `json:"image_ids" validate:"required,min=1,dive,gt=0"`
}

// Upload relays the browser's multipart form to the marketplace API.
//
// @Summary      Upload listing images
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Param        property  path      int   true  "Listing id"
// @Param        images[]  formData  file  true  "Image files"
// @Success      201       {object}  domain.Page[domain.PropertyImage]
// @Failure      401       {object}  ErrorResponse
// @Failure      422       {object}  ErrorResponse
// @Router       /properties/{property}/images [post]
func (h *ImageHandler) Upload(c echo.Context) error {
	id, err := idParam(c, "property")
	if err != nil {
		return err
	}

	c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, maxUploadBytes)
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}
	files := form.File[imagesField]
	if len(files) == 0 {
		return &ValidationError{Fields: map[string][]string{"images": {"At least one image is required"}}}
	}
	if len(files) > maxImages {
		return &ValidationError{Fields: map[string][]string{"images": {fmt.Sprintf("At most %d images are allowed", maxImages)}}}
	}

	uploads := make([]domain.ImageUpload, 0, len(files))
	for _, fh := range files {
		up, err := readUpload(fh)
		if err != nil {
			return err
		}
		uploads = append(uploads, up)
	}

	client, err := bound(c, h.client)
	if err != nil {
		return err
	}
	page, err := client.UploadPropertyImages(c.Request().Context(), id, uploads)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, page)
}

func readUpload(fh *multipart.FileHeader) (domain.ImageUpload, error) {
	if fh.Size > maxImageBytes {
		return domain.ImageUpload{}, &ValidationError{Fields: map[string][]string{
			"images": {fmt.Sprintf("%s is larger than 5 MB", fh.Filename)},
		}}
	}
	f, err := fh.Open()
	if err != nil {
		return domain.ImageUpload{}, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return domain.ImageUpload{}, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}
	return domain.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Content:     content,
	}, nil
}

// Delete handles DELETE /properties/:property/images/:image.
//
// @Summary      Delete a listing image
// @Tags         images
// @Produce      json
// @Param        property  path      int  true  "Listing id"
// @Param        image     path      int  true  "Image id"
// @Success      200       {object}  domain.Response[any]
// @Router       /properties/{property}/images/{image} [delete]
func (h *ImageHandler) Delete(c echo.Context) error {
	propertyID, imageID, err := imageParams(c)
	if err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	resp, err := client.DeletePropertyImage(c.Request().Context(), propertyID, imageID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// SetPrimary handles PUT /properties/:property/images/:image/primary.
//
// @Summary      Mark an image as the cover
// @Tags         images
// @Produce      json
// @Param        property  path      int  true  "Listing id"
// @Param        image     path      int  true  "Image id"
// @Success      200       {object}  domain.Response[any]
// @Router       /properties/{property}/images/{image}/primary [put]
func (h *ImageHandler) SetPrimary(c echo.Context) error {
	propertyID, imageID, err := imageParams(c)
	if err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	resp, err := client.SetPrimaryImage(c.Request().Context(), propertyID, imageID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Reorder handles PUT /properties/:property/images/reorder.
//
// @Summary      Reorder listing images
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        property  path      int             true  "Listing id"
// @Param        body      body      reorderRequest  true  "Image ids in display order"
// @Success      200       {object}  domain.Response[any]
// @Router       /properties/{property}/images/reorder [put]
func (h *ImageHandler) Reorder(c echo.Context) error {
	id, err := idParam(c, "property")
	if err != nil {
		return err
	}
	var req reorderRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	resp, err := client.ReorderImages(c.Request().Context(), id, req.ImageIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func imageParams(c echo.Context) (int64, int64, error) {
	propertyID, err := idParam(c, "property")
	if err != nil {
		return 0, 0, err
	}
	imageID, err := idParam(c, "image")
	if err != nil {
		return 0, 0, err
	}
	return propertyID, imageID, nil
}
