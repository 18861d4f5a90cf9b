package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/apiclient"
)

// LeadHandler takes enquiries from visitors and lets owners work them.
type LeadHandler struct {
	client *apiclient.Client
}

func NewLeadHandler(client *apiclient.Client) *LeadHandler {
	return &LeadHandler{client: client}
}

type leadRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,max=20"`
	Message string `json:"message" validate:"omitempty,max=2000"`
}

type leadStatusRequest struct {
	Status domain.LeadStatus `json:"status" validate:"required,oneof=new contacted qualified converted lost"`
}

// Create files an enquiry; no session is required.
//
// @Summary      Contact the owner of a listing
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        property  path      int          true  "Listing id"
// @Param        body      body      leadRequest  true  "Enquiry"
// @Success      201       {object}  domain.Response[domain.Lead]
// @Failure      422       {object}  ErrorResponse
// @Router       /properties/{property}/leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	id, err := idParam(c, "property")
	if err != nil {
		return err
	}
	var req leadRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	resp, err := client.CreateLead(c.Request().Context(), id, domain.LeadInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

// List handles GET /leads.
//
// @Summary      Leads on my listings
// @Tags         leads
// @Produce      json
// @Success      200  {object}  domain.Page[domain.Lead]
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}
	page, err := client.Leads(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /leads/:lead.
//
// @Summary      Lead detail
// @Tags         leads
// @Produce      json
// @Param        lead  path      int  true  "Lead id"
// @Success      200   {object}  domain.Response[domain.Lead]
// @Router       /leads/{lead} [get]
func (h *LeadHandler) Get(c echo.Context) error {
	id, err := idParam(c, "lead")
	if err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	resp, err := client.Lead(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateStatus handles PUT /leads/:lead/status.
//
// @Summary      Move a lead through the pipeline
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        lead  path      int                true  "Lead id"
// @Param        body  body      leadStatusRequest  true  "New status"
// @Success      200   {object}  domain.Response[domain.Lead]
// @Router       /leads/{lead}/status [put]
func (h *LeadHandler) UpdateStatus(c echo.Context) error {
	id, err := idParam(c, "lead")
	if err != nil {
		return err
	}
	var req leadStatusRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	resp, err := client.UpdateLeadStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /leads/:lead.
//
// @Summary      Delete a lead
// @Tags         leads
// @Produce      json
// @Param        lead  path      int  true  "Lead id"
// @Success      200   {object}  domain.Response[any]
// @Router       /leads/{lead} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "lead")
	if err != nil {
		return err
	}
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}

	resp, err := client.DeleteLead(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Stats handles GET /leads/stats.
//
// @Summary      Lead counters
// @Tags         leads
// @Produce      json
// @Success      200  {object}  domain.Response[domain.LeadStats]
// @Router       /leads/stats [get]
func (h *LeadHandler) Stats(c echo.Context) error {
	client, err := bound(c, h.client)
	if err != nil {
		return err
	}
	resp, err := client.LeadStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
