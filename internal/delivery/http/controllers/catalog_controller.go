package controllers

import (
	"log/slog"
	"net/http"
	"regexp"

	h "bookingcalendar/internal/delivery/http/helpers"
	"bookingcalendar/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

const maxNameLen = 200

// CreateArtistRequest is the request body for POST /artists.
type CreateArtistRequest struct {
	Name     string   `json:"name"`
	RoleTags []string `json:"role_tags"`
	Contact  *string  `json:"contact"`
}

// Validate implements Validator.
func (a CreateArtistRequest) Validate() []string {
	return h.ValidationMessages(validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required, validation.Length(1, maxNameLen)),
		validation.Field(&a.RoleTags, validation.Each(validation.Length(0, 50))),
		validation.Field(&a.Contact, validation.Length(0, maxNameLen)),
	))
}

// CreateFormatRequest is the request body for POST /formats. Color is optional.
type CreateFormatRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Validate implements Validator.
func (f CreateFormatRequest) Validate() []string {
	return h.ValidationMessages(validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, maxNameLen)),
		validation.Field(&f.Color, validation.Match(hexColor).Error("must be a #rrggbb colour")),
	))
}

// CreateContactRequest is the request body for POST /promoters and POST /tour-managers.
type CreateContactRequest struct {
	Name    string  `json:"name"`
	Contact *string `json:"contact"`
}

// Validate implements Validator.
func (c CreateContactRequest) Validate() []string {
	return h.ValidationMessages(validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, maxNameLen)),
		validation.Field(&c.Contact, validation.Length(0, maxNameLen)),
	))
}

// CreateServiceRequest is the request body for POST /services.
type CreateServiceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Validate implements Validator.
func (s CreateServiceRequest) Validate() []string {
	return h.ValidationMessages(validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, maxNameLen)),
	))
}

// CatalogController serves the reference entities events point at.
type CatalogController struct {
	Logger  *slog.Logger
	Service domain.CatalogService
}

func NewCatalogController(logger *slog.Logger, svc domain.CatalogService) *CatalogController {
	return &CatalogController{
		Logger:  logger,
		Service: svc,
	}
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// ListArtists godoc
// @Summary List artists
// @Description Returns every artist ordered by name.
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the artists"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /artists [get]
func (c *CatalogController) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := c.Service.ListArtists(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, nonNil(artists))
}

// CreateArtist godoc
// @Summary Create an artist
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateArtistRequest true "Artist"
// @Success 201 {object} helpers.APIResponse "data contains the created artist"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /artists [post]
func (c *CatalogController) CreateArtist(w http.ResponseWriter, r *http.Request) {
	var req CreateArtistRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	artist := domain.NewArtist(req.Name, req.RoleTags, req.Contact)
	if err := c.Service.CreateArtist(r.Context(), artist); err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, artist)
}

// ListFormats godoc
// @Summary List formats
// @Description Returns every show format ordered by name.
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the formats"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /formats [get]
func (c *CatalogController) ListFormats(w http.ResponseWriter, r *http.Request) {
	formats, err := c.Service.ListFormats(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, nonNil(formats))
}

// CreateFormat godoc
// @Summary Create a format
// @Description Color defaults to #2b8cbe when omitted.
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateFormatRequest true "Format"
// @Success 201 {object} helpers.APIResponse "data contains the created format"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /formats [post]
func (c *CatalogController) CreateFormat(w http.ResponseWriter, r *http.Request) {
	var req CreateFormatRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	format := domain.NewFormat(req.Name, req.Color)
	if err := c.Service.CreateFormat(r.Context(), format); err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, format)
}

// ListPromoters godoc
// @Summary List promoters
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the promoters"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /promoters [get]
func (c *CatalogController) ListPromoters(w http.ResponseWriter, r *http.Request) {
	promoters, err := c.Service.ListPromoters(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, nonNil(promoters))
}

// CreatePromoter godoc
// @Summary Create a promoter
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateContactRequest true "Promoter"
// @Success 201 {object} helpers.APIResponse "data contains the created promoter"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /promoters [post]
func (c *CatalogController) CreatePromoter(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	promoter := &domain.Promoter{Name: req.Name, Contact: req.Contact}
	if err := c.Service.CreatePromoter(r.Context(), promoter); err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, promoter)
}

// ListTourManagers godoc
// @Summary List tour managers
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the tour managers"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tour-managers [get]
func (c *CatalogController) ListTourManagers(w http.ResponseWriter, r *http.Request) {
	managers, err := c.Service.ListTourManagers(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, nonNil(managers))
}

// CreateTourManager godoc
// @Summary Create a tour manager
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateContactRequest true "Tour manager"
// @Success 201 {object} helpers.APIResponse "data contains the created tour manager"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tour-managers [post]
func (c *CatalogController) CreateTourManager(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	manager := &domain.TourManager{Name: req.Name, Contact: req.Contact}
	if err := c.Service.CreateTourManager(r.Context(), manager); err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, manager)
}

// ListServices godoc
// @Summary List services
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the services"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /services [get]
func (c *CatalogController) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := c.Service.ListServices(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, nonNil(services))
}

// CreateService godoc
// @Summary Create a service
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateServiceRequest true "Service"
// @Success 201 {object} helpers.APIResponse "data contains the created service"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /services [post]
func (c *CatalogController) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	service := &domain.Service{Name: req.Name, Description: req.Description}
	if err := c.Service.CreateService(r.Context(), service); err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, service)
}
