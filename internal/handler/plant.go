package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hmisra/plant-store/internal/catalog"
	"github.com/hmisra/plant-store/internal/config"
	"github.com/hmisra/plant-store/internal/model"
	"github.com/hmisra/plant-store/internal/queue"
	"github.com/hmisra/plant-store/internal/repository"
	queue_publisher "github.com/hmisra/plant-store/internal/service"
)

// PlantStore is the slice of the plant repository the catalog endpoints
// need.  *repository.PlantRepo satisfies it; tests use an in-memory fake.
type PlantStore interface {
	Create(ctx context.Context, p model.Plant) (model.Plant, error)
	GetAll(ctx context.Context) ([]model.Plant, error)
	GetByID(ctx context.Context, id uint64) (model.Plant, error)
	Update(ctx context.Context, id uint64, u model.PlantUpdate) (model.Plant, error)
	Delete(ctx context.Context, id uint64) error
}

// Uploader sends a local file to the media host and returns its durable
// public URL.  Only the URL string is ever stored.
type Uploader interface {
	Upload(ctx context.Context, path, folder string) (string, error)
}

// PlantHandler bundles dependencies for the catalog endpoints.  Publish is
// the best-effort event hook; it defaults to the RabbitMQ publisher and can
// be swapped out in tests.
type PlantHandler struct {
	Cfg     config.Config
	Plants  PlantStore
	Media   Uploader
	Publish func(ctx context.Context, ev queue.PlantEvent) error
}

func NewPlantHandler(cfg config.Config, store PlantStore, media Uploader) *PlantHandler {
	return &PlantHandler{
		Cfg:     cfg,
		Plants:  store,
		Media:   media,
		Publish: queue_publisher.PublishPlantEvent,
	}
}

// Create handles the auth-gated multipart creation of a plant.  Required
// fields are checked in a fixed order (name, price, description, image,
// categories) and the first missing or invalid one is reported; a request
// missing several fields always gets the same message for the same payload.
// The image is uploaded to the media host first and only its returned URL is
// persisted.  If the upload succeeds but the database write fails the asset
// is orphaned on the host; that is accepted rather than compensated here.
func (h *PlantHandler) Create(c echo.Context) error {
	name := c.FormValue("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name is required"})
	}
	priceStr := c.FormValue("price")
	if priceStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Price is required"})
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Price must be a positive number"})
	}
	description := c.FormValue("description")
	if description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Description is required"})
	}
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Image is required"})
	}
	cats := formCategories(c)
	if len(cats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "At least one category is required"})
	}

	availability := true
	if v := c.FormValue("availability"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			availability = b
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	// Spool the upload to a temp file; the media host client takes a path.
	tmpPath, err := saveTemp(file)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error creating plant", "error": err.Error()})
	}
	defer os.Remove(tmpPath)

	imageURL, err := h.Media.Upload(ctx, tmpPath, h.Cfg.UploadFolder)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error creating plant", "error": err.Error()})
	}

	plant, err := h.Plants.Create(ctx, model.Plant{
		Name:         name,
		Price:        price,
		Description:  description,
		Categories:   cats,
		Availability: availability,
		Image:        imageURL,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error creating plant", "error": err.Error()})
	}

	h.publishEvent(c, queue.ActionCreated, plant)

	return c.JSON(http.StatusCreated, echo.Map{"message": "Plant created successfully", "plant": plant})
}

// List returns the catalog.  The optional ?category= and ?search= query
// parameters run the in-memory query engine over the full fetch; with
// neither set the fetch order comes back untouched.  Public, no auth.
func (h *PlantHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	plants, err := h.Plants.GetAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error fetching plants", "error": err.Error()})
	}

	filtered := catalog.Filter(plants, catalog.Query{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    filtered,
		"message": "Plants fetched successfully",
	})
}

// GetByID returns a single plant.  Unknown and unparseable ids both read as
// "no such plant".
func (h *PlantHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Plant not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	plant, err := h.Plants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Plant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error fetching plant", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, plant)
}

// Update applies a partial update.  Fields absent from the body keep their
// stored values; provided fields are validated against the same rules as
// creation.
func (h *PlantHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Plant not found"})
	}
	var upd model.PlantUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if upd.Name != nil && *upd.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name is required"})
	}
	if upd.Price != nil && *upd.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Price must be a positive number"})
	}
	if upd.Description != nil && *upd.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Description is required"})
	}
	if upd.Categories != nil && len(upd.Categories) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "At least one category is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	plant, err := h.Plants.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Plant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error updating plant", "error": err.Error()})
	}

	h.publishEvent(c, queue.ActionUpdated, plant)

	return c.JSON(http.StatusOK, echo.Map{"message": "Plant updated successfully", "plant": plant})
}

// Delete removes a plant by id.
func (h *PlantHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Plant not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	plant, err := h.Plants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Plant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error deleting plant", "error": err.Error()})
	}
	if err := h.Plants.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Plant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error deleting plant", "error": err.Error()})
	}

	h.publishEvent(c, queue.ActionDeleted, plant)

	return c.JSON(http.StatusOK, echo.Map{"message": "Plant deleted successfully"})
}

// publishEvent emits a catalog change event in the background.  Failures are
// the publisher's problem to log; a catalog write never fails because the
// broker is down.
func (h *PlantHandler) publishEvent(c echo.Context, action string, p model.Plant) {
	if h.Publish == nil {
		return
	}
	names := make([]string, len(p.Categories))
	for i, cat := range p.Categories {
		names[i] = cat.String()
	}
	var adminID uint64
	if v, ok := c.Get("admin_id").(uint64); ok {
		adminID = v
	}
	ev := queue.PlantEvent{
		Action:     action,
		PlantID:    p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Categories: names,
		AdminID:    adminID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = h.Publish(context.Background(), ev) }()
}

// formCategories collects the category fields from a multipart form.  The
// web client posts repeated "categories[]" fields; plain "categories" is
// accepted too.  Blank entries are dropped.
func formCategories(c echo.Context) []model.Category {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	raw := form.Value["categories[]"]
	if len(raw) == 0 {
		raw = form.Value["categories"]
	}
	out := []model.Category{}
	for _, v := range raw {
		if v != "" {
			out = append(out, model.Category(v))
		}
	}
	return out
}

// saveTemp copies an uploaded file to a temp path and returns it.  The
// caller removes the file when done.
func saveTemp(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "plant-upload-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}
