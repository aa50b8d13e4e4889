package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/marketloop/commerce-api/internal/api/metrics"
	"github.com/marketloop/commerce-api/internal/core/domain"
	"github.com/marketloop/commerce-api/internal/core/ports"
)

// maxProductImages caps the images accepted on a single create or update.
const maxProductImages = 12

// ImageStore is the interface the handler uses to persist uploaded images.
type ImageStore interface {
	Save(src io.Reader, originalName string) (string, error)
}

// ProductHandler handles catalog routes. Create and Update accept
// multipart/form-data so image uploads ride along with the fields.
type ProductHandler struct {
	service ports.ProductService
	images  ImageStore
}

func NewProductHandler(service ports.ProductService, images ImageStore) *ProductHandler {
	return &ProductHandler{service: service, images: images}
}

// Create adds a new product owned by the caller (admin/seller only).
//
// @Summary      Create a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name         formData  string  true   "Product name"
// @Param        price        formData  number  true   "Price"
// @Param        description  formData  string  false  "Description"
// @Param        category     formData  string  false  "Category"
// @Param        stock        formData  integer false  "Stock, defaults to 0"
// @Param        images       formData  file    false  "Up to 12 image files"
// @Success      201  {object}  messageResponse
// @Failure      400  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /product [post]
func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	name := c.FormValue("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "name is required"})
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "price must be a valid number"})
	}

	stock := 0
	if raw := c.FormValue("stock"); raw != "" {
		stock, err = strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "stock must be a valid integer"})
		}
	}

	paths, err := h.storeImages(c)
	if err != nil {
		return err
	}

	input := ports.CreateProductInput{
		Name:        name,
		Price:       price,
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Stock:       stock,
		Images:      paths,
		OwnerID:     actor.UserID,
	}

	if _, err := h.service.Create(c.Request().Context(), input); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
		}
		return err
	}

	metrics.ProductsCreatedTotal.WithLabelValues(input.Category).Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "product added successfully"})
}

// Update applies a partial update; only fields present in the form are
// touched, and uploaded images replace the image set wholesale.
//
// @Summary      Update a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Product id"
// @Param        images  formData  file    false  "Replacement image files"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /product/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	var input ports.UpdateProductInput
	input.Name = formString(form, "name")
	input.Description = formString(form, "description")
	input.Category = formString(form, "category")

	if raw := formString(form, "price"); raw != nil {
		price, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "price must be a valid number"})
		}
		input.Price = &price
	}
	if raw := formString(form, "stock"); raw != nil {
		stock, err := strconv.Atoi(*raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "stock must be a valid integer"})
		}
		input.Stock = &stock
	}

	paths, err := h.storeImages(c)
	if err != nil {
		return err
	}
	if len(paths) > 0 {
		input.Images = paths
	}

	modified, err := h.service.Update(c.Request().Context(), c.Param("id"), actor, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, messageResponse{Message: "product not found"})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, messageResponse{Message: "not authorized"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
		}
		return err
	}

	if !modified {
		return c.JSON(http.StatusOK, messageResponse{Message: "no changes made"})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "product updated successfully"})
}

// Delete removes a product (owner or admin only).
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /product/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), actor); err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, messageResponse{Message: "product not found"})
		case errors.Is(err, domain.ErrForbidden):
			return c.JSON(http.StatusForbidden, messageResponse{Message: "not authorized"})
		}
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "product deleted successfully"})
}

// List returns the whole catalog with owners expanded. Public.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Success      200  {array}  productResponse
// @Router       /product [get]
func (h *ProductHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductListResponse(views))
}

// Get returns one product with its owner expanded. Public.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id  path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  messageResponse
// @Router       /product/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "product not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(*view))
}

// storeImages persists the uploaded "images" files in order and returns
// their stored paths. A request without files yields a nil slice.
func (h *ProductHandler) storeImages(c echo.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxProductImages {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "too many images")
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable image upload")
		}
		path, err := h.images.Save(src, fh.Filename)
		src.Close()
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// formString returns the first value for key, or nil when the field was not
// present in the form at all. This is what distinguishes "set to empty"
// from "not supplied" on partial updates.
func formString(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
