package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rechilab/volley-backend/internal/model"
	"github.com/rechilab/volley-backend/internal/repository"
	"github.com/rechilab/volley-backend/internal/upload"
	"github.com/rechilab/volley-backend/internal/validate"
)

// ProductStore is the slice of the product repository the handlers need.
type ProductStore interface {
	Create(ctx context.Context, p model.Product) (model.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (model.Product, error)
	List(ctx context.Context, q repository.ListQuery, sellOnly bool) ([]model.Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
}

// ProductHandler serves the admin catalog management and public browsing
// endpoints.
type ProductHandler struct {
	Store ProductStore
}

func NewProductHandler(store ProductStore) *ProductHandler {
	return &ProductHandler{Store: store}
}

const (
	msgBadID           = "ID 格式錯誤"
	msgProductNotFound = "查無商品"
)

// productReq uses pointers so a partial edit can tell "absent" from "zero".
// Admin requests arrive as multipart forms (the image travels alongside),
// hence the form tags.
type productReq struct {
	Name        *string  `json:"name" form:"name"`
	Price       *float64 `json:"price" form:"price"`
	Description *string  `json:"description" form:"description"`
	Category    *string  `json:"category" form:"category"`
	Sell        *bool    `json:"sell" form:"sell"`
}

// Create persists a new product.  The image path was produced by the upload
// side channel before this handler ran; it is attached to the document
// before validation so a missing file fails like any other missing field.
func (h *ProductHandler) Create(c echo.Context) error {
	var req productReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "資料格式錯誤")
	}
	image, _ := c.Get(upload.CtxImagePath).(string)

	p := model.Product{Image: image}
	if msg := applyProductFields(&p, req, image != ""); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	created, err := h.Store.Create(ctx, p)
	if err != nil {
		return failUnknown(c)
	}
	return ok(c, created)
}

// GetAll is the admin listing: every product, searched and paginated, with
// the approximate whole-collection count as total.
func (h *ProductHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	data, total, err := h.Store.List(ctx, listQueryFrom(c), false)
	if err != nil {
		return failUnknown(c)
	}
	return ok(c, listResult{Data: data, Total: total})
}

// Get is the public listing: only sell:true products, with the sell:true
// count as total.
func (h *ProductHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	data, total, err := h.Store.List(ctx, listQueryFrom(c), true)
	if err != nil {
		return failUnknown(c)
	}
	return ok(c, listResult{Data: data, Total: total})
}

// GetID returns a single product, distinguishing malformed ids from missing
// documents.
func (h *ProductHandler) GetID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, msgBadID)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, msgProductNotFound)
		}
		return failUnknown(c)
	}
	return ok(c, p)
}

// Edit applies a partial update.  Provided fields are re-validated with the
// same rules as create; a freshly uploaded image replaces the stored path.
func (h *ProductHandler) Edit(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, msgBadID)
	}
	var req productReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "資料格式錯誤")
	}

	fields := bson.M{}
	if req.Name != nil {
		if *req.Name == "" {
			return fail(c, http.StatusBadRequest, validate.MsgProductNameRequired)
		}
		fields["name"] = *req.Name
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Description != nil {
		if *req.Description == "" {
			return fail(c, http.StatusBadRequest, validate.MsgProductDescriptionRequired)
		}
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		if res := validate.ProductCategory(*req.Category); !res.OK {
			return fail(c, http.StatusBadRequest, res.Message)
		}
		fields["category"] = *req.Category
	}
	if req.Sell != nil {
		fields["sell"] = *req.Sell
	}
	if image, _ := c.Get(upload.CtxImagePath).(string); image != "" {
		fields["image"] = image
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, msgProductNotFound)
		}
		return failUnknown(c)
	}
	return ok(c, nil)
}

// applyProductFields fills p from the request for a full create, returning
// the first failing field's message or "" when everything passes.
func applyProductFields(p *model.Product, req productReq, hasImage bool) string {
	if req.Name == nil || *req.Name == "" {
		return validate.MsgProductNameRequired
	}
	p.Name = *req.Name
	if req.Price == nil {
		return validate.MsgProductPriceRequired
	}
	p.Price = *req.Price
	if !hasImage {
		return validate.MsgProductImageRequired
	}
	if req.Description == nil || *req.Description == "" {
		return validate.MsgProductDescriptionRequired
	}
	p.Description = *req.Description
	if req.Category == nil {
		return validate.MsgProductCategoryRequired
	}
	if res := validate.ProductCategory(*req.Category); !res.OK {
		return res.Message
	}
	p.Category = *req.Category
	if req.Sell == nil {
		return validate.MsgProductSellRequired
	}
	p.Sell = *req.Sell
	return ""
}
