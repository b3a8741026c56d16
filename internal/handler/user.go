package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rechilab/volley-backend/internal/config"
	"github.com/rechilab/volley-backend/internal/middleware"
	"github.com/rechilab/volley-backend/internal/model"
	"github.com/rechilab/volley-backend/internal/repository"
	"github.com/rechilab/volley-backend/internal/utils"
	"github.com/rechilab/volley-backend/internal/validate"
)

// UserStore is the slice of the user repository the user handlers need.
type UserStore interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (model.User, error)
	PushToken(ctx context.Context, id primitive.ObjectID, token string) error
	PullToken(ctx context.Context, id primitive.ObjectID, token string) error
	SwapToken(ctx context.Context, id primitive.ObjectID, oldToken, newToken string) error
	UpdateCart(ctx context.Context, id primitive.ObjectID, cart []model.CartItem) error
}

// ProductFinder resolves the product references embedded in a cart.
type ProductFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (model.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Product, error)
}

// UserHandler bundles dependencies for account, session and cart endpoints.
type UserHandler struct {
	Cfg      config.Config
	Users    UserStore
	Products ProductFinder
}

func NewUserHandler(cfg config.Config, users UserStore, products ProductFinder) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Products: products}
}

const (
	msgAccountNotFound = "帳號不存在"
	msgPasswordWrong   = "密碼錯誤"
)

// ----- DTOs -----

type registerReq struct {
	Account  string `json:"account"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResult struct {
	Token        string `json:"token"`
	Account      string `json:"account"`
	Email        string `json:"email"`
	Role         int    `json:"role"`
	CartQuantity int    `json:"cartQuantity"`
}

type profileResult struct {
	ID           string `json:"_id"`
	Account      string `json:"account"`
	Email        string `json:"email"`
	Role         int    `json:"role"`
	CartQuantity int    `json:"cartQuantity"`
}

type cartEditReq struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type cartEntry struct {
	Product  model.Product `json:"product"`
	Quantity int           `json:"quantity"`
}

// Register creates a new account.  The first failing field's message is the
// one surfaced; the plaintext password is hashed before it ever reaches the
// store and is never echoed back.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "資料格式錯誤")
	}
	req.Account = strings.TrimSpace(req.Account)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	for _, res := range []validate.Result{
		validate.Account(req.Account),
		validate.Email(req.Email),
		validate.Password(req.Password),
	} {
		if !res.OK {
			return fail(c, http.StatusBadRequest, res.Message)
		}
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return failUnknown(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, model.User{
		Account:  req.Account,
		Email:    req.Email,
		Password: hash,
		Role:     model.RoleUser,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateAccount):
			return fail(c, http.StatusBadRequest, validate.MsgAccountTaken)
		case errors.Is(err, repository.ErrDuplicateEmail):
			return fail(c, http.StatusBadRequest, validate.MsgEmailTaken)
		}
		return failUnknown(c)
	}
	return ok(c, profileResult{
		ID:      u.ID.Hex(),
		Account: u.Account,
		Email:   u.Email,
		Role:    u.Role,
	})
}

// Login verifies credentials, appends a fresh session token to the user's
// list and returns it with the profile.  "account not found" and "password
// incorrect" are reported distinctly.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "資料格式錯誤")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusBadRequest, msgAccountNotFound)
		}
		return failUnknown(c)
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return fail(c, http.StatusBadRequest, msgPasswordWrong)
	}

	token, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, h.Cfg.TokenTTLDays)
	if err != nil {
		return failUnknown(c)
	}
	if err := h.Users.PushToken(ctx, u.ID, token.Token); err != nil {
		return failUnknown(c)
	}

	return ok(c, loginResult{
		Token:        token.Token,
		Account:      u.Account,
		Email:        u.Email,
		Role:         u.Role,
		CartQuantity: u.CartQuantity(),
	})
}

// Logout removes the presented token from the user's active list.  The route
// is expiry-exempt so an expired session can still clean itself up.
func (h *UserHandler) Logout(c echo.Context) error {
	u := c.Get(middleware.CtxUser).(model.User)
	token := c.Get(middleware.CtxToken).(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.PullToken(ctx, u.ID, token); err != nil {
		return failUnknown(c)
	}
	return ok(c, nil)
}

// Extend swaps the presented token for a freshly issued one in place.  Like
// Logout this works with an expired token, as long as it is still in the
// list; afterwards the old token no longer authorizes anything.
func (h *UserHandler) Extend(c echo.Context) error {
	u := c.Get(middleware.CtxUser).(model.User)
	oldToken := c.Get(middleware.CtxToken).(string)

	token, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, h.Cfg.TokenTTLDays)
	if err != nil {
		return failUnknown(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SwapToken(ctx, u.ID, oldToken, token.Token); err != nil {
		return failUnknown(c)
	}
	return ok(c, token.Token)
}

// Profile returns the authenticated user's profile.
func (h *UserHandler) Profile(c echo.Context) error {
	u := c.Get(middleware.CtxUser).(model.User)
	return ok(c, profileResult{
		ID:           u.ID.Hex(),
		Account:      u.Account,
		Email:        u.Email,
		Role:         u.Role,
		CartQuantity: u.CartQuantity(),
	})
}

// GetCart returns the cart with each product reference resolved to the full
// product document.  Entries whose product has been deleted are dropped.
func (h *UserHandler) GetCart(c echo.Context) error {
	u := c.Get(middleware.CtxUser).(model.User)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fresh, err := h.Users.FindByID(ctx, u.ID)
	if err != nil {
		return failUnknown(c)
	}
	ids := make([]primitive.ObjectID, 0, len(fresh.Cart))
	for _, item := range fresh.Cart {
		ids = append(ids, item.Product)
	}
	products, err := h.Products.FindByIDs(ctx, ids)
	if err != nil {
		return failUnknown(c)
	}
	byID := make(map[primitive.ObjectID]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	entries := []cartEntry{}
	for _, item := range fresh.Cart {
		if p, found := byID[item.Product]; found {
			entries = append(entries, cartEntry{Product: p, Quantity: item.Quantity})
		}
	}
	return ok(c, entries)
}

// EditCart merges a quantity delta into the embedded cart.  Adding a product
// that is not already in the cart requires it to exist and be on sale; an
// entry whose quantity drops to zero or below is removed.  The result is the
// new total cart quantity.
//
// This is a read-modify-write on the user document with no cross-request
// guard; concurrent edits of the same cart are last-write-wins.
func (h *UserHandler) EditCart(c echo.Context) error {
	u := c.Get(middleware.CtxUser).(model.User)

	var req cartEditReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "資料格式錯誤")
	}
	productID, err := primitive.ObjectIDFromHex(req.Product)
	if err != nil {
		return fail(c, http.StatusBadRequest, msgBadID)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fresh, err := h.Users.FindByID(ctx, u.ID)
	if err != nil {
		return failUnknown(c)
	}

	idx := -1
	for i, item := range fresh.Cart {
		if item.Product == productID {
			idx = i
			break
		}
	}

	if idx >= 0 {
		fresh.Cart[idx].Quantity += req.Quantity
		if fresh.Cart[idx].Quantity <= 0 {
			fresh.Cart = append(fresh.Cart[:idx], fresh.Cart[idx+1:]...)
		}
	} else {
		if req.Quantity <= 0 {
			// Removing something that is not there is a no-op.
			return ok(c, fresh.CartQuantity())
		}
		p, err := h.Products.FindByID(ctx, productID)
		if err != nil || !p.Sell {
			return fail(c, http.StatusNotFound, msgProductNotFound)
		}
		fresh.Cart = append(fresh.Cart, model.CartItem{Product: productID, Quantity: req.Quantity})
	}

	if err := h.Users.UpdateCart(ctx, u.ID, fresh.Cart); err != nil {
		return failUnknown(c)
	}
	return ok(c, fresh.CartQuantity())
}
