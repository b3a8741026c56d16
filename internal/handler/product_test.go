package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rechilab/volley-backend/internal/model"
	"github.com/rechilab/volley-backend/internal/upload"
	"github.com/rechilab/volley-backend/internal/validate"
)

const productBody = `{"name":"排球","price":880,"description":"比賽用球","category":"球具","sell":true}`

func TestProductCreate(t *testing.T) {
	store := newMemProductStore()
	h := NewProductHandler(store)

	c, rec := newJSONContext(t, http.MethodPost, "/products", productBody)
	c.Set(upload.CtxImagePath, "uploads/ball.jpg")
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var p model.Product
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Result, &p))
	assert.False(t, p.ID.IsZero())
	assert.Equal(t, "排球", p.Name)
	assert.Equal(t, "uploads/ball.jpg", p.Image)
	assert.True(t, p.Sell)
}

func TestProductCreateValidationOrder(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		image   string
		message string
	}{
		{"missing name", `{"price":880,"description":"d","category":"球具","sell":true}`, "uploads/x.jpg", validate.MsgProductNameRequired},
		{"missing price", `{"name":"排球","description":"d","category":"球具","sell":true}`, "uploads/x.jpg", validate.MsgProductPriceRequired},
		{"missing image", productBody, "", validate.MsgProductImageRequired},
		{"missing description", `{"name":"排球","price":880,"category":"球具","sell":true}`, "uploads/x.jpg", validate.MsgProductDescriptionRequired},
		{"missing category", `{"name":"排球","price":880,"description":"d","sell":true}`, "uploads/x.jpg", validate.MsgProductCategoryRequired},
		{"bad category", `{"name":"排球","price":880,"description":"d","category":"食品","sell":true}`, "uploads/x.jpg", validate.MsgProductCategoryInvalid},
		{"missing sell", `{"name":"排球","price":880,"description":"d","category":"球具"}`, "uploads/x.jpg", validate.MsgProductSellRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewProductHandler(newMemProductStore())
			c, rec := newJSONContext(t, http.MethodPost, "/products", tc.body)
			if tc.image != "" {
				c.Set(upload.CtxImagePath, tc.image)
			}
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.message, decodeEnvelope(t, rec).Message)
		})
	}
}

func TestProductGetID(t *testing.T) {
	store := newMemProductStore()
	h := NewProductHandler(store)
	p, err := store.Create(context.Background(), model.Product{Name: "排球", Sell: true})
	require.NoError(t, err)

	get := func(id string) (int, envelope) {
		c, rec := newJSONContext(t, http.MethodGet, "/products/"+id, "")
		c.SetParamNames("id")
		c.SetParamValues(id)
		require.NoError(t, h.GetID(c))
		return rec.Code, decodeEnvelope(t, rec)
	}

	code, env := get("not-an-id")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, msgBadID, env.Message)

	code, env = get(primitive.NewObjectID().Hex())
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, msgProductNotFound, env.Message)

	code, env = get(p.ID.Hex())
	assert.Equal(t, http.StatusOK, code)
	var got model.Product
	require.NoError(t, json.Unmarshal(env.Result, &got))
	assert.Equal(t, p.ID, got.ID)
}

func TestProductListings(t *testing.T) {
	store := newMemProductStore()
	h := NewProductHandler(store)
	_, err := store.Create(context.Background(), model.Product{Name: "排球", Sell: true})
	require.NoError(t, err)
	_, err = store.Create(context.Background(), model.Product{Name: "舊排球", Sell: false})
	require.NoError(t, err)

	// Public listing only carries sell:true products.
	c, rec := newJSONContext(t, http.MethodGet, "/products", "")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var public listResult
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Result, &public))
	data, err := json.Marshal(public.Data)
	require.NoError(t, err)
	var publicItems []model.Product
	require.NoError(t, json.Unmarshal(data, &publicItems))
	require.Len(t, publicItems, 1)
	assert.Equal(t, "排球", publicItems[0].Name)
	assert.Equal(t, int64(1), public.Total)

	// Admin listing carries everything.
	c, rec = newJSONContext(t, http.MethodGet, "/products/all", "")
	require.NoError(t, h.GetAll(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var admin listResult
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Result, &admin))
	assert.Equal(t, int64(2), admin.Total)
}

func TestProductEdit(t *testing.T) {
	store := newMemProductStore()
	h := NewProductHandler(store)
	p, err := store.Create(context.Background(), model.Product{
		Name: "排球", Price: 880, Description: "d", Category: "球具", Sell: true,
	})
	require.NoError(t, err)

	edit := func(id, body string) (int, envelope) {
		c, rec := newJSONContext(t, http.MethodPatch, "/products/"+id, body)
		c.SetParamNames("id")
		c.SetParamValues(id)
		require.NoError(t, h.Edit(c))
		return rec.Code, decodeEnvelope(t, rec)
	}

	// Partial update touches only the given fields.
	code, _ := edit(p.ID.Hex(), `{"price":660,"sell":false}`)
	assert.Equal(t, http.StatusOK, code)

	got, err := store.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(660), got.Price)
	assert.False(t, got.Sell)
	assert.Equal(t, "排球", got.Name)

	// Provided fields are still validated.
	code, env := edit(p.ID.Hex(), `{"category":"食品"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, validate.MsgProductCategoryInvalid, env.Message)

	code, env = edit(primitive.NewObjectID().Hex(), `{"price":100}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, msgProductNotFound, env.Message)

	code, env = edit("nope", `{"price":100}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, msgBadID, env.Message)
}
