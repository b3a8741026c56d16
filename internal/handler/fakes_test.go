package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rechilab/volley-backend/internal/model"
	"github.com/rechilab/volley-backend/internal/repository"
)

// ----- in-memory stores -----

type memUserStore struct {
	users map[primitive.ObjectID]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[primitive.ObjectID]model.User{}}
}

func (s *memUserStore) Create(_ context.Context, u model.User) (model.User, error) {
	for _, existing := range s.users {
		if existing.Account == u.Account {
			return model.User{}, repository.ErrDuplicateAccount
		}
		if existing.Email == u.Email {
			return model.User{}, repository.ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	if u.Tokens == nil {
		u.Tokens = []string{}
	}
	if u.Cart == nil {
		u.Cart = []model.CartItem{}
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (model.User, error) {
	u, found := s.users[id]
	if !found {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) PushToken(_ context.Context, id primitive.ObjectID, token string) error {
	u, found := s.users[id]
	if !found {
		return repository.ErrNotFound
	}
	u.Tokens = append(u.Tokens, token)
	s.users[id] = u
	return nil
}

func (s *memUserStore) PullToken(_ context.Context, id primitive.ObjectID, token string) error {
	u, found := s.users[id]
	if !found {
		return repository.ErrNotFound
	}
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	s.users[id] = u
	return nil
}

func (s *memUserStore) SwapToken(_ context.Context, id primitive.ObjectID, oldToken, newToken string) error {
	u, found := s.users[id]
	if !found {
		return repository.ErrNotFound
	}
	for i, t := range u.Tokens {
		if t == oldToken {
			u.Tokens[i] = newToken
			s.users[id] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memUserStore) UpdateCart(_ context.Context, id primitive.ObjectID, cart []model.CartItem) error {
	u, found := s.users[id]
	if !found {
		return repository.ErrNotFound
	}
	u.Cart = cart
	s.users[id] = u
	return nil
}

type memProductStore struct {
	products map[primitive.ObjectID]model.Product
}

func newMemProductStore() *memProductStore {
	return &memProductStore{products: map[primitive.ObjectID]model.Product{}}
}

func (s *memProductStore) Create(_ context.Context, p model.Product) (model.Product, error) {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	s.products[p.ID] = p
	return p, nil
}

func (s *memProductStore) FindByID(_ context.Context, id primitive.ObjectID) (model.Product, error) {
	p, found := s.products[id]
	if !found {
		return model.Product{}, repository.ErrNotFound
	}
	return p, nil
}

func (s *memProductStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]model.Product, error) {
	out := []model.Product{}
	for _, id := range ids {
		if p, found := s.products[id]; found {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memProductStore) List(_ context.Context, q repository.ListQuery, sellOnly bool) ([]model.Product, int64, error) {
	data := []model.Product{}
	var total int64
	for _, p := range s.products {
		if sellOnly {
			if p.Sell {
				total++
			}
		}
		if sellOnly && !p.Sell {
			continue
		}
		if q.Search == "" ||
			strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Search)) ||
			strings.Contains(strings.ToLower(p.Description), strings.ToLower(q.Search)) {
			data = append(data, p)
		}
	}
	if !sellOnly {
		total = int64(len(s.products))
	}
	return data, total, nil
}

func (s *memProductStore) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	p, found := s.products[id]
	if !found {
		return repository.ErrNotFound
	}
	if v, set := fields["name"]; set {
		p.Name = v.(string)
	}
	if v, set := fields["price"]; set {
		p.Price = v.(float64)
	}
	if v, set := fields["description"]; set {
		p.Description = v.(string)
	}
	if v, set := fields["category"]; set {
		p.Category = v.(string)
	}
	if v, set := fields["sell"]; set {
		p.Sell = v.(bool)
	}
	if v, set := fields["image"]; set {
		p.Image = v.(string)
	}
	p.UpdatedAt = time.Now().UTC()
	s.products[id] = p
	return nil
}

type memAppointmentStore struct {
	appointments map[primitive.ObjectID]model.Appointment
}

func newMemAppointmentStore() *memAppointmentStore {
	return &memAppointmentStore{appointments: map[primitive.ObjectID]model.Appointment{}}
}

func (s *memAppointmentStore) Create(_ context.Context, a model.Appointment) (model.Appointment, error) {
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	s.appointments[a.ID] = a
	return a, nil
}

func (s *memAppointmentStore) FindByID(_ context.Context, id primitive.ObjectID) (model.Appointment, error) {
	a, found := s.appointments[id]
	if !found {
		return model.Appointment{}, repository.ErrNotFound
	}
	return a, nil
}

func (s *memAppointmentStore) FindByDate(_ context.Context, date time.Time) ([]model.Appointment, error) {
	out := []model.Appointment{}
	for _, a := range s.appointments {
		if a.Date.Equal(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memAppointmentStore) List(_ context.Context, q repository.ListQuery, onlineOnly bool) ([]model.Appointment, int64, error) {
	data := []model.Appointment{}
	var total int64
	for _, a := range s.appointments {
		if onlineOnly {
			if a.Online {
				total++
			}
			if !a.Online {
				continue
			}
		}
		data = append(data, a)
	}
	if !onlineOnly {
		total = int64(len(s.appointments))
	}
	return data, total, nil
}

func (s *memAppointmentStore) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	a, found := s.appointments[id]
	if !found {
		return repository.ErrNotFound
	}
	if v, set := fields["court"]; set {
		a.Court = v.(string)
	}
	if v, set := fields["date"]; set {
		a.Date = v.(time.Time)
	}
	if v, set := fields["begin"]; set {
		a.Begin = v.(string)
	}
	if v, set := fields["end"]; set {
		a.End = v.(string)
	}
	if v, set := fields["peoplenumber"]; set {
		a.PeopleNumber = v.(int)
	}
	if v, set := fields["height"]; set {
		a.Height = v.(string)
	}
	if v, set := fields["info"]; set {
		a.Info = v.([]string)
	}
	if v, set := fields["online"]; set {
		a.Online = v.(bool)
	}
	a.UpdatedAt = time.Now().UTC()
	s.appointments[id] = a
	return nil
}

// ----- request helpers -----

// newJSONContext builds an echo context carrying a JSON body.
func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
