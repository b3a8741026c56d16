package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rechilab/volley-backend/internal/model"
	"github.com/rechilab/volley-backend/internal/queue"
	"github.com/rechilab/volley-backend/internal/repository"
	"github.com/rechilab/volley-backend/internal/validate"
)

// AppointmentStore is the slice of the appointment repository the handlers
// need.
type AppointmentStore interface {
	Create(ctx context.Context, a model.Appointment) (model.Appointment, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (model.Appointment, error)
	FindByDate(ctx context.Context, date time.Time) ([]model.Appointment, error)
	List(ctx context.Context, q repository.ListQuery, onlineOnly bool) ([]model.Appointment, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
}

// EventPublisher pushes appointment events to the broker.  Nil disables
// publishing.
type EventPublisher func(ctx context.Context, event queue.AppointmentEvent) error

// AppointmentHandler serves the admin slot management and public lookup
// endpoints.
type AppointmentHandler struct {
	Store   AppointmentStore
	Publish EventPublisher
}

func NewAppointmentHandler(store AppointmentStore, publish EventPublisher) *AppointmentHandler {
	return &AppointmentHandler{Store: store, Publish: publish}
}

const (
	msgAppointmentNotFound = "查無開放時段"
	msgBadDate             = "日期格式錯誤"
)

// appointmentReq uses pointers so partial edits can tell "absent" from
// "zero".  Date arrives as an epoch-millisecond timestamp.
type appointmentReq struct {
	Court        *string  `json:"court" form:"court"`
	Date         *int64   `json:"date" form:"date"`
	Begin        *string  `json:"begin" form:"begin"`
	End          *string  `json:"end" form:"end"`
	PeopleNumber *int     `json:"peoplenumber" form:"peoplenumber"`
	Height       *string  `json:"height" form:"height"`
	Info         []string `json:"info" form:"info"`
	Online       *bool    `json:"online" form:"online"`
}

// normalizeDate converts an epoch-millisecond timestamp to the fixed
// hour-of-day boundary stored dates use: the hour is forced to 08 UTC, the
// rest of the instant kept.  Store and lookup share this so an exact
// equality match works.
func normalizeDate(ms int64) time.Time {
	t := time.UnixMilli(ms).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 8, t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Create persists a new court time slot.  Court defaults to "A" and online
// to true, matching the documented defaults.
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req appointmentReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "資料格式錯誤")
	}

	a := model.Appointment{Court: "A", Online: true}
	if req.Court != nil {
		a.Court = *req.Court
	}
	if res := validate.AppointmentCourt(a.Court); !res.OK {
		return fail(c, http.StatusBadRequest, res.Message)
	}
	if req.Date == nil {
		return fail(c, http.StatusBadRequest, validate.MsgDateRequired)
	}
	a.Date = normalizeDate(*req.Date)
	if req.Begin == nil || *req.Begin == "" {
		return fail(c, http.StatusBadRequest, validate.MsgBeginRequired)
	}
	a.Begin = *req.Begin
	if req.End == nil || *req.End == "" {
		return fail(c, http.StatusBadRequest, validate.MsgEndRequired)
	}
	a.End = *req.End
	if req.PeopleNumber == nil {
		return fail(c, http.StatusBadRequest, validate.MsgPeopleNumberRequired)
	}
	if res := validate.PeopleNumber(*req.PeopleNumber); !res.OK {
		return fail(c, http.StatusBadRequest, res.Message)
	}
	a.PeopleNumber = *req.PeopleNumber
	if req.Height == nil {
		return fail(c, http.StatusBadRequest, validate.MsgHeightRequired)
	}
	if res := validate.AppointmentHeight(*req.Height); !res.OK {
		return fail(c, http.StatusBadRequest, res.Message)
	}
	a.Height = *req.Height
	if res := validate.AppointmentInfo(req.Info); !res.OK {
		return fail(c, http.StatusBadRequest, res.Message)
	}
	a.Info = req.Info
	if req.Online != nil {
		a.Online = *req.Online
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	created, err := h.Store.Create(ctx, a)
	if err != nil {
		return failUnknown(c)
	}
	h.publishEvent(created, "created")
	return ok(c, created)
}

// GetAll is the admin listing across every slot.
func (h *AppointmentHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	data, total, err := h.Store.List(ctx, listQueryFrom(c), false)
	if err != nil {
		return failUnknown(c)
	}
	return ok(c, listResult{Data: data, Total: total})
}

// Get is the public listing of online slots only.
func (h *AppointmentHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	data, total, err := h.Store.List(ctx, listQueryFrom(c), true)
	if err != nil {
		return failUnknown(c)
	}
	return ok(c, listResult{Data: data, Total: total})
}

// GetDate returns the slots whose stored date matches the requested day
// exactly.  The date query parameter must be an epoch-millisecond integer;
// anything else is a 400.
func (h *AppointmentHandler) GetDate(c echo.Context) error {
	ms, err := strconv.ParseInt(c.QueryParam("date"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, msgBadDate)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	result, err := h.Store.FindByDate(ctx, normalizeDate(ms))
	if err != nil {
		return failUnknown(c)
	}
	return ok(c, result)
}

// GetID returns a single slot, distinguishing malformed ids from missing
// documents.
func (h *AppointmentHandler) GetID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, msgBadID)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, msgAppointmentNotFound)
		}
		return failUnknown(c)
	}
	return ok(c, a)
}

// Edit applies a partial update with the create rules re-run on every
// provided field.
func (h *AppointmentHandler) Edit(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, msgBadID)
	}
	var req appointmentReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "資料格式錯誤")
	}

	fields := bson.M{}
	if req.Court != nil {
		if res := validate.AppointmentCourt(*req.Court); !res.OK {
			return fail(c, http.StatusBadRequest, res.Message)
		}
		fields["court"] = *req.Court
	}
	if req.Date != nil {
		fields["date"] = normalizeDate(*req.Date)
	}
	if req.Begin != nil {
		if *req.Begin == "" {
			return fail(c, http.StatusBadRequest, validate.MsgBeginRequired)
		}
		fields["begin"] = *req.Begin
	}
	if req.End != nil {
		if *req.End == "" {
			return fail(c, http.StatusBadRequest, validate.MsgEndRequired)
		}
		fields["end"] = *req.End
	}
	if req.PeopleNumber != nil {
		if res := validate.PeopleNumber(*req.PeopleNumber); !res.OK {
			return fail(c, http.StatusBadRequest, res.Message)
		}
		fields["peoplenumber"] = *req.PeopleNumber
	}
	if req.Height != nil {
		if res := validate.AppointmentHeight(*req.Height); !res.OK {
			return fail(c, http.StatusBadRequest, res.Message)
		}
		fields["height"] = *req.Height
	}
	if req.Info != nil {
		if res := validate.AppointmentInfo(req.Info); !res.OK {
			return fail(c, http.StatusBadRequest, res.Message)
		}
		fields["info"] = req.Info
	}
	if req.Online != nil {
		fields["online"] = *req.Online
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, msgAppointmentNotFound)
		}
		return failUnknown(c)
	}

	if a, err := h.Store.FindByID(ctx, id); err == nil {
		h.publishEvent(a, "updated")
	}
	return ok(c, nil)
}

// publishEvent fires the broker notification without blocking the request.
func (h *AppointmentHandler) publishEvent(a model.Appointment, action string) {
	if h.Publish == nil {
		return
	}
	event := queue.AppointmentEvent{
		Action:        action,
		AppointmentID: a.ID.Hex(),
		Court:         a.Court,
		Date:          a.Date.Format(time.RFC3339),
		Begin:         a.Begin,
		End:           a.End,
		PeopleNumber:  a.PeopleNumber,
		Height:        a.Height,
		Info:          a.Info,
		Online:        a.Online,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.Publish(ctx, event); err != nil {
			log.Printf("appointment event publish failed: %v", err)
		}
	}()
}
