package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Value sets for the appointment enum fields.
var (
	AppointmentCourts  = []string{"A", "未開放"}
	AppointmentHeights = []string{"女網", "男網"}
	AppointmentInfos   = []string{
		"新手友善", "男女混打", "僅限女生", "僅限男生", "宵夜場", "早場",
		"一般場", "高手場", "未開放", "只開放季打", "徵臨打",
	}
)

// Appointment represents a document in the `appointments` collection: one
// bookable court time slot.  Date is normalized to an 08:00 UTC boundary so
// the date lookup can match it exactly.  Begin and End are display strings
// like "19:00".  Online controls public visibility, defaulting to true.
type Appointment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Court        string             `bson:"court" json:"court"`
	Date         time.Time          `bson:"date" json:"date"`
	Begin        string             `bson:"begin" json:"begin"`
	End          string             `bson:"end" json:"end"`
	PeopleNumber int                `bson:"peoplenumber" json:"peoplenumber"`
	Height       string             `bson:"height" json:"height"`
	Info         []string           `bson:"info" json:"info"`
	Online       bool               `bson:"online" json:"online"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
