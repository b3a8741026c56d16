// Package validate holds the field validation rules that used to live inside
// the persistence schema.  Each function checks one field and returns a
// tagged Result so handlers can surface the first offending field's message
// without digging through persistence errors.
package validate

import (
	"github.com/go-playground/validator/v10"

	"github.com/rechilab/volley-backend/internal/model"
)

// Result reports the outcome of a single field check.  When OK is false,
// Field names the offending field and Message carries the client-facing text.
type Result struct {
	OK      bool
	Field   string
	Message string
}

func pass() Result { return Result{OK: true} }

func fail(field, message string) Result { return Result{Field: field, Message: message} }

var v = validator.New()

// Account enforces the user handle rules: required, 4 to 12 characters,
// alphanumeric only.
func Account(account string) Result {
	if account == "" {
		return fail("account", MsgAccountRequired)
	}
	if len(account) < 4 {
		return fail("account", MsgAccountTooShort)
	}
	if len(account) > 12 {
		return fail("account", MsgAccountTooLong)
	}
	if err := v.Var(account, "alphanum"); err != nil {
		return fail("account", MsgAccountFormat)
	}
	return pass()
}

// Email enforces presence and format of the user email.
func Email(email string) Result {
	if email == "" {
		return fail("email", MsgEmailRequired)
	}
	if err := v.Var(email, "email"); err != nil {
		return fail("email", MsgEmailFormat)
	}
	return pass()
}

// Password checks the plaintext before it is hashed.  The 4-12 length rule
// applies to the plaintext only; the stored bcrypt hash is longer.
func Password(plain string) Result {
	if plain == "" {
		return fail("password", MsgPasswordRequired)
	}
	if len(plain) < 4 || len(plain) > 12 {
		return fail("password", MsgPasswordLength)
	}
	return pass()
}

// ProductCategory checks membership in the fixed category set.
func ProductCategory(category string) Result {
	if category == "" {
		return fail("category", MsgProductCategoryRequired)
	}
	if !inSet(category, model.ProductCategories) {
		return fail("category", MsgProductCategoryInvalid)
	}
	return pass()
}

// AppointmentCourt checks the court identifier enum.
func AppointmentCourt(court string) Result {
	if court == "" {
		return fail("court", MsgCourtRequired)
	}
	if !inSet(court, model.AppointmentCourts) {
		return fail("court", MsgCourtInvalid)
	}
	return pass()
}

// AppointmentHeight checks the net height enum.
func AppointmentHeight(height string) Result {
	if height == "" {
		return fail("height", MsgHeightRequired)
	}
	if !inSet(height, model.AppointmentHeights) {
		return fail("height", MsgHeightInvalid)
	}
	return pass()
}

// AppointmentInfo checks every tag against the descriptive tag enum.
func AppointmentInfo(info []string) Result {
	if len(info) == 0 {
		return fail("info", MsgInfoRequired)
	}
	for _, tag := range info {
		if !inSet(tag, model.AppointmentInfos) {
			return fail("info", MsgInfoInvalid)
		}
	}
	return pass()
}

// PeopleNumber checks the capacity field: required and non-negative.
func PeopleNumber(n int) Result {
	if n < 0 {
		return fail("peoplenumber", MsgPeopleNumberNegative)
	}
	return pass()
}

func inSet(val string, set []string) bool {
	for _, s := range set {
		if s == val {
			return true
		}
	}
	return false
}
