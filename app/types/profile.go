package types

import (
	"github.com/labstack/echo/v4"
)

// ProfileRequest carries the editable fields of either profile kind. Fields
// that do not apply to the caller's role are ignored.
type ProfileRequest struct {
	Name          string `json:"name" form:"name"`
	Email         string `json:"email" form:"email"`
	Phone         string `json:"phone" form:"phone"`
	Branch        string `json:"branch" form:"branch"`
	ContactPerson string `json:"contact_person" form:"contact_person"`
}

func NewProfileRequestFromContext(ctx echo.Context) (*ProfileRequest, error) {
	var body ProfileRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *ProfileRequest) Validate() error {
	if err := requireText(r.Name, "Name is required"); err != nil {
		return err
	}

	return optionalEmail(r.Email)
}

func (r *ProfileRequest) StudentRequest() *StudentRequest {
	return &StudentRequest{Name: r.Name, Email: r.Email, Phone: r.Phone, Branch: r.Branch}
}

func (r *ProfileRequest) CompanyRequest() *CompanyRequest {
	return &CompanyRequest{Name: r.Name, ContactPerson: r.ContactPerson, Email: r.Email, Phone: r.Phone}
}
