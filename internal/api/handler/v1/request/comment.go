package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CommentRequest struct {
	Text      string `json:"text"`
	Rating    *int   `json:"rating"`
	ParentID  *uint  `json:"parent_id"`
	CheckInID *uint  `json:"check_in_id"`
}

func (req *CommentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Text, validation.Required, validation.Length(1, 2000)),
		validation.Field(&req.Rating, validation.Min(1), validation.Max(5)),
	)
}

type UpdateProfileRequest struct {
	Bio string `json:"bio"`
}

func (req *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Bio, validation.Length(0, 500)),
	)
}
