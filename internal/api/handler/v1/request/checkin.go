package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/ghostpin/ghostpin-api/internal/domain"
)

type CheckInRequest struct {
	Notes         string   `json:"notes"`
	PhotoProofURL string   `json:"photo_proof_url"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

func (req *CheckInRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Notes, validation.Length(0, 2000)),
		validation.Field(&req.PhotoProofURL, is.URL),
		validation.Field(&req.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

func (req *CheckInRequest) ToDomain() domain.CheckInRequest {
	return domain.CheckInRequest{
		Notes:         req.Notes,
		PhotoProofURL: req.PhotoProofURL,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
	}
}

type PresignUploadRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

func (req *PresignUploadRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FileName, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.ContentType, validation.Required),
	)
}
