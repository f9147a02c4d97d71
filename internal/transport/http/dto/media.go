package dto

// ImageUploadRequest carries a base64 payload, either raw or as a data URL
// with the usual "data:image/...;base64," prefix.
type ImageUploadRequest struct {
	Image  string `json:"image" validate:"required"`
	Folder string `json:"folder,omitempty"`
}

type ImageUploadResponse struct {
	URL string `json:"url"`
}
