package dto

import "github.com/cuongbtq/job-board/internal/api/domain"

// SubmitApplicationRequest is left unvalidated by binding so an empty cover
// letter gets the intake's own message.
type SubmitApplicationRequest struct {
	CoverLetter string `json:"cover_letter"`
	Resume      string `json:"resume"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListApplicationsRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=0"`
}

type ListApplicationsResponse struct {
	Applications []domain.Application `json:"applications"`
	Total        int                  `json:"total"`
}
