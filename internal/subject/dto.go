package subject

import "github.com/google/uuid"

type ProvisionRequest struct {
	SubjectID   string `json:"subject_id" validate:"required,uuid"`
	SubjectName string `json:"subject_name" validate:"required"`
}

type SubtopicResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ProvisionResult struct {
	AlreadyExists bool               `json:"alreadyExists"`
	Subtopics     []SubtopicResponse `json:"subtopics"`
}

type SubjectListResponse struct {
	Subjects []Subject `json:"subjects"`
}
