package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

// ConflictResponse carries enough detail for the caller to pick another slot.
type ConflictResponse struct {
	Error            string `json:"error" example:"trainer is busy during the requested window"`
	Kind             string `json:"kind,omitempty" example:"trainer_busy"`
	ConflictingClass int    `json:"conflicting_class_id,omitempty" example:"42"`
	Capacity         int    `json:"capacity,omitempty" example:"20"`
	Enrolled         int    `json:"enrolled,omitempty" example:"20"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
