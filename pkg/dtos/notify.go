package dtos

// DTO for broadcasting an announcement to the squad
type AnnouncementDTO struct {
	Kind    string `json:"kind" binding:"required,oneof=convocation reminder"`
	Message string `json:"message" binding:"required"`
}

type BroadcastResultDTO struct {
	Kind    string   `json:"kind"`
	Sent    uint     `json:"sent"`
	Failed  uint     `json:"failed"`
	Skipped []string `json:"skipped,omitempty"` // players without a phone number
}

type NotifyStatusDTO struct {
	Connected bool `json:"connected"`
	LoggedIn  bool `json:"logged_in"`
}
