package types

// MessagePayload is the body of plain-message responses. Errors reach clients
// in this shape too: a message string and nothing more.
type MessagePayload struct {
	Message string `json:"message"`
}

// HealthPayload is the liveness probe body.
type HealthPayload struct {
	Status string `json:"status"`
}

// LoginPayload is returned on successful login.
type LoginPayload struct {
	Message string `json:"message"`
	EmpID   string `json:"empID"`
}

// UploadPayload is returned after an attachment upload.
type UploadPayload struct {
	Message     string           `json:"message"`
	Attachments []FileAttachment `json:"attachments"`
}
