package models

// AdminEmailRequest is the body of the /admin/email routes.
type AdminEmailRequest struct {
	UserIDs []string `json:"userIds"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// AuditInfo identifies the admin behind an audited send when no header does.
type AuditInfo struct {
	SentBy     string `json:"sentBy"`
	AdminEmail string `json:"adminEmail"`
}

// IndividualEmailRequest is the body of POST /api/email/send-individual
type IndividualEmailRequest struct {
	AuditInfo
	UserID string `json:"userId"`
}

// CustomEmailRequest is the body of POST /api/email/send-custom
type CustomEmailRequest struct {
	AuditInfo
	UserIDs     []string `json:"userIds"`
	Subject     string   `json:"subject"`
	HTMLContent string   `json:"htmlContent"`
	PlainText   string   `json:"plainText"`
}

// StatusUpdateRequest is the body of PUT /api/users/:id/status. Any JSON value is accepted
// and read for truthiness.
type StatusUpdateRequest struct {
	Active interface{} `json:"active"`
}

// RegistrationStatusRequest is the body of PUT /api/settings/registration-status
type RegistrationStatusRequest struct {
	IsOpen interface{} `json:"isOpen"`
}

// TaskRequest is the body of POST /api/users/:id/task
type TaskRequest struct {
	Task string `json:"task"`
}

// TasksRequest is the body of PUT /api/users/:id/updateTasks. A nil Tasks means the
// field was absent or null.
type TasksRequest struct {
	Tasks *[]string `json:"tasks"`
}

// Truthy reports whether a decoded JSON value counts as true: false, 0, "", null and a
// missing value do not.
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
