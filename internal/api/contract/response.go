package contract

type MessageResponse struct {
	Message string `json:"message"`
}

// UnauthorizedResponse keeps the upstream gateway's 401 shape.
type UnauthorizedResponse struct {
	StatusCode int     `json:"statusCode"`
	Message    string  `json:"message"`
	ClientID   *string `json:"clientId"`
	Services   any     `json:"services"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	Service   string `json:"service"`
	Uptime    string `json:"uptime,omitempty"`
}
