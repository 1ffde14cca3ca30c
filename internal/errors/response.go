package errors

type Response struct {
	Message string `json:"message"`
}
