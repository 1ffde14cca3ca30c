package constants

import "net/http"

const (
	ErrCodeMissingRequiredFields = "MISSING_REQUIRED_FIELDS"
	ErrCodeMissingOrderID        = "MISSING_ORDER_ID"
	ErrCodeMissingCallbackURL    = "MISSING_CALLBACK_URL"
	ErrCodeDuplicateExternalID   = "DUPLICATE_EXTERNAL_ID"
	ErrCodeTransactionNotFound   = "TRANSACTION_NOT_FOUND"
	ErrCodeCallbackNotRegistered = "CALLBACK_NOT_REGISTERED"
	ErrCodeInvalidRequestBody    = "INVALID_REQUEST_BODY"
	ErrCodeInternalError         = "INTERNAL_ERROR"
)

const (
	ErrMsgMissingRequiredFields = "Missing required fields"
	ErrMsgMissingOrderID        = "Missing order_id"
	ErrMsgMissingCallbackURL    = "Missing callback_url"
	ErrMsgDuplicateExternalID   = "Duplicate external id"
	ErrMsgNotFound              = "Not found"
	ErrMsgInvalidRequestBody    = "failed to parse request body"
	ErrMsgInternalError         = "Internal server error"
)

const (
	MsgTransactionUpdateStored = "Transaction update stored successfully"
	MsgCollectAccepted         = "request received for processing successfully"
	MsgCallbackRegistered      = "Callback URL registered successfully"
)

const (
	UnauthorizedStatusCode = 285
	ErrMsgUnauthorized     = "provided credentials are incorrect or inactive"
)

var errorMessages = map[string]string{
	ErrCodeMissingRequiredFields: ErrMsgMissingRequiredFields,
	ErrCodeMissingOrderID:        ErrMsgMissingOrderID,
	ErrCodeMissingCallbackURL:    ErrMsgMissingCallbackURL,
	ErrCodeDuplicateExternalID:   ErrMsgDuplicateExternalID,
	ErrCodeTransactionNotFound:   ErrMsgNotFound,
	ErrCodeCallbackNotRegistered: ErrMsgNotFound,
	ErrCodeInvalidRequestBody:    ErrMsgInvalidRequestBody,
	ErrCodeInternalError:         ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeMissingRequiredFields, ErrCodeMissingOrderID, ErrCodeMissingCallbackURL,
		ErrCodeDuplicateExternalID, ErrCodeInvalidRequestBody:
		return http.StatusBadRequest
	case ErrCodeTransactionNotFound, ErrCodeCallbackNotRegistered:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
