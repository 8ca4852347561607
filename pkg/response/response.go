package response

// ErrorBody is the error envelope every non-2xx response uses.
type ErrorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func Error(message string, details []string) ErrorBody {
	return ErrorBody{Error: message, Details: details}
}
