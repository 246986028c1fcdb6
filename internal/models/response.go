package models

// ErrorResponse - стандартная структура ответа об ошибке.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

// NewErrorResponse собирает ответ об ошибке с success=false.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message}
}
