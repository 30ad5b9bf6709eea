package response

// JSONRes is the envelope used by middleware responses.
type JSONRes struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(code, message string, data interface{}) JSONRes {
	return JSONRes{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func Error(code, message string, data interface{}) JSONRes {
	return JSONRes{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
