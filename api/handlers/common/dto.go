package common

// 响应状态
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope 统一响应结构，所有接口的成功与失败都使用该形状。
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Code    string `json:"code,omitempty"`
}

// OK 构造成功响应。
func OK(data any, message string) Envelope {
	return Envelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	}
}

// Err 构造错误响应，code 为稳定的机器可读错误码。
func Err(code, message string) Envelope {
	return Envelope{
		Status:  StatusError,
		Message: message,
		Code:    code,
	}
}
