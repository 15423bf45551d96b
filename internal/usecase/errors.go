package usecase

// UsecaseからHTTPステータス付きで返すエラー。
// handlerのwriteErrorがそのままレスポンスに変換する。
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}
