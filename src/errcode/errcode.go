package errcode

import "fmt"

// Err is an API-visible error with a stable code.
type Err struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *Err) Error() string {
	return fmt.Sprintf("code: %d, msg: %s", e.Code, e.Msg)
}

func NewErr(code int, msg string) *Err {
	return &Err{Code: code, Msg: msg}
}

// NewCustomErr wraps a free-form reason under the custom-error code.
func NewCustomErr(msg string) *Err {
	return NewErr(CodeCustom, msg)
}

const (
	CodeOK            = 200
	CodeInvalidParams = 40001
	CodeNotFound      = 40401
	CodeForbidden     = 40301
	CodeCustom        = 40000
	CodeUnexpected    = 50000
)

var (
	ErrInvalidParams = NewErr(CodeInvalidParams, "invalid params")
	ErrNotFound      = NewErr(CodeNotFound, "record not found")
	ErrForbidden     = NewErr(CodeForbidden, "forbidden")
	ErrUnexpected    = NewErr(CodeUnexpected, "server error")
)
