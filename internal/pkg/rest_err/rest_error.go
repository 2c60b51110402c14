package rest_err

import "net/http"

const (
	ErrBadRequest          = "bad_request"
	ErrUnauthorized        = "unauthorized"
	ErrInternalServerError = "internal_server_error"
	ErrNotFound            = "not_found"
	ErrForbidden           = "forbidden"
)

// RestErr é o corpo padrão de erro das APIs. O campo "detail" carrega a
// mensagem curta exibida ao cliente.
type RestErr struct {
	Detail string   `json:"detail"`
	Err    string   `json:"error"`
	Code   int      `json:"code"`
	Causes []Causes `json:"causes,omitempty"`
}

func (r *RestErr) Error() string {
	return r.Detail
}

func NewRestErr(detail, err string, code int, causes []Causes) *RestErr {
	return &RestErr{
		Detail: detail,
		Err:    err,
		Code:   code,
		Causes: causes,
	}
}

func NewBadRequestError(detail string) *RestErr {
	return NewRestErr(detail, ErrBadRequest, http.StatusBadRequest, nil)
}

func NewBadRequestValidationError(detail string, causes []Causes) *RestErr {
	return NewRestErr(detail, ErrBadRequest, http.StatusBadRequest, causes)
}

func NewUnauthorizedError(detail string) *RestErr {
	return NewRestErr(detail, ErrUnauthorized, http.StatusUnauthorized, nil)
}

func NewInternalServerError(detail string, causes []Causes) *RestErr {
	return NewRestErr(detail, ErrInternalServerError, http.StatusInternalServerError, causes)
}

func NewNotFoundError(detail string) *RestErr {
	return NewRestErr(detail, ErrNotFound, http.StatusNotFound, nil)
}

func NewForbiddenError(detail string) *RestErr {
	return NewRestErr(detail, ErrForbidden, http.StatusForbidden, nil)
}
