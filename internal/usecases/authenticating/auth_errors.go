package authenticating

import "errors"

var (
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrUserDisabled       = errors.New("usuário desativado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrInvalidToken       = errors.New("token inválido")
)

// AuthError associa um erro de autenticação ao código retornado pela API
type AuthError struct {
	Err     error
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError cria um erro de autenticação com código de API
func NewAuthError(err error, code, message string) *AuthError {
	return &AuthError{
		Err:     err,
		Code:    code,
		Message: message,
	}
}
