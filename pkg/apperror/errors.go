package apperror

import "errors"

// Tipos de erro reconhecidos pela API. Os erros de domínio embrulham
// um destes valores para que o chamador possa distinguir o tipo com errors.Is.
var (
	// ErrNotFound ocorre quando o id informado não existe na coleção
	ErrNotFound = errors.New("registro não encontrado")

	// ErrAlreadyPaid ocorre quando se tenta quitar uma dívida já paga
	ErrAlreadyPaid = errors.New("registro já está pago")

	// ErrValidation ocorre quando os dados de entrada são inválidos
	ErrValidation = errors.New("dados inválidos")

	// ErrInsufficientStock ocorre quando a venda excede o estoque disponível
	ErrInsufficientStock = errors.New("estoque insuficiente")
)

// Kind retorna o tipo de erro reconhecido que err embrulha, ou nil
func Kind(err error) error {
	for _, kind := range []error{ErrNotFound, ErrAlreadyPaid, ErrValidation, ErrInsufficientStock} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
