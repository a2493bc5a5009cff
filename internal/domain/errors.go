package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso agregan contexto con fmt.Errorf("%w: ...") y los handlers comparan con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// Máquina de estados de documentos (recepciones, entregas, traslados).
	ErrInvalidStatus     = errors.New("estado inválido")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrTerminalStatus    = errors.New("el documento ya está en un estado final")
)
