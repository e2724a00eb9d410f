package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrPartialPost: la transacción quedó escrita en el libro pero la
	// actualización de inventario falló. Requiere conciliación manual;
	// reintentar a ciegas duplicaría el asiento.
	ErrPartialPost = errors.New("asiento registrado pero inventario sin actualizar: requiere conciliación manual")

	// ErrPartialVoid: el asiento fue eliminado del libro pero la corrección
	// de inventario falló. Mismo tratamiento que ErrPartialPost.
	ErrPartialVoid = errors.New("asiento anulado pero inventario sin corregir: requiere conciliación manual")
)
