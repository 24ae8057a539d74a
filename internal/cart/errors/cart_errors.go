package carterrors

import (
	"net/http"

	"shophub-api/internal/pkg/apperror"
)

var (
	ErrUserIDRequired = apperror.New(
		apperror.CodeUnauthorized,
		"User id is required",
		http.StatusUnauthorized,
	)

	ErrInvalidQuantity = apperror.New(
		apperror.CodeInvalidInput,
		"Quantity must be between 1 and 10",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid cart request",
		http.StatusBadRequest,
	)
)
