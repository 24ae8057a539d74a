package producterrors

import (
	"net/http"

	"shophub-api/internal/pkg/apperror"
)

var (
	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)

	ErrInvalidProductID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid product id",
		http.StatusBadRequest,
	)

	ErrInvalidPrice = apperror.New(
		apperror.CodeInvalidInput,
		"Price must be greater than zero",
		http.StatusBadRequest,
	)
)
