package errors

import "net/http"

var (
	ErrInvalidOptions = New(
		"INVALID_OPTIONS",
		"Invalid search options",
		http.StatusBadRequest,
	)

	ErrInvalidStation = New(
		"INVALID_STATION",
		"Invalid station identifier",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrUpstream = New(
		"UPSTREAM_ERROR",
		"Ticket shop backend request failed",
		http.StatusBadGateway,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
