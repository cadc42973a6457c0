package errors

import "net/http"

var (
	ErrShopNotFound = New(
		"SHOP_NOT_FOUND",
		"Shop not found",
		http.StatusNotFound,
	)

	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"No cached location for this session",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrMeetingPointsRequired = New(
		"MEETING_POINTS_REQUIRED",
		"Both your location and a selected destination are required",
		http.StatusBadRequest,
	)

	ErrRequestSuperseded = New(
		"REQUEST_SUPERSEDED",
		"A newer request replaced this one",
		http.StatusConflict,
	)

	ErrUpstream = New(
		"UPSTREAM_ERROR",
		"Shop service is unavailable",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
