package domain

import "errors"

var (
	// ErrRetailerUnavailable is returned when the retailer request fails at the transport level
	ErrRetailerUnavailable = errors.New("retailer request failed")

	// ErrUnexpectedStatus is returned when the retailer responds with a non-2xx status
	ErrUnexpectedStatus = errors.New("retailer returned unexpected status")

	// ErrDecodeFailed is returned when a retailer response body cannot be decoded
	ErrDecodeFailed = errors.New("failed to decode retailer response")

	// ErrNoEmbeddedState is returned when the page-state script tag is missing from a scraped page
	ErrNoEmbeddedState = errors.New("embedded page state not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)
