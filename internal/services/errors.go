package services

import "errors"

var (
	ErrSalonNotFound    = errors.New("salon not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrUnknownStatus    = errors.New("unknown order status")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)
