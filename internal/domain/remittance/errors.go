package remittance

import "errors"

var ErrRemittanceNotFound = errors.New("remittance not found")
