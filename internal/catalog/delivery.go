// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidPIN is returned for PIN codes that are not exactly six digits.
var ErrInvalidPIN = errors.New("please enter a valid 6-digit PIN code")

// DeliveryEstimate is the delivery promise for a PIN code.
type DeliveryEstimate struct {
	PIN           string `json:"pin"`
	Days          int    `json:"days"`
	PayOnDelivery bool   `json:"pay_on_delivery"`
	Message       string `json:"message"`
}

// EstimateDelivery derives a 3 to 5 day estimate from the last digit of the PIN.
// Pay on delivery is offered when the estimate is an odd number of days.
func EstimateDelivery(pin string) (DeliveryEstimate, error) {
	if len(pin) != 6 {
		return DeliveryEstimate{}, ErrInvalidPIN
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return DeliveryEstimate{}, ErrInvalidPIN
		}
	}

	days := int(pin[5]-'0')%3 + 3
	cod := days%2 == 1
	availability := "Not available"
	if cod {
		availability = "Available"
	}
	return DeliveryEstimate{
		PIN:           pin,
		Days:          days,
		PayOnDelivery: cod,
		Message:       fmt.Sprintf("Estimated delivery: %d-day delivery available. Pay on Delivery: %s.", days, availability),
	}, nil
}
