// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

// Package validation validates API request bodies with go-playground/validator.
//
// A single validator instance is shared by all handlers. Error field names
// come from json tags so messages match what the client sent:
//
//	type addItemRequest struct {
//	    ProductID string `json:"product_id" validate:"required,max=128"`
//	    Quantity  int    `json:"quantity" validate:"min=1,max=99"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // write apiErr.Code, apiErr.Message
//	}
//
// Custom tags:
//   - pincode: exactly six digits
package validation
