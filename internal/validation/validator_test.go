// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same instance")
	}
}

type itemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=16"`
	Size      string `json:"size" validate:"omitempty,oneof=XS S M L XL XXL"`
	Quantity  int    `json:"quantity" validate:"min=1,max=99"`
	Internal  string `json:"-"`
}

type deliveryRequest struct {
	PIN string `json:"pin" validate:"pincode"`
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{name: "item", input: &itemRequest{ProductID: "p1", Size: "M", Quantity: 2}},
		{name: "item without size", input: &itemRequest{ProductID: "p1", Quantity: 99}},
		{name: "pin", input: &deliveryRequest{PIN: "560001"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(tt.input); err != nil {
				t.Errorf("ValidateStruct() = %v, want nil", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:      "missing product",
			input:     &itemRequest{Quantity: 1},
			wantField: "product_id",
			wantTag:   "required",
			wantMsg:   "product_id is required",
		},
		{
			name:      "long product id",
			input:     &itemRequest{ProductID: strings.Repeat("x", 17), Quantity: 1},
			wantField: "product_id",
			wantTag:   "max",
			wantMsg:   "product_id must be at most 16 characters",
		},
		{
			name:      "zero quantity",
			input:     &itemRequest{ProductID: "p1"},
			wantField: "quantity",
			wantTag:   "min",
			wantMsg:   "quantity must be at least 1",
		},
		{
			name:      "unknown size",
			input:     &itemRequest{ProductID: "p1", Size: "XXXL", Quantity: 1},
			wantField: "size",
			wantTag:   "oneof",
			wantMsg:   "size must be one of: XS S M L XL XXL",
		},
		{
			name:      "short pin",
			input:     &deliveryRequest{PIN: "12345"},
			wantField: "pin",
			wantTag:   "pincode",
			wantMsg:   "pin must be a 6-digit PIN code",
		},
		{
			name:      "letters in pin",
			input:     &deliveryRequest{PIN: "12a456"},
			wantField: "pin",
			wantTag:   "pincode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if tt.wantMsg != "" && errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		apiErr := ValidateStruct(&itemRequest{ProductID: "p1", Quantity: 100}).ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q", apiErr.Code)
		}
		if apiErr.Details["field"] != "quantity" {
			t.Errorf("Details[field] = %v, want quantity", apiErr.Details["field"])
		}
	})

	t.Run("multiple", func(t *testing.T) {
		verr := ValidateStruct(&itemRequest{Size: "huge"})
		apiErr := verr.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]any)
		if !ok || len(fields) != 3 {
			t.Fatalf("Details[fields] = %v, want 3 entries", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "product_id is required") {
			t.Errorf("Message = %q", apiErr.Message)
		}
		if strings.Count(verr.Error(), ";") != 2 {
			t.Errorf("Error() = %q, want three joined messages", verr.Error())
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}
