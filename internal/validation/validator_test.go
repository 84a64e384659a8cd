// CarCompare - Car Shopping Tracker and Listing Comparison
// Copyright 2026 M. Preston (mpreston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mpreston/carcompare

package validation

import (
	"strings"
	"testing"

	"github.com/mpreston/carcompare/internal/models"
)

func intPtr(v int) *int { return &v }

func TestValidateStruct_ListingCreate(t *testing.T) {
	tests := []struct {
		name    string
		req     models.ListingCreate
		wantErr bool
		field   string
	}{
		{
			name: "valid listing",
			req: models.ListingCreate{
				CarID:  "a4f7c8aa-1f37-4f22-9c55-0d7e1b3f2a10",
				Price:  25000,
				Source: "AutoTrader",
			},
			wantErr: false,
		},
		{
			name: "zero mileage is valid",
			req: models.ListingCreate{
				CarID:   "a4f7c8aa-1f37-4f22-9c55-0d7e1b3f2a10",
				Price:   25000,
				Mileage: intPtr(0),
				Source:  "AutoTrader",
			},
			wantErr: false,
		},
		{
			name: "zero price rejected",
			req: models.ListingCreate{
				CarID:  "a4f7c8aa-1f37-4f22-9c55-0d7e1b3f2a10",
				Price:  0,
				Source: "AutoTrader",
			},
			wantErr: true,
			field:   "Price",
		},
		{
			name: "negative mileage rejected",
			req: models.ListingCreate{
				CarID:   "a4f7c8aa-1f37-4f22-9c55-0d7e1b3f2a10",
				Price:   25000,
				Mileage: intPtr(-1),
				Source:  "AutoTrader",
			},
			wantErr: true,
			field:   "Mileage",
		},
		{
			name: "malformed car id rejected",
			req: models.ListingCreate{
				CarID:  "not-a-uuid",
				Price:  25000,
				Source: "AutoTrader",
			},
			wantErr: true,
			field:   "CarID",
		},
		{
			name: "missing source rejected",
			req: models.ListingCreate{
				CarID: "a4f7c8aa-1f37-4f22-9c55-0d7e1b3f2a10",
				Price: 25000,
			},
			wantErr: true,
			field:   "Source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			found := false
			for _, fe := range err.Errors() {
				if fe.Field() == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("error does not mention field %q: %v", tt.field, err)
			}
		})
	}
}

func TestValidateStruct_CarCreate(t *testing.T) {
	vin := "1HGBH41JXMN109186"
	shortVIN := "1HGBH41"

	tests := []struct {
		name    string
		req     models.CarCreate
		wantErr bool
	}{
		{"valid", models.CarCreate{Year: 2020, Make: "Honda", Model: "Civic"}, false},
		{"valid with vin", models.CarCreate{Year: 2020, Make: "Honda", Model: "Civic", VIN: &vin}, false},
		{"short vin", models.CarCreate{Year: 2020, Make: "Honda", Model: "Civic", VIN: &shortVIN}, true},
		{"year too old", models.CarCreate{Year: 1850, Make: "Honda", Model: "Civic"}, true},
		{"missing make", models.CarCreate{Year: 2020, Model: "Civic"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToAPIError_SingleField(t *testing.T) {
	req := models.RegisterRequest{Username: "ab", Email: "alice@example.com", Password: "longenough1"}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected a validation error for short username")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "Username" {
		t.Errorf("Details.field = %v, want Username", apiErr.Details["field"])
	}
	if !strings.Contains(apiErr.Message, "Username") {
		t.Errorf("Message = %q, want mention of Username", apiErr.Message)
	}
}

func TestToAPIError_MultipleFields(t *testing.T) {
	req := models.RegisterRequest{}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation errors for empty registration")
	}
	if len(err.Errors()) < 3 {
		t.Fatalf("Errors() = %d, want all three required fields flagged", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("multi-error response should carry a fields list")
	}
}
