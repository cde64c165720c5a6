package validator_test

import (
	"reflect"
	"testing"

	"sosAlert/internal/domain"
	"sosAlert/pkg/validator"
)

func TestValidateStruct_CreateSOS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		req         domain.CreateSOSRequest
		wantErr     bool
		wantMissing []string
	}{
		{
			name: "valid",
			req:  domain.CreateSOSRequest{UserID: "u1", Lat: 55.75, Lon: 37.61},
		},
		{
			name:        "missing user",
			req:         domain.CreateSOSRequest{Lat: 55.75, Lon: 37.61},
			wantErr:     true,
			wantMissing: []string{"userId"},
		},
		{
			name:        "zero coordinates count as missing",
			req:         domain.CreateSOSRequest{UserID: "u1"},
			wantErr:     true,
			wantMissing: []string{"lat", "lon"},
		},
		{
			name:    "latitude out of range",
			req:     domain.CreateSOSRequest{UserID: "u1", Lat: 91, Lon: 10},
			wantErr: true,
		},
		{
			name:    "longitude out of range",
			req:     domain.CreateSOSRequest{UserID: "u1", Lat: 10, Lon: -181},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validator.ValidateStruct(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v got err=%v", tt.wantErr, err)
			}
			got := validator.MissingFields(err)
			if !reflect.DeepEqual(got, tt.wantMissing) {
				t.Fatalf("missing fields: got=%v want=%v", got, tt.wantMissing)
			}
		})
	}
}

func TestMissingFields_NonValidationError(t *testing.T) {
	t.Parallel()

	if got := validator.MissingFields(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
