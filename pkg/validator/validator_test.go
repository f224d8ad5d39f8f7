package validator

import (
	"testing"
)

type reviewRequest struct {
	Status  string `json:"status" validate:"required,oneof=approved rejected"`
	Remarks string `json:"remarks" validate:"omitempty,max=500"`
}

func TestValidateStructAcceptsValidPayload(t *testing.T) {
	err := ValidateStruct(reviewRequest{Status: "approved"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(reviewRequest{Status: "escalated"})
	if err == nil {
		t.Fatal("expected validation failure")
	}

	failures, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	if failures[0].Field != "status" {
		t.Fatalf("field = %q, want json tag name", failures[0].Field)
	}
	if failures[0].Tag != "oneof" {
		t.Fatalf("tag = %q", failures[0].Tag)
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "status", Tag: "oneof", Param: "approved rejected"},
		{Field: "remarks", Tag: "max", Param: "500"},
	}
	want := "status failed on oneof=approved rejected; remarks failed on max=500"
	if errs.Error() != want {
		t.Fatalf("Error() = %q", errs.Error())
	}
}
