package http

import (
	"errors"
	"strings"
	"testing"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestHex32Validation(t *testing.T) {
	type P struct {
		InvoiceID string `validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	ok := P{InvoiceID: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		err := cv.Validate(P{InvoiceID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "InvoiceID", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestFieldNamesFollowJSONTags(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&createInvoiceReq{MaturityDate: "02/03/2026", FaceValueCents: -1})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	if !containsFieldMsg(fe, "issuer_id", "is required") {
		t.Fatalf("missing 'is required' for issuer_id: %+v", fe)
	}
	if !containsFieldMsg(fe, "obligor_id", "is required") {
		t.Fatalf("missing 'is required' for obligor_id: %+v", fe)
	}
	if !containsFieldMsg(fe, "face_value_cents", "greater than or equal to 0") {
		t.Fatalf("missing gte message for face_value_cents: %+v", fe)
	}
	if !containsFieldMsg(fe, "maturity_date", "2006-01-02") {
		t.Fatalf("missing datetime message for maturity_date: %+v", fe)
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name string `validate:"required"`
		Min  int    `validate:"gte=10"`
		Max  int    `validate:"lte=5"`
		Pos  int    `validate:"gt=0"`
		Kind string `validate:"oneof=a b"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Min: 9, Max: 6, Pos: 0, Kind: "c"})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	if !containsFieldMsg(fe, "Name", "is required") {
		t.Fatalf("missing 'is required' for Name: %+v", fe)
	}
	if !containsFieldMsg(fe, "Min", "greater than or equal to 10") {
		t.Fatalf("missing gte message for Min: %+v", fe)
	}
	if !containsFieldMsg(fe, "Max", "less than or equal to 5") {
		t.Fatalf("missing lte message for Max: %+v", fe)
	}
	if !containsFieldMsg(fe, "Pos", "greater than 0") {
		t.Fatalf("missing gt message for Pos: %+v", fe)
	}
	if !containsFieldMsg(fe, "Kind", "oneof validation failed") {
		t.Fatalf("missing fallback message for Kind: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
