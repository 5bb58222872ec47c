package manifest

import "testing"

func TestValidateAcceptsWellFormedManifest(t *testing.T) {
	result, err := Validate([]byte(`{
		"name": "acme/widget",
		"title": "Widget",
		"keywords": ["widgets"],
		"authors": [{"name": "Acme"}]
	}`))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !result.Valid {
		t.Errorf("result.Valid = false, issues: %+v", result.Issues)
	}
}

func TestValidateRejectsMissingTitle(t *testing.T) {
	result, err := Validate([]byte(`{"name": "acme/widget"}`))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Fatal("result.Valid = true for manifest without title")
	}
	if len(result.Issues) == 0 {
		t.Error("no issues reported for invalid manifest")
	}
}

func TestValidateRejectsBadPackageName(t *testing.T) {
	result, err := Validate([]byte(`{"name": "not-a-package-name", "title": "X"}`))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Error("result.Valid = true for name without vendor/package form")
	}
}

func TestValidateMalformedJSON(t *testing.T) {
	if _, err := Validate([]byte(`{`)); err == nil {
		t.Error("Validate accepted malformed JSON, want error")
	}
}
