package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leaderturk/property-management/pkg/db/models"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
)

func TestDecodeJSONBodyIgnoresUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/residents", strings.NewReader(`{"name":"Ayşe","email":"","surprise":true}`))
	var in models.ResidentInput
	if err := DecodeJSONBody(req, &in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Name != "Ayşe" {
		t.Fatalf("unexpected name %q", in.Name)
	}
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/residents", strings.NewReader(`{"email":"not-an-email"}`))
	var in models.ResidentInput
	err := DecodeJSONBody(req, &in)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details %T", typed.Details())
	}
	if details["name"] == "" || details["email"] == "" {
		t.Fatalf("expected name and email errors, got %v", details)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	for name, body := range map[string]string{
		"empty":      ``,
		"truncated":  `{"name":`,
		"wrong type": `{"name": 5}`,
	} {
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		var in models.ResidentInput
		if err := DecodeJSONBody(req, &in); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestDecodeJSONBodyRejectsNullForRequiredPatchField(t *testing.T) {
	req := httptest.NewRequest("PUT", "/", strings.NewReader(`{"name":null}`))
	var patch models.ResidentPatch
	if err := DecodeJSONBody(req, &patch); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseQueryBool(t *testing.T) {
	cases := map[string]struct {
		query   string
		want    bool
		wantErr bool
	}{
		"absent": {query: "", want: false},
		"true":   {query: "?published=true", want: true},
		"one":    {query: "?published=1", want: true},
		"false":  {query: "?published=false", want: false},
		"junk":   {query: "?published=maybe", wantErr: true},
	}
	for name, tc := range cases {
		req := httptest.NewRequest("GET", "/api/blog-posts"+tc.query, nil)
		got, err := ParseQueryBool(req, "published")
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", name)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%s: got %v err=%v", name, got, err)
		}
	}
}

func TestQueryString(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/flats?buildingId=%20b-1%20", nil)
	if got := QueryString(req, "buildingId"); got != "b-1" {
		t.Fatalf("unexpected value %q", got)
	}
	if got := QueryString(req, "flatId"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
