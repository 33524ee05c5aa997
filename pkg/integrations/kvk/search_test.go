package kvk

import (
	"reflect"
	"testing"
)

func mustDecode(t *testing.T, body string) Record {
	t.Helper()
	r, err := decodeRecord([]byte(body))
	if err != nil {
		t.Fatalf("decodeRecord() error: %v", err)
	}
	return r
}

func TestParseResults(t *testing.T) {
	data := mustDecode(t, `{"resultaten":[
		{
			"kvkNummer": "12345678",
			"naam": "Test BV",
			"type": "hoofdvestiging",
			"actief": "Ja",
			"links": [
				{"rel": "self", "href": "https://api.kvk.nl/api/v1/basisprofielen/12345678"},
				{"rel": "vestigingsprofiel", "href": "https://api.kvk.nl/api/v1/vestigingsprofielen/000012345678"}
			]
		},
		"not an object"
	]}`)

	results := parseResults(data)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	first := results[0]
	if first.Type != "hoofdvestiging" {
		t.Errorf("Type = %q", first.Type)
	}
	if first.Active != "Ja" {
		t.Errorf("Active = %q", first.Active)
	}
	if first.ExpiredName != "" {
		t.Errorf("ExpiredName = %q, want empty", first.ExpiredName)
	}
	wantAttrs := Record{"kvkNummer": "12345678", "naam": "Test BV", "actief": "Ja"}
	if !reflect.DeepEqual(first.Attributes, wantAttrs) {
		t.Errorf("Attributes = %v, want %v", first.Attributes, wantAttrs)
	}
	wantLinks := []Link{
		{Rel: "self", Href: "https://api.kvk.nl/api/v1/basisprofielen/12345678"},
		{Rel: "vestigingsprofiel", Href: "https://api.kvk.nl/api/v1/vestigingsprofielen/000012345678"},
	}
	if !reflect.DeepEqual(first.Links, wantLinks) {
		t.Errorf("Links = %v, want %v", first.Links, wantLinks)
	}

	if len(results[1].Links) != 0 || len(results[1].Attributes) != 0 {
		t.Errorf("non-object entry should parse as empty, got %+v", results[1])
	}
}

func TestParseResultsIDs(t *testing.T) {
	data := mustDecode(t, `{"resultaten":[{},{}]}`)
	results := parseResults(data)

	if results[0].ID == "" || results[1].ID == "" {
		t.Fatal("entries should get an id")
	}
	if results[0].ID == results[1].ID {
		t.Error("ids should be unique")
	}
	if _, ok := results[0].Attributes["id"]; ok {
		t.Error("id should not leak into attributes")
	}
}

func TestParseResultsMissing(t *testing.T) {
	for _, body := range []string{`{}`, `{"resultaten":null}`, `{"resultaten":{"a":1}}`} {
		if got := parseResults(mustDecode(t, body)); len(got) != 0 {
			t.Errorf("parseResults(%s) = %v, want none", body, got)
		}
	}
}

func TestParseLinks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []Link
	}{
		{
			name: "absent",
			body: `{}`,
			want: nil,
		},
		{
			name: "not a list",
			body: `{"links":"self"}`,
			want: nil,
		},
		{
			name: "duplicate rel keeps position, last href",
			body: `{"links":[{"rel":"self","href":"A"},{"rel":"x","href":"X"},{"rel":"self","href":"B"}]}`,
			want: []Link{{Rel: "self", Href: "B"}, {Rel: "x", Href: "X"}},
		},
		{
			name: "missing href skipped",
			body: `{"links":[{"rel":"self"},{"rel":"x","href":"X"}]}`,
			want: []Link{{Rel: "x", Href: "X"}},
		},
		{
			name: "missing rel kept separately",
			body: `{"links":[{"href":"A"},{"href":"B"}]}`,
			want: []Link{{Href: "A"}, {Href: "B"}},
		},
		{
			name: "non-object entries skipped",
			body: `{"links":["A",{"rel":"self","href":"B"}]}`,
			want: []Link{{Rel: "self", Href: "B"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLinks(mustDecode(t, tt.body)["links"])
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseLinks() = %v, want %v", got, tt.want)
			}
		})
	}
}
