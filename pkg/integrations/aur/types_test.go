package aur

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"
)

// minimalRecord carries every required key and no optional one.
const minimalRecord = `{"ID":1,"Name":"foo","PackageBaseID":1,"Version":"1.0-1","NumVotes":0,` +
	`"Popularity":0,"FirstSubmitted":1600000000,"LastModified":1600000000,"URLPath":"/cgit/aur.git/snapshot/foo.tar.gz"}`

// withKey adds a raw "key":value pair to a record.
func withKey(record, key, value string) string {
	return strings.TrimSuffix(record, "}") + `,"` + key + `":` + value + "}"
}

// withoutKey drops key from a flat record.
func withoutKey(record, key string) string {
	re := regexp.MustCompile(`"` + key + `":("[^"]*"|[^,}]*),?`)
	return strings.Replace(re.ReplaceAllString(record, ""), ",}", "}", 1)
}

func TestSearchResponse_EmptyResults(t *testing.T) {
	var resp SearchResponse
	err := json.Unmarshal([]byte(`{"version":5,"type":"search","resultcount":0,"results":[]}`), &resp)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if resp.Results == nil {
		t.Error("results: [] should decode to an empty, non-nil slice")
	}
	if len(resp.Results) != 0 || resp.ResultCount != 0 {
		t.Errorf("got %d results, count %d", len(resp.Results), resp.ResultCount)
	}
	if resp.Error != nil {
		t.Errorf("Error = %q, want nil", *resp.Error)
	}
	if resp.Err() != nil {
		t.Errorf("Err() = %v, want nil", resp.Err())
	}
}

func TestSearchResponse_MissingRequired(t *testing.T) {
	tests := map[string]string{
		"version":     `{"type":"search","resultcount":0,"results":[]}`,
		"type":        `{"version":5,"resultcount":0,"results":[]}`,
		"resultcount": `{"version":5,"type":"search","results":[]}`,
		"results":     `{"version":5,"type":"search","resultcount":0}`,
	}

	for key, body := range tests {
		t.Run(key, func(t *testing.T) {
			var resp SearchResponse
			err := json.Unmarshal([]byte(body), &resp)
			var mk *MissingKeyError
			if !errors.As(err, &mk) {
				t.Fatalf("expected MissingKeyError, got %v", err)
			}
			if mk.Key != key {
				t.Errorf("Key = %q, want %q", mk.Key, key)
			}
		})
	}
}

func TestPackage_OptionalFields(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		maintainer *string
		orphaned   bool
	}{
		{"absent", minimalRecord, nil, true},
		{"null", withKey(minimalRecord, "Maintainer", "null"), nil, true},
		{"empty string", withKey(minimalRecord, "Maintainer", `""`), strPtr(""), false},
		{"set", withKey(minimalRecord, "Maintainer", `"bar"`), strPtr("bar"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Package
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			switch {
			case tt.maintainer == nil && p.Maintainer != nil:
				t.Errorf("Maintainer = %q, want absent", *p.Maintainer)
			case tt.maintainer != nil && (p.Maintainer == nil || *p.Maintainer != *tt.maintainer):
				t.Errorf("Maintainer = %v, want %q", p.Maintainer, *tt.maintainer)
			}
			if p.Orphaned() != tt.orphaned {
				t.Errorf("Orphaned() = %v, want %v", p.Orphaned(), tt.orphaned)
			}
			if p.Description != nil || p.URL != nil || p.PackageBase != nil {
				t.Error("other optional fields should be absent")
			}
		})
	}
}

func TestPackage_Required(t *testing.T) {
	keys := []string{
		"ID", "Name", "PackageBaseID", "Version", "NumVotes",
		"Popularity", "FirstSubmitted", "LastModified", "URLPath",
	}

	for _, key := range keys {
		t.Run(key+" missing", func(t *testing.T) {
			var p Package
			var mk *MissingKeyError
			err := json.Unmarshal([]byte(withoutKey(minimalRecord, key)), &p)
			if !errors.As(err, &mk) || mk.Key != key {
				t.Errorf("expected MissingKeyError for %s, got %v", key, err)
			}
		})
		t.Run(key+" null", func(t *testing.T) {
			var p Package
			var mk *MissingKeyError
			err := json.Unmarshal([]byte(withKey(withoutKey(minimalRecord, key), key, "null")), &p)
			if !errors.As(err, &mk) || mk.Key != key {
				t.Errorf("expected MissingKeyError for %s, got %v", key, err)
			}
		})
	}
}

func TestPackage_RequiredValues(t *testing.T) {
	var p Package
	if err := json.Unmarshal([]byte(minimalRecord), &p); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if p.ID != 1 || p.Name != "foo" || p.PackageBaseID != 1 || p.Version != "1.0-1" ||
		p.FirstSubmitted != 1600000000 || p.LastModified != 1600000000 ||
		p.URLPath != "/cgit/aur.git/snapshot/foo.tar.gz" {
		t.Errorf("got %+v", p)
	}
	if p.Depends != nil || p.License != nil {
		t.Error("absent lists should stay nil")
	}
}

func TestPackage_CaseInsensitiveKeys(t *testing.T) {
	var p Package
	body := strings.NewReplacer(`"ID":1`, `"id":7`, `"Name"`, `"name"`, `"NumVotes":0`, `"numvotes":3`).Replace(minimalRecord)
	err := json.Unmarshal([]byte(withKey(body, "depends", `["bar"]`)), &p)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if p.ID != 7 || p.Name != "foo" || p.NumVotes != 3 || len(p.Depends) != 1 {
		t.Errorf("got %+v", p)
	}
}

func TestPackage_Times(t *testing.T) {
	flagged := int64(1700000000)
	p := Package{FirstSubmitted: 1475688004, LastModified: 1712345678, OutOfDate: &flagged}

	if got, ok := p.OutOfDateSince(); !ok || !got.Equal(time.Unix(flagged, 0)) {
		t.Errorf("OutOfDateSince() = %v, %v", got, ok)
	}
	if !p.Submitted().Equal(time.Unix(1475688004, 0)) {
		t.Errorf("Submitted() = %v", p.Submitted())
	}
	if !p.Modified().Equal(time.Unix(1712345678, 0)) {
		t.Errorf("Modified() = %v", p.Modified())
	}

	p.OutOfDate = nil
	if _, ok := p.OutOfDateSince(); ok {
		t.Error("OutOfDateSince() should report not flagged")
	}
}

func strPtr(s string) *string { return &s }
