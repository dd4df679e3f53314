package aur

import (
	"encoding/json"
	"fmt"
	"time"

	errs "github.com/matzehuels/aurclient/pkg/errors"
)

// Package is one package record as returned by the RPC interface.
//
// Optional scalars are pointers: nil means upstream did not send the key
// (or sent null), which is distinct from an empty string. Optional lists are
// nil when absent. Nothing is normalized or defaulted.
//
// A Package is a plain value; it is safe for concurrent reads.
type Package struct {
	ID            int64   `json:"ID"`
	Name          string  `json:"Name"`
	PackageBaseID int64   `json:"PackageBaseID"`
	PackageBase   *string `json:"PackageBase,omitempty"`
	Version       string  `json:"Version"`
	Description   *string `json:"Description,omitempty"`

	// URL is the upstream project homepage.
	URL        *string `json:"URL,omitempty"`
	NumVotes   int     `json:"NumVotes"`
	Popularity float64 `json:"Popularity"`

	// OutOfDate is the unix time the package was flagged, nil if not flagged.
	OutOfDate *int64 `json:"OutOfDate,omitempty"`

	// Maintainer is nil for orphaned packages.
	Maintainer     *string `json:"Maintainer,omitempty"`
	FirstSubmitted int64   `json:"FirstSubmitted"`
	LastModified   int64   `json:"LastModified"`

	// URLPath is the snapshot archive path, relative to the base URL.
	URLPath string `json:"URLPath"`

	Depends      []string `json:"Depends,omitempty"`
	MakeDepends  []string `json:"MakeDepends,omitempty"`
	CheckDepends []string `json:"CheckDepends,omitempty"`
	Conflicts    []string `json:"Conflicts,omitempty"`
	Provides     []string `json:"Provides,omitempty"`
	Replaces     []string `json:"Replaces,omitempty"`
	OptDepends   []string `json:"OptDepends,omitempty"`
	Groups       []string `json:"Groups,omitempty"`
	License      []string `json:"License,omitempty"`
	Keywords     []string `json:"Keywords,omitempty"`
}

// UnmarshalJSON decodes a package record. The keys ID, Name,
// PackageBaseID, Version, NumVotes, Popularity, FirstSubmitted, LastModified
// and URLPath are required; a record missing one of them, or carrying null
// for it, is rejected with a [MissingKeyError].
func (p *Package) UnmarshalJSON(data []byte) error {
	type plain Package
	var aux struct {
		plain
		ID             *int64   `json:"ID"`
		Name           *string  `json:"Name"`
		PackageBaseID  *int64   `json:"PackageBaseID"`
		Version        *string  `json:"Version"`
		NumVotes       *int     `json:"NumVotes"`
		Popularity     *float64 `json:"Popularity"`
		FirstSubmitted *int64   `json:"FirstSubmitted"`
		LastModified   *int64   `json:"LastModified"`
		URLPath        *string  `json:"URLPath"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	required := []struct {
		key     string
		missing bool
	}{
		{"ID", aux.ID == nil},
		{"Name", aux.Name == nil},
		{"PackageBaseID", aux.PackageBaseID == nil},
		{"Version", aux.Version == nil},
		{"NumVotes", aux.NumVotes == nil},
		{"Popularity", aux.Popularity == nil},
		{"FirstSubmitted", aux.FirstSubmitted == nil},
		{"LastModified", aux.LastModified == nil},
		{"URLPath", aux.URLPath == nil},
	}
	for _, r := range required {
		if r.missing {
			return &MissingKeyError{Object: "package", Key: r.key}
		}
	}

	*p = Package(aux.plain)
	p.ID = *aux.ID
	p.Name = *aux.Name
	p.PackageBaseID = *aux.PackageBaseID
	p.Version = *aux.Version
	p.NumVotes = *aux.NumVotes
	p.Popularity = *aux.Popularity
	p.FirstSubmitted = *aux.FirstSubmitted
	p.LastModified = *aux.LastModified
	p.URLPath = *aux.URLPath
	return nil
}

// OutOfDateSince reports when the package was flagged out of date.
// ok is false if the package is not flagged.
func (p Package) OutOfDateSince() (t time.Time, ok bool) {
	if p.OutOfDate == nil {
		return time.Time{}, false
	}
	return time.Unix(*p.OutOfDate, 0), true
}

// Orphaned reports whether the package has no maintainer.
func (p Package) Orphaned() bool { return p.Maintainer == nil }

// Submitted returns FirstSubmitted as a time.
func (p Package) Submitted() time.Time { return time.Unix(p.FirstSubmitted, 0) }

// Modified returns LastModified as a time.
func (p Package) Modified() time.Time { return time.Unix(p.LastModified, 0) }

// SearchResponse is the envelope shared by every RPC query type.
//
// Error carries a logical error reported by the API. It is data, not a client
// failure: a response with Error set decoded successfully, and callers must
// check it themselves (or call [SearchResponse.Err]).
type SearchResponse struct {
	Error       *string   `json:"error,omitempty"`
	APIVersion  int       `json:"version"`
	Type        string    `json:"type"`
	ResultCount int       `json:"resultcount"`
	Results     []Package `json:"results"`
}

// UnmarshalJSON decodes the envelope. The keys version, type, resultcount and
// results are required; results may be an empty list but not null.
func (r *SearchResponse) UnmarshalJSON(data []byte) error {
	var aux struct {
		Error       *string    `json:"error"`
		APIVersion  *int       `json:"version"`
		Type        *string    `json:"type"`
		ResultCount *int       `json:"resultcount"`
		Results     *[]Package `json:"results"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.APIVersion == nil:
		return &MissingKeyError{Object: "response", Key: "version"}
	case aux.Type == nil:
		return &MissingKeyError{Object: "response", Key: "type"}
	case aux.ResultCount == nil:
		return &MissingKeyError{Object: "response", Key: "resultcount"}
	case aux.Results == nil:
		return &MissingKeyError{Object: "response", Key: "results"}
	}
	*r = SearchResponse{
		Error:       aux.Error,
		APIVersion:  *aux.APIVersion,
		Type:        *aux.Type,
		ResultCount: *aux.ResultCount,
		Results:     *aux.Results,
	}
	return nil
}

// Err returns the API-reported error as an API_ERROR, or nil if there is none.
func (r *SearchResponse) Err() error {
	if r == nil || r.Error == nil {
		return nil
	}
	return errs.New(errs.ErrCodeAPI, "%s", *r.Error)
}

// MissingKeyError reports a required JSON key that was absent or null.
type MissingKeyError struct {
	Object string
	Key    string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s: missing required key %q", e.Object, e.Key)
}
