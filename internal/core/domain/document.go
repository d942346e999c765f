package domain

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Document is one synchronised GitHub resource as stored.
type Document struct {
	// ID is the remote-assigned identifier, or a content hash for kinds
	// without a natural one.
	ID string

	// Kind is the resource category this document belongs to.
	Kind Kind

	// Repo is the repository the document was fetched from.
	Repo string

	// Body is the raw JSON element exactly as the API returned it,
	// compacted.
	Body json.RawMessage

	// Overwrite controls the write: true replaces any stored document
	// with this id, false drops the write when the id already exists.
	// It is the static policy of Kind, carried per document so stores
	// need no policy knowledge.
	Overwrite bool
}

// MapElement derives the stored form of one fetched JSON element.
// It is pure: no network or storage access.
//
// Identity rules: kinds with a natural `id` field use its string form;
// everything else gets an MD5 hex digest of the element's canonical JSON,
// so unchanged content keeps a stable id across cycles and any content
// change produces a new one.
func MapElement(kind Kind, repo string, raw json.RawMessage) (Document, error) {
	policy, ok := kindPolicies[kind]
	if !ok {
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	obj, err := decodeObject(raw)
	if err != nil {
		return Document{}, err
	}

	id := ""
	if !policy.hashOnly {
		id = naturalID(obj)
	}
	if id == "" {
		id, err = contentHash(obj)
		if err != nil {
			return Document{}, fmt.Errorf("hash element: %w", err)
		}
	}

	var body bytes.Buffer
	if err := json.Compact(&body, raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformedElement, err)
	}

	return Document{
		ID:        id,
		Kind:      kind,
		Repo:      repo,
		Body:      body.Bytes(),
		Overwrite: policy.overwrite,
	}, nil
}

// decodeObject parses raw as a JSON object, keeping numbers verbatim so
// large identifiers survive the round trip.
func decodeObject(raw json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedElement, err)
	}
	return obj, nil
}

// naturalID extracts the element's own id field, if any.
// GitHub serialises ids as strings for events and numbers elsewhere.
func naturalID(obj map[string]any) string {
	switch v := obj["id"].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// contentHash digests the element's canonical JSON: object keys sorted at
// every nesting level, compact encoding. Identical content always yields
// the identical id.
func contentHash(obj map[string]any) (string, error) {
	canonical, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(canonical)
	return hex.EncodeToString(sum[:]), nil
}
