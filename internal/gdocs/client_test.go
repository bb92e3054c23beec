package gdocs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientCreateAndBatchUpdate(t *testing.T) {
	var batchBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Errorf("missing bearer token, got %q", got)
		}
		switch r.URL.Path {
		case "/v1/documents":
			fmt.Fprint(w, `{"documentId":"doc-1"}`)
		case "/v1/documents/doc-1:batchUpdate":
			if err := json.NewDecoder(r.Body).Decode(&batchBody); err != nil {
				t.Errorf("decode batch body: %v", err)
			}
			fmt.Fprint(w, `{}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := &Client{Token: "token-123", BaseURL: srv.URL}
	id, err := c.CreateDocument(context.Background(), "August 2026 - Polity")
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	if id != "doc-1" {
		t.Fatalf("expected doc-1, got %q", id)
	}

	reqs := BuildRequests(polityBlocks(), buildTime)
	if err := c.BatchUpdate(context.Background(), id, reqs); err != nil {
		t.Fatalf("batch update: %v", err)
	}

	raw, ok := batchBody["requests"]
	if !ok {
		t.Fatalf("batch body missing requests field")
	}
	var decoded []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode requests: %v", err)
	}
	if len(decoded) != len(reqs) {
		t.Fatalf("expected %d wire requests, got %d", len(reqs), len(decoded))
	}
	// union encoding: exactly one operation key per request
	for i, op := range decoded {
		if len(op) != 1 {
			t.Fatalf("request %d encodes %d operations: %v", i, len(op), op)
		}
	}
}

func TestClientSurfacesServiceRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"message":"quota exceeded"}}`)
	}))
	defer srv.Close()

	c := &Client{Token: "t", BaseURL: srv.URL}
	if _, err := c.CreateDocument(context.Background(), "title"); err == nil {
		t.Fatalf("expected rejection error")
	}
}

// recordingService captures builder calls without a network.
type recordingService struct {
	created []string
	batches map[string][]Request
	fail    bool
}

func (r *recordingService) CreateDocument(_ context.Context, title string) (string, error) {
	if r.fail {
		return "", fmt.Errorf("auth failed")
	}
	r.created = append(r.created, title)
	return fmt.Sprintf("doc-%d", len(r.created)), nil
}

func (r *recordingService) BatchUpdate(_ context.Context, id string, reqs []Request) error {
	if r.batches == nil {
		r.batches = make(map[string][]Request)
	}
	r.batches[id] = reqs
	return nil
}

func TestBuilderSkipsEmptyCategory(t *testing.T) {
	svc := &recordingService{}
	b := &Builder{Service: svc, Now: func() time.Time { return buildTime }}

	if err := b.BuildCategory(context.Background(), "Polity", nil); err != nil {
		t.Fatalf("empty category must be a no-op, got %v", err)
	}
	if len(svc.created) != 0 {
		t.Fatalf("empty category must not create a document")
	}
}

func TestBuilderTitleAndSubmission(t *testing.T) {
	svc := &recordingService{}
	b := &Builder{Service: svc, Now: func() time.Time { return buildTime }}

	if err := b.BuildCategory(context.Background(), "Polity", polityBlocks()); err != nil {
		t.Fatalf("build category: %v", err)
	}
	if len(svc.created) != 1 || svc.created[0] != "August 2026 - Polity" {
		t.Fatalf("unexpected document titles: %v", svc.created)
	}
	reqs := svc.batches["doc-1"]
	if len(reqs) == 0 {
		t.Fatalf("expected a single batch submission")
	}
	verifyOffsets(t, reqs)
}

func TestBuilderReturnsServiceError(t *testing.T) {
	b := &Builder{Service: &recordingService{fail: true}, Now: func() time.Time { return buildTime }}
	if err := b.BuildCategory(context.Background(), "Polity", polityBlocks()); err == nil {
		t.Fatalf("expected service error to surface")
	}
}

func TestRequestJSONFieldNames(t *testing.T) {
	reqs := BuildRequests(polityBlocks()[:2], buildTime)
	raw, err := json.Marshal(reqs[1])
	if err != nil {
		t.Fatalf("marshal style op: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	style, ok := m["updateTextStyle"].(map[string]any)
	if !ok {
		t.Fatalf("expected updateTextStyle key, got %v", m)
	}
	if style["fields"] != "*" {
		t.Fatalf("updateTextStyle must request all fields, got %v", style["fields"])
	}
}
