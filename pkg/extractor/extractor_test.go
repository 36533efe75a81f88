package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amosWeiskopf/contactsmith/pkg/ner"
)

// stubRecognizer returns canned entities or an error.
type stubRecognizer struct {
	entities []ner.Entity
	err      error
	gotText  string
}

func (s *stubRecognizer) Recognize(_ context.Context, text string) ([]ner.Entity, error) {
	s.gotText = text
	return s.entities, s.err
}

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(body))
	}))
}

func TestExtractContactPage(t *testing.T) {
	server := serveHTML(t, `
		<html><head><title>Contact</title><style>p { color: red }</style></head>
		<body><p>Contact Jane Doe at jane@example.in or call 9876543210</p></body></html>
	`)
	defer server.Close()

	rec := &stubRecognizer{entities: []ner.Entity{
		{Text: " Jane Doe ", Label: ner.LabelPerson},
		{Text: "Example Hospital", Label: ner.LabelOrg},
	}}

	e := New(rec, Options{}, nil)
	record, err := e.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, server.URL, record.URL)
	assert.Equal(t, []string{"jane@example.in"}, record.Emails)
	assert.Equal(t, []string{"9876543210"}, record.Phones)
	assert.Equal(t, []string{"Jane Doe"}, record.Names)
	assert.Equal(t, []string{"Example Hospital"}, record.Orgs)

	// Recognizer sees flattened visible text, with style contents gone.
	assert.Contains(t, rec.gotText, "Contact Jane Doe at jane@example.in")
	assert.NotContains(t, rec.gotText, "color: red")
}

func TestExtractFiltersUnattendedInboxes(t *testing.T) {
	server := serveHTML(t, `
		<html><body>
		<p>reach us at noreply@example.in or no-reply@example.in or donotreply@example.in</p>
		<p>or really at hello@example.in, phone 12345</p>
		</body></html>
	`)
	defer server.Close()

	e := New(&stubRecognizer{}, Options{}, nil)
	record, err := e.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{"hello@example.in"}, record.Emails)
	assert.Empty(t, record.Phones)
}

func TestExtractNoValidContacts(t *testing.T) {
	server := serveHTML(t, `<html><body><p>reach us at noreply@example.in</p></body></html>`)
	defer server.Close()

	e := New(&stubRecognizer{}, Options{}, nil)
	record, err := e.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Empty(t, record.Emails)
	assert.Empty(t, record.Phones)
}

func TestPhonePattern(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"bare ten digits starting 9", "call 9876543210 today", []string{"9876543210"}},
		{"starting 6", "call 6123456789", []string{"6123456789"}},
		{"plus prefix", "dial +91 9876543210", []string{"+91 9876543210"}},
		{"double zero prefix", "dial 0091-9876543210", []string{"0091-9876543210"}},
		{"bare country code", "dial 919876543210", []string{"919876543210"}},
		{"first digit too low", "call 5123456789", nil},
		{"zero start", "call 0123456789", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, phoneRegex.FindAllString(tt.text, -1))
		})
	}
}

func TestExtractDeduplicates(t *testing.T) {
	server := serveHTML(t, `
		<html><body>
		<p>jane@example.in and again jane@example.in</p>
		<p>9876543210 and again 9876543210</p>
		</body></html>
	`)
	defer server.Close()

	e := New(&stubRecognizer{}, Options{}, nil)
	record, err := e.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{"jane@example.in"}, record.Emails)
	assert.Equal(t, []string{"9876543210"}, record.Phones)
}

func TestExtractStrictPhones(t *testing.T) {
	server := serveHTML(t, `<html><body><p>call 9876543210</p></body></html>`)
	defer server.Close()

	e := New(&stubRecognizer{}, Options{StrictPhones: true, PhoneRegion: "IN"}, nil)
	record, err := e.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{"9876543210"}, record.Phones)
}

func TestExtractRecognizerFailureDegrades(t *testing.T) {
	server := serveHTML(t, `<html><body><p>jane@example.in</p></body></html>`)
	defer server.Close()

	e := New(&stubRecognizer{err: errors.New("service down")}, Options{}, nil)
	record, err := e.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{"jane@example.in"}, record.Emails)
	assert.Empty(t, record.Names)
	assert.Empty(t, record.Orgs)
}

func TestExtractNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	e := New(&stubRecognizer{}, Options{}, nil)
	_, err := e.Extract(context.Background(), server.URL)
	assert.ErrorContains(t, err, "status 404")
}

func TestExtractUnreachableIsError(t *testing.T) {
	e := New(&stubRecognizer{}, Options{}, nil)
	_, err := e.Extract(context.Background(), "http://127.0.0.1:1/")
	assert.Error(t, err)
}
