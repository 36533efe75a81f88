// Package extractor fetches a page and pulls contact details out of its
// visible text: emails and Indian mobile numbers by pattern matching, and
// person/organization names via an external entity recognizer.
package extractor

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/nyaruka/phonenumbers"

	"github.com/amosWeiskopf/contactsmith/internal/models"
	"github.com/amosWeiskopf/contactsmith/pkg/ner"
	"github.com/amosWeiskopf/contactsmith/pkg/utils"
)

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)

	// Indian mobile numbers: optional +91 / 0091 / 91 prefix with an optional
	// separator, then ten digits starting 6-9.
	phoneRegex = regexp.MustCompile(`(?:(?:\+|00)?91[\s\-]?)?[6-9]\d{9}`)

	// Addresses with these local-part prefixes are unattended inboxes and
	// useless as contacts. Case-sensitive, matching the legacy behavior.
	blockedPrefixes = []string{"noreply", "no-reply", "donotreply"}
)

// Extractor fetches pages and produces PageRecords
type Extractor struct {
	client       *http.Client
	recognizer   ner.Recognizer
	userAgent    string
	strictPhones bool
	phoneRegion  string
	logger       *log.Logger
}

// Options contains configuration for the extractor
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	StrictPhones bool
	PhoneRegion  string
}

// New creates a new Extractor instance
func New(recognizer ner.Recognizer, opts Options, logger *log.Logger) *Extractor {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.PhoneRegion == "" {
		opts.PhoneRegion = "IN"
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Extractor{
		client:       &http.Client{Timeout: opts.Timeout},
		recognizer:   recognizer,
		userAgent:    opts.UserAgent,
		strictPhones: opts.StrictPhones,
		phoneRegion:  opts.PhoneRegion,
		logger:       logger,
	}
}

// Extract fetches the page and returns its contact record. Any fetch or
// parse failure is returned as an error; callers treat it as page-scoped
// and skip the page.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*models.PageRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	text := utils.CleanText(doc.Text())

	record := &models.PageRecord{
		URL:    pageURL,
		Emails: e.extractEmails(text),
		Phones: e.extractPhones(text),
	}

	// Recognizer trouble only costs us names: regex contacts still count.
	names, orgs, err := e.extractEntities(ctx, text)
	if err != nil {
		e.logger.Warn("entity recognition failed", "url", pageURL, "error", err)
	} else {
		record.Names = names
		record.Orgs = orgs
	}

	return record, nil
}

// extractEmails finds deduplicated email addresses, dropping unattended
// inbox prefixes.
func (e *Extractor) extractEmails(text string) []string {
	var emails []string
	for _, match := range uniqueStrings(emailRegex.FindAllString(text, -1)) {
		if hasBlockedPrefix(match) {
			continue
		}
		emails = append(emails, match)
	}
	return emails
}

// extractPhones finds deduplicated Indian mobile numbers. In strict mode
// each match is additionally validated against the number plan.
func (e *Extractor) extractPhones(text string) []string {
	matches := uniqueStrings(phoneRegex.FindAllString(text, -1))
	if !e.strictPhones {
		return matches
	}

	var phones []string
	for _, match := range matches {
		num, err := phonenumbers.Parse(match, e.phoneRegion)
		if err != nil || !phonenumbers.IsValidNumber(num) {
			continue
		}
		phones = append(phones, match)
	}
	return phones
}

func (e *Extractor) extractEntities(ctx context.Context, text string) (names, orgs []string, err error) {
	entities, err := e.recognizer.Recognize(ctx, text)
	if err != nil {
		return nil, nil, err
	}
	for _, ent := range entities {
		switch ent.Label {
		case ner.LabelPerson:
			names = append(names, strings.TrimSpace(ent.Text))
		case ner.LabelOrg:
			orgs = append(orgs, strings.TrimSpace(ent.Text))
		}
	}
	return names, orgs, nil
}

func hasBlockedPrefix(email string) bool {
	for _, prefix := range blockedPrefixes {
		if strings.HasPrefix(email, prefix) {
			return true
		}
	}
	return false
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	var result []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
