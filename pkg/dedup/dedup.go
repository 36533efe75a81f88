// Package dedup collapses contact records that share the same contact
// channels. Sites tend to repeat one canonical inbox and phone across many
// named pages, so uniqueness is judged on (emails, phones) alone: the first
// record wins even when its person name or company differs from later ones.
package dedup

import (
	"github.com/amosWeiskopf/contactsmith/internal/models"
)

type signature struct {
	emails string
	phones string
}

// Collapse keeps the first record per (emails, phones) signature, in input
// order.
func Collapse(records []models.ContactRecord) []models.ContactRecord {
	seen := make(map[signature]bool, len(records))
	unique := make([]models.ContactRecord, 0, len(records))

	for _, record := range records {
		key := signature{emails: record.Emails, phones: record.Phones}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, record)
	}
	return unique
}
