package parser

import (
	"fmt"
	"strings"

	"github.com/ppiankov/pressparse/internal/model"
)

// Fields flattens a result into the key/value form used by form-filling consumers.
// Quote keys are numbered from 1: quote_1_text, quote_1_speaker, quote_1_title.
func Fields(r model.ParseResult) map[string]string {
	cs := r.ContentStructure
	fields := map[string]string{
		"release_type":        r.ReleaseInfo.ReleaseType,
		"embargo":             r.ReleaseInfo.Embargo,
		"headline":            cs.Headline,
		"subhead":             cs.Subhead,
		"dateline_location":   cs.Dateline.Location,
		"dateline_date":       cs.Dateline.Date,
		"dateline_full":       cs.Dateline.Full,
		"dateline_confidence": string(cs.Dateline.Confidence),
		"lead_paragraph":      cs.LeadParagraph,
		"body":                strings.Join(cs.BodyParagraphs, "\n\n"),
		"contact_name":        r.ContactInfo.Name,
		"contact_email":       r.ContactInfo.Email,
		"contact_phone":       r.ContactInfo.Phone,
		"boilerplate":         r.ContactInfo.Boilerplate,
		"quote_count":         fmt.Sprint(len(r.Quotes)),
	}

	for i, q := range r.Quotes {
		prefix := fmt.Sprintf("quote_%d_", i+1)
		fields[prefix+"text"] = q.QuoteText
		fields[prefix+"speaker"] = q.SpeakerName
		fields[prefix+"title"] = q.SpeakerTitle
		fields[prefix+"attribution"] = q.FullAttribution
	}
	return fields
}
