package dashboard

import (
	"github.com/wolfman30/submissions-dashboard/internal/phone"
	"github.com/wolfman30/submissions-dashboard/internal/submissions"
)

const notAvailable = "N/A"

// LinkBuilder produces a messaging link for a contact number.
type LinkBuilder interface {
	BuildLink(raw, displayName string) (string, bool)
}

// Row is one rendered table line.
type Row struct {
	Timestamp       string `json:"timestamp"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ContactNumber   string `json:"contact_number"`
	CompleteAddress string `json:"complete_address"`
	Message         string `json:"message"`
	HasContact      bool   `json:"has_contact"`
	WhatsAppLink    string `json:"whatsapp_link,omitempty"`
	NationalPhone   string `json:"national_phone,omitempty"`
}

// BuildRows renders records for the table. Rows with a contact number but no
// usable link keep HasContact so the UI can show the invalid-number notice.
func BuildRows(records []submissions.Submission, links LinkBuilder) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := Row{
			Timestamp:       orNA(rec.Timestamp),
			Name:            orNA(rec.Name),
			Email:           orNA(rec.Email),
			ContactNumber:   orNA(rec.ContactNumber),
			CompleteAddress: orNA(rec.CompleteAddress),
			Message:         orNA(rec.Message),
			HasContact:      rec.ContactNumber != "",
		}
		if row.HasContact {
			if links != nil {
				if link, ok := links.BuildLink(rec.ContactNumber, rec.Name); ok {
					row.WhatsAppLink = link
				}
			}
			if canonical, err := phone.Normalize(rec.ContactNumber); err == nil {
				row.NationalPhone = phone.Details(canonical).National
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func orNA(v string) string {
	if v == "" {
		return notAvailable
	}
	return v
}
