package export

import (
	"bytes"
	"strings"
	"time"

	"github.com/wolfman30/submissions-dashboard/internal/submissions"
)

const csvHeader = "Timestamp,Name,Email,Contact Number,Complete Address,Notes\n"

// CSV renders every record. Non-empty fields are always quoted and empty ones
// are left blank, which encoding/csv cannot express.
func CSV(records []submissions.Submission, at time.Time) (File, error) {
	if len(records) == 0 {
		return File{}, ErrNoData
	}
	var buf bytes.Buffer
	buf.WriteString(csvHeader)
	for _, r := range records {
		fields := []string{r.Timestamp, r.Name, r.Email, r.ContactNumber, r.CompleteAddress, r.Message}
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quoteField(f))
		}
		buf.WriteByte('\n')
	}
	return File{
		Name:        fileName("submissions", "csv", at),
		ContentType: "text/csv;charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func quoteField(s string) string {
	if s == "" {
		return ""
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
