package compliance

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/gaia-qao/compliance-backend/internal/domain/compliance"
	"github.com/gaia-qao/compliance-backend/internal/domain/errors"
)

var violationCSVHeader = []string{"ID", "Requirement ID", "Description", "Severity", "Timestamp"}

// WriteViolationsCSV streams a report's violations as CSV. The header
// row is always written, even for a report with no violations.
func WriteViolationsCSV(w io.Writer, report *compliance.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(violationCSVHeader); err != nil {
		return errors.Wrap(err, "writing csv header")
	}

	for _, v := range report.Violations {
		record := []string{
			v.ID,
			v.RequirementID,
			v.Description,
			string(v.Severity),
			v.Timestamp.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "writing csv record for violation "+v.ID)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ViolationsCSVFilename returns a timestamped attachment name for a
// CSV export.
func ViolationsCSVFilename(now time.Time) string {
	return "compliance-violations-" + strconv.FormatInt(now.UnixMilli(), 10) + ".csv"
}
