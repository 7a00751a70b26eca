package service

import (
	"github.com/vakildesk/vakildesk-api/internal/models"
)

// DeriveIndex groups pending cases by next hearing date. The index is
// recomputed in full on every collection change; mutation is always by
// whole-record replacement, so incremental maintenance would buy nothing at
// the expected scale of hundreds of cases.
func DeriveIndex(cases []models.Case) models.CalendarIndex {
	index := make(models.CalendarIndex)
	for _, c := range cases {
		if !c.OnCalendar() {
			continue
		}
		index[c.NextDate] = append(index[c.NextDate], c)
	}
	return index
}

// DeriveCounters reduces the collection to aggregate totals.
func DeriveCounters(cases []models.Case) models.CaseCounters {
	counters := models.CaseCounters{Total: len(cases)}
	for _, c := range cases {
		switch c.Status {
		case models.StatusPending:
			counters.Pending++
		case models.StatusDecided:
			counters.Decided++
		}
	}
	return counters
}
