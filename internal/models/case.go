package models

// CaseNature distinguishes civil and criminal matters.
type CaseNature string

const (
	NatureCivil    CaseNature = "Civil"
	NatureCriminal CaseNature = "Criminal"
)

// CaseStatus is the procedural disposition of a matter.
type CaseStatus string

const (
	StatusPending CaseStatus = "Pending"
	StatusDecided CaseStatus = "Decided"
)

// HistoryEntry is an immutable snapshot of one past court appearance.
// Entries are prepended to Case.History and never mutated or reordered.
type HistoryEntry struct {
	Date        string `json:"date"`
	Proceedings string `json:"proceedings"`
	Stage       string `json:"stage"`
	NextDate    string `json:"nextDate"`
}

// Case is one tracked legal matter. Dates are ISO YYYY-MM-DD strings; an
// empty NextDate means no hearing is scheduled.
type Case struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	CaseNumber string     `json:"caseNumber"`
	FilingYear string     `json:"filingYear"`
	Nature     CaseNature `json:"nature"`
	CaseType   string     `json:"caseType,omitempty"`
	Side       string     `json:"side,omitempty"`
	Court      string     `json:"court"`

	// Criminal-only details.
	FIRNumber     string `json:"firNumber,omitempty"`
	PoliceStation string `json:"policeStation,omitempty"`
	Offence       string `json:"offence,omitempty"`

	Stage     string         `json:"stage"`
	DiaryNote string         `json:"diaryNote"`
	NextDate  string         `json:"nextDate"`
	Status    CaseStatus     `json:"status"`
	History   []HistoryEntry `json:"history"`
}

// OnCalendar reports whether the case should appear on the hearing calendar.
func (c Case) OnCalendar() bool {
	return c.Status == StatusPending && c.NextDate != ""
}

// CaseCounters aggregates collection-wide totals.
type CaseCounters struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Decided int `json:"decided"`
}

// CalendarIndex maps ISO dates to the pending cases listed under them.
type CalendarIndex map[string][]Case
