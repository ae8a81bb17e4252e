package core

const (
	RecordIncome  RecordKind = "income"
	RecordExpense RecordKind = "expense"
)

type RecordKind string

// Record is one line of the server's recent history (incomes and expenses mixed).
type Record struct {
	ID          string     `json:"_id,omitempty"`
	Kind        RecordKind `json:"type"`
	Title       string     `json:"title,omitempty"`
	Category    string     `json:"category,omitempty"`
	SubCategory string     `json:"sub_category,omitempty"`
	Amount      Money      `json:"amount"`
	Date        Date       `json:"date"`
}

func (r Record) EntryDate() Date    { return r.Date }
func (r Record) EntryAmount() Money { return r.Amount }

// Label is the title when present, else the category.
func (r Record) Label() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Category
}

// Stats is the server-computed snapshot of totals plus recent history.
type Stats struct {
	TotalIncomes  Money    `json:"total_incomes"`
	TotalExpenses Money    `json:"total_expenses"`
	Recent        []Record `json:"allData"`
}

// Incomes returns the income records of the recent history.
func (s Stats) Incomes() []Record {
	return s.filter(RecordIncome)
}

// Expenses returns the expense records of the recent history. Records with no
// kind are treated as expenses.
func (s Stats) Expenses() []Record {
	return s.filter(RecordExpense)
}

func (s Stats) filter(kind RecordKind) []Record {
	out := make([]Record, 0, len(s.Recent))
	for _, r := range s.Recent {
		k := r.Kind
		if k != RecordIncome {
			k = RecordExpense
		}
		if k == kind {
			out = append(out, r)
		}
	}
	return out
}
