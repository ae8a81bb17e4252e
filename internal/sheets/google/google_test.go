package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goption "google.golang.org/api/option"

	"wealthify/internal/core"
	"wealthify/internal/stats"
)

// fakeSheets answers the four Sheets calls WriteReport makes.
type fakeSheets struct {
	mu      sync.Mutex
	titles  []string
	added   []string
	cleared []string
	written map[string][][]any
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/spreadsheets/sheet-1"):
		sheets := make([]map[string]any, 0, len(f.titles))
		for _, t := range f.titles {
			sheets = append(sheets, map[string]any{"properties": map[string]any{"title": t}})
		}
		json.NewEncoder(w).Encode(map[string]any{"sheets": sheets})

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		var req struct {
			Requests []struct {
				AddSheet struct {
					Properties struct {
						Title string `json:"title"`
					} `json:"properties"`
				} `json:"addSheet"`
			} `json:"requests"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		for _, rq := range req.Requests {
			f.added = append(f.added, rq.AddSheet.Properties.Title)
			f.titles = append(f.titles, rq.AddSheet.Properties.Title)
		}
		io.WriteString(w, `{"spreadsheetId":"sheet-1"}`)

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":clear"):
		f.cleared = append(f.cleared, path)
		io.WriteString(w, `{}`)

	case r.Method == http.MethodPut && strings.Contains(path, "/values/"):
		var vr struct {
			Values [][]any `json:"values"`
		}
		json.NewDecoder(r.Body).Decode(&vr)
		rng := path[strings.Index(path, "/values/")+len("/values/"):]
		f.written[rng] = vr.Values
		json.NewEncoder(w).Encode(map[string]any{
			"updatedRange": rng,
			"updatedRows":  len(vr.Values),
		})

	default:
		http.Error(w, `{"error":{"code":404,"message":"unexpected call"}}`, http.StatusNotFound)
	}
}

func newTestClient(t *testing.T, existing ...string) (*Client, *fakeSheets) {
	t.Helper()
	fake := &fakeSheets{titles: existing, written: map[string][][]any{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), Config{SpreadsheetID: "sheet-1"}, nil,
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return c, fake
}

func testReport() stats.MonthReport {
	r := stats.NewMonthReport(2025, time.March,
		[]core.Income{{Title: "Salary", Category: "Job", Amount: core.Money{Cents: 5000000}, Date: core.NewDate(2025, 3, 1)}},
		[]core.Expense{{Category: "food", Amount: core.Money{Cents: 15000}, Date: core.NewDate(2025, 3, 2), Type: core.ExpenseSelf}},
		&core.BudgetSet{Budgets: map[string]core.Money{"food": {Cents: 20000}}},
	)
	return r
}

func TestWriteReportCreatesSheet(t *testing.T) {
	c, fake := newTestClient(t, "Sheet1")

	ref, err := c.WriteReport(context.Background(), testReport())
	require.NoError(t, err)
	assert.Equal(t, "'2025-03 Report'!A1", ref)
	assert.Equal(t, []string{"2025-03 Report"}, fake.added)
	assert.Len(t, fake.cleared, 1)

	rows := fake.written["'2025-03 Report'!A1"]
	require.NotEmpty(t, rows)
	assert.Equal(t, []any{"Report", "2025-03"}, rows[0])
}

func TestWriteReportReusesSheet(t *testing.T) {
	c, fake := newTestClient(t, "2025-03 Report")

	_, err := c.WriteReport(context.Background(), testReport())
	require.NoError(t, err)
	assert.Empty(t, fake.added)
	assert.Len(t, fake.cleared, 1)
}

func TestNewRequiresSpreadsheetAndCredentials(t *testing.T) {
	_, err := New(context.Background(), Config{}, nil)
	assert.EqualError(t, err, "missing GOOGLE_SPREADSHEET_ID")

	_, err = New(context.Background(), Config{SpreadsheetID: "x"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing service account credentials")

	_, err = New(context.Background(), Config{SpreadsheetID: "x", CredentialsFile: "/does/not/exist.json"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read service account file")
}

func TestQuoteSheet(t *testing.T) {
	assert.Equal(t, "'Bob''s Report'", quoteSheet("Bob's Report"))
}
