package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReportRequestMessage asks the report worker to export one month.
type ReportRequestMessage struct {
	ID        string    `json:"id"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReportRequestMessage(year, month int) *ReportRequestMessage {
	return &ReportRequestMessage{
		ID:        uuid.NewString(),
		Year:      year,
		Month:     month,
		Timestamp: time.Now(),
	}
}

func (m *ReportRequestMessage) Validate() error {
	if m.Year < 1 {
		return fmt.Errorf("invalid year %d", m.Year)
	}
	if m.Month < 1 || m.Month > 12 {
		return fmt.Errorf("invalid month %d", m.Month)
	}
	return nil
}

func (m *ReportRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportRequestMessageFromJSON decodes and validates a message body.
func ReportRequestMessageFromJSON(data []byte) (*ReportRequestMessage, error) {
	var msg ReportRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
