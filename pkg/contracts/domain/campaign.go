package domain

import (
	"strconv"
	"time"
)

// Source schema column names shared by every input fragment
const (
	ColumnClientID                 = "client_id"
	ColumnAge                      = "age"
	ColumnJob                      = "job"
	ColumnMarital                  = "marital"
	ColumnEducation                = "education"
	ColumnCreditDefault            = "credit_default"
	ColumnMortgage                 = "mortgage"
	ColumnMonth                    = "month"
	ColumnDay                      = "day"
	ColumnContactDuration          = "contact_duration"
	ColumnNumberContacts           = "number_contacts"
	ColumnPreviousCampaignContacts = "previous_campaign_contacts"
	ColumnPreviousOutcome          = "previous_outcome"
	ColumnConsPriceIdx             = "cons_price_idx"
	ColumnEuriborThreeMonths       = "euribor_three_months"
	ColumnCampaignOutcome          = "campaign_outcome"

	// ColumnLastContactDate is derived from month and day
	ColumnLastContactDate = "last_contact_date"
)

// DateLayout is the serialized form of LastContactDate
const DateLayout = "2006-01-02"

// CampaignSchema returns the 16 columns of a campaign fragment, in source order.
func CampaignSchema() []string {
	return []string{
		ColumnClientID,
		ColumnAge,
		ColumnJob,
		ColumnMarital,
		ColumnEducation,
		ColumnCreditDefault,
		ColumnMortgage,
		ColumnMonth,
		ColumnDay,
		ColumnContactDuration,
		ColumnNumberContacts,
		ColumnPreviousCampaignContacts,
		ColumnPreviousOutcome,
		ColumnConsPriceIdx,
		ColumnEuriborThreeMonths,
		ColumnCampaignOutcome,
	}
}

// ClientRecord holds the client attributes of one campaign row
type ClientRecord struct {
	ClientID      string  `json:"client_id"`
	Age           string  `json:"age"`
	Job           string  `json:"job"`
	Marital       string  `json:"marital"`
	Education     *string `json:"education"` // nil when unknown or missing
	CreditDefault int     `json:"credit_default"`
	Mortgage      int     `json:"mortgage"`
}

// ClientHeaders returns the column names of client.csv
func ClientHeaders() []string {
	return []string{
		ColumnClientID,
		ColumnAge,
		ColumnJob,
		ColumnMarital,
		ColumnEducation,
		ColumnCreditDefault,
		ColumnMortgage,
	}
}

// Row serializes the record in ClientHeaders order
func (r ClientRecord) Row() []string {
	education := ""
	if r.Education != nil {
		education = *r.Education
	}
	return []string{
		r.ClientID,
		r.Age,
		r.Job,
		r.Marital,
		education,
		strconv.Itoa(r.CreditDefault),
		strconv.Itoa(r.Mortgage),
	}
}

// CampaignRecord holds the campaign interaction attributes of one row
type CampaignRecord struct {
	ClientID                 string    `json:"client_id"`
	NumberContacts           string    `json:"number_contacts"`
	ContactDuration          string    `json:"contact_duration"`
	PreviousCampaignContacts string    `json:"previous_campaign_contacts"`
	PreviousOutcome          int       `json:"previous_outcome"`
	CampaignOutcome          int       `json:"campaign_outcome"`
	LastContactDate          time.Time `json:"last_contact_date"`
}

// CampaignHeaders returns the column names of campaign.csv
func CampaignHeaders() []string {
	return []string{
		ColumnClientID,
		ColumnNumberContacts,
		ColumnContactDuration,
		ColumnPreviousCampaignContacts,
		ColumnPreviousOutcome,
		ColumnCampaignOutcome,
		ColumnLastContactDate,
	}
}

// Row serializes the record in CampaignHeaders order
func (r CampaignRecord) Row() []string {
	return []string{
		r.ClientID,
		r.NumberContacts,
		r.ContactDuration,
		r.PreviousCampaignContacts,
		strconv.Itoa(r.PreviousOutcome),
		strconv.Itoa(r.CampaignOutcome),
		r.LastContactDate.Format(DateLayout),
	}
}

// EconomicsRecord holds the economic indicators attached to one row
type EconomicsRecord struct {
	ClientID           string `json:"client_id"`
	ConsPriceIdx       string `json:"cons_price_idx"`
	EuriborThreeMonths string `json:"euribor_three_months"`
}

// EconomicsHeaders returns the column names of economics.csv
func EconomicsHeaders() []string {
	return []string{
		ColumnClientID,
		ColumnConsPriceIdx,
		ColumnEuriborThreeMonths,
	}
}

// Row serializes the record in EconomicsHeaders order
func (r EconomicsRecord) Row() []string {
	return []string{r.ClientID, r.ConsPriceIdx, r.EuriborThreeMonths}
}

// Rower is implemented by every output record kind
type Rower interface {
	Row() []string
}

// Rows converts a slice of records into CSV-ready string rows
func Rows[T Rower](records []T) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return rows
}

// OutputTable is a named, fully serialized output table
type OutputTable struct {
	Name    string     `json:"name"`
	Headers []string   `json:"headers"`
	Records [][]string `json:"records"`
}
