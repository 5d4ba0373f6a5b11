package dataprocessing

import (
	"fmt"

	apperrors "campaignclean/internal/errors"
	"campaignclean/pkg/contracts/domain"
)

// DefaultContactYear is the year every last contact date falls in
const DefaultContactYear = 2022

// CampaignNormalizer projects campaign interactions and builds the last
// contact date from the month and day columns.
type CampaignNormalizer struct {
	year int
}

// NewCampaignNormalizer creates a normalizer dating contacts in year
func NewCampaignNormalizer(year int) *CampaignNormalizer {
	if year == 0 {
		year = DefaultContactYear
	}
	return &CampaignNormalizer{year: year}
}

// Year returns the contact year applied to every row
func (n *CampaignNormalizer) Year() int {
	return n.year
}

// Normalize returns one CampaignRecord per unified row, in order. The first
// month/day pair that is not a calendar date aborts with a
// DATE_CONSTRUCTION error naming the row and its client_id.
func (n *CampaignNormalizer) Normalize(unified *Table) ([]domain.CampaignRecord, error) {
	idx, err := unified.Columns(
		domain.ColumnClientID,
		domain.ColumnNumberContacts,
		domain.ColumnContactDuration,
		domain.ColumnPreviousCampaignContacts,
		domain.ColumnPreviousOutcome,
		domain.ColumnCampaignOutcome,
		domain.ColumnMonth,
		domain.ColumnDay,
	)
	if err != nil {
		return nil, err
	}

	records := make([]domain.CampaignRecord, len(unified.Rows))
	for i, row := range unified.Rows {
		clientID := cell(row, idx[0])
		month, day := cell(row, idx[6]), cell(row, idx[7])

		date, err := ContactDate(n.year, month, day)
		if err != nil {
			return nil, apperrors.NewDateConstructionError(
				fmt.Sprintf("row %d (client_id %s): cannot build last contact date from %d-%s-%s",
					i, clientID, n.year, month, day), err).
				WithContext("row", i).
				WithContext("client_id", clientID).
				WithContext("month", month).
				WithContext("day", day)
		}

		records[i] = domain.CampaignRecord{
			ClientID:                 clientID,
			NumberContacts:           cell(row, idx[1]),
			ContactDuration:          cell(row, idx[2]),
			PreviousCampaignContacts: cell(row, idx[3]),
			PreviousOutcome:          SuccessFlag(cell(row, idx[4])),
			CampaignOutcome:          YesFlag(cell(row, idx[5])),
			LastContactDate:          date,
		}
	}
	return records, nil
}
