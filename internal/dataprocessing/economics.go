package dataprocessing

import (
	"campaignclean/pkg/contracts/domain"
)

// ProjectEconomics selects the economic indicators of every unified row,
// unchanged.
func ProjectEconomics(unified *Table) ([]domain.EconomicsRecord, error) {
	idx, err := unified.Columns(
		domain.ColumnClientID,
		domain.ColumnConsPriceIdx,
		domain.ColumnEuriborThreeMonths,
	)
	if err != nil {
		return nil, err
	}

	records := make([]domain.EconomicsRecord, len(unified.Rows))
	for i, row := range unified.Rows {
		records[i] = domain.EconomicsRecord{
			ClientID:           cell(row, idx[0]),
			ConsPriceIdx:       cell(row, idx[1]),
			EuriborThreeMonths: cell(row, idx[2]),
		}
	}
	return records, nil
}
