package dataprocessing

import (
	"campaignclean/pkg/contracts/domain"
)

// NormalizeClients projects the client attributes of every unified row.
// The mapping is total: the only failure is a column missing from the table.
func NormalizeClients(unified *Table) ([]domain.ClientRecord, error) {
	idx, err := unified.Columns(
		domain.ColumnClientID,
		domain.ColumnAge,
		domain.ColumnJob,
		domain.ColumnMarital,
		domain.ColumnEducation,
		domain.ColumnCreditDefault,
		domain.ColumnMortgage,
	)
	if err != nil {
		return nil, err
	}

	records := make([]domain.ClientRecord, len(unified.Rows))
	for i, row := range unified.Rows {
		records[i] = domain.ClientRecord{
			ClientID:      cell(row, idx[0]),
			Age:           cell(row, idx[1]),
			Job:           NormalizeJob(cell(row, idx[2])),
			Marital:       cell(row, idx[3]),
			Education:     NormalizeEducation(cell(row, idx[4])),
			CreditDefault: YesFlag(cell(row, idx[5])),
			Mortgage:      YesFlag(cell(row, idx[6])),
		}
	}
	return records, nil
}
