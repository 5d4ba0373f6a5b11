// Package exporter writes the normalized output tables.
//
// This package contains two main components:
//
// CSVWriter: writes each table as a comma separated file with a header row,
// "\n" line endings and no byte order mark. Missing values are empty fields.
//
// WorkbookWriter: writes the same tables as sheets of one xlsx workbook.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths, logger)
//	written, err := writer.WriteTables([]domain.OutputTable{
//		exporter.ClientTable(clients),
//		exporter.CampaignTable(campaigns),
//		exporter.EconomicsTable(economics),
//	})
//
//	err = exporter.NewWorkbookWriter(logger).WriteWorkbook("files/output/campaign.xlsx", tables)
package exporter
