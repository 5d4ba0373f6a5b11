package exporter

import (
	"strings"

	"campaignclean/internal/config"
	"campaignclean/pkg/contracts/domain"
)

// ClientTable serializes client records as the client output table
func ClientTable(records []domain.ClientRecord) domain.OutputTable {
	return domain.OutputTable{
		Name:    tableName(config.ClientFileName),
		Headers: domain.ClientHeaders(),
		Records: domain.Rows(records),
	}
}

// CampaignTable serializes campaign records as the campaign output table
func CampaignTable(records []domain.CampaignRecord) domain.OutputTable {
	return domain.OutputTable{
		Name:    tableName(config.CampaignFileName),
		Headers: domain.CampaignHeaders(),
		Records: domain.Rows(records),
	}
}

// EconomicsTable serializes economics records as the economics output table
func EconomicsTable(records []domain.EconomicsRecord) domain.OutputTable {
	return domain.OutputTable{
		Name:    tableName(config.EconomicsFileName),
		Headers: domain.EconomicsHeaders(),
		Records: domain.Rows(records),
	}
}

func tableName(fileName string) string {
	return strings.TrimSuffix(fileName, ".csv")
}
