// Package dataprocessing turns campaign fragments into the client, campaign
// and economics record sets.
//
// # Architecture
//
// The package is organized into three stages:
//
// 1. Loader: decodes compressed or plain CSV fragments into Tables
// 2. Unifier: concatenates fragments onto the canonical campaign schema
// 3. Projections: derive ClientRecord, CampaignRecord and EconomicsRecord rows
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger, 4)
//	fragments, err := loader.LoadAll(ctx, discovered)
//	if err != nil {
//	    return err
//	}
//
//	unified := dataprocessing.NewUnifier(logger).Unify(fragments)
//	clients, err := dataprocessing.NormalizeClients(unified)
//	campaigns, err := dataprocessing.NewCampaignNormalizer(2022).Normalize(unified)
//	economics, err := dataprocessing.ProjectEconomics(unified)
//
// # Data Flow
//
//	Fragment files → Loader → Tables → Unifier → Table → Projections → Records
//
// # Compression
//
// The codec is chosen from the file extension: .zip (a single member),
// .gz or .gzip, .bz2, .sz or .snappy (framed snappy), anything else is read
// as plain CSV.
//
// # Error Handling
//
// Unreadable fragments and schema mismatches are DECODE errors. A month/day
// pair that is not a real calendar date is a DATE_CONSTRUCTION error carrying
// the row index and client_id. Both abort the run.
package dataprocessing
