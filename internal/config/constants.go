package config

// Application constants
const (
	// Application Info
	AppName = "campaign-cleaner"

	// Environment
	EnvPrefix     = "CAMPAIGN"
	ConfigFileEnv = "CAMPAIGN_CONFIG_FILE"

	// Pipeline defaults
	DefaultInputDir    = "files/input/"
	DefaultOutputDir   = "files/output/"
	DefaultPattern     = "*"
	DefaultWorkers     = 4
	DefaultContactYear = 2022

	// Output file names
	ClientFileName    = "client.csv"
	CampaignFileName  = "campaign.csv"
	EconomicsFileName = "economics.csv"

	// File permissions
	DirPermissions  = 0755
	FilePermissions = 0644
)
