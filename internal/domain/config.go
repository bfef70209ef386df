package domain

// Config mirrors ~/.iotguard/config.yaml.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	Advisor             AdvisorSettings    `yaml:"advisor"`
	Analyzer            AnalyzerSettings   `yaml:"analyzer"`
	Classifier          ClassifierSettings `yaml:"classifier"`
	Matcher             MatcherSettings    `yaml:"matcher"`
	Storage             StorageSettings    `yaml:"storage"`
}

// AdvisorSettings bound the orchestrator's waiting and bookkeeping.
type AdvisorSettings struct {
	TimeoutSeconds int    `yaml:"timeout"`
	MaxWorkers     int    `yaml:"max_workers"`
	HistoryLimit   int    `yaml:"history_limit"`
	DefaultRule    string `yaml:"default_rule"`
}

// AnalyzerSettings select and configure the external analyzer.
type AnalyzerSettings struct {
	// Mode picks the analysis path: "gemini" (external LLM) or "local"
	// (classifier + catalog similarity).
	Mode       string `yaml:"mode"`
	Model      string `yaml:"model"`
	Endpoint   string `yaml:"endpoint"`
	AuthEnvVar string `yaml:"auth_env_var"`
	MaxRetries int    `yaml:"max_retries"`
}

// ClassifierSettings configure the binary safe/risky pre-filter.
type ClassifierSettings struct {
	// Endpoint of the served fine-tuned sequence classifier. Empty selects
	// the built-in lexical fallback.
	Endpoint string `yaml:"endpoint"`
}

// MatcherSettings configure catalog similarity matching.
type MatcherSettings struct {
	Threshold   float64 `yaml:"threshold"`
	CatalogFile string  `yaml:"catalog_file"`
}

// StorageSettings locate the persistent stores.
type StorageSettings struct {
	UsersDB     string `yaml:"users_db"`
	HistoryFile string `yaml:"history_file"`
}

// Analyzer mode constants.
const (
	AnalyzerModeGemini = "gemini"
	AnalyzerModeLocal  = "local"
)
