package config

import (
	"ingest-keeper/internal/models"

	"github.com/spf13/viper"
)

/**
 * Logging configuration
 * @property {string} level - Log level (debug/info/warn/error)
 * @property {string} path - Log file path, "console" or empty for stdout
 */
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

/**
 * Metrics configuration
 * @property {string} pushgateway - Pushgateway address, empty disables pushing
 */
type MetricsConfig struct {
	Pushgateway string `mapstructure:"pushgateway"`
}

/**
 * Container runtime invocation
 * @property {[]string} command - Compose command prefix (e.g. ["docker","compose"])
 * @property {string} file - Compose file passed with -f
 * @property {string} project - Optional compose project name
 */
type ComposeConfig struct {
	Command []string `mapstructure:"command"`
	File    string   `mapstructure:"file"`
	Project string   `mapstructure:"project"`
}

type EndpointsConfig struct {
	API    string `mapstructure:"api"`
	Qdrant string `mapstructure:"qdrant"`
	Ollama string `mapstructure:"ollama"`
}

/**
 * Bounded readiness gate for the API backend
 * @property {int} max_attempts - Upper bound on poll attempts
 * @property {int} interval_seconds - Sleep between attempts
 * @property {int} tail_lines - Aggregate log lines dumped when the gate times out
 */
type HealthConfig struct {
	MaxAttempts     int `mapstructure:"max_attempts"`
	IntervalSeconds int `mapstructure:"interval_seconds"`
	TailLines       int `mapstructure:"tail_lines"`
}

/**
 * Tiered startup behaviour
 * @property {string} barrier - Barrier between tiers: "poll" or "settle"
 * @property {int} settle_seconds - Fixed delay used by the settle barrier and restart
 * @property {int} tier_max_attempts - Per-service probe attempts for the poll barrier
 * @property {int} tier_interval_seconds - Probe interval for the poll barrier
 */
type OrchestratorConfig struct {
	Barrier             string `mapstructure:"barrier"`
	SettleSeconds       int    `mapstructure:"settle_seconds"`
	TierMaxAttempts     int    `mapstructure:"tier_max_attempts"`
	TierIntervalSeconds int    `mapstructure:"tier_interval_seconds"`
}

/**
 * Tuned-model provisioning
 * @property {string} model - Model identifier looked up in the engine catalog
 * @property {string} modelfile - Host path of the Modelfile recipe
 * @property {string} engine - Compose service running the inference engine
 * @property {string} remote_path - Path the recipe is copied to inside the engine
 * @property {int} settle_seconds - Delay after starting the engine before querying it
 */
type ProvisionConfig struct {
	Model         string `mapstructure:"model"`
	Modelfile     string `mapstructure:"modelfile"`
	Engine        string `mapstructure:"engine"`
	RemotePath    string `mapstructure:"remote_path"`
	SettleSeconds int    `mapstructure:"settle_seconds"`
}

type PreflightConfig struct {
	Dirs  []string `mapstructure:"dirs"`
	Files []string `mapstructure:"files"`
}

type TestConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

type AppConfig struct {
	Log          LogConfig                     `mapstructure:"log"`
	Metrics      MetricsConfig                 `mapstructure:"metrics"`
	Compose      ComposeConfig                 `mapstructure:"compose"`
	Endpoints    EndpointsConfig               `mapstructure:"endpoints"`
	Health       HealthConfig                  `mapstructure:"health"`
	Orchestrator OrchestratorConfig            `mapstructure:"orchestrator"`
	Provision    ProvisionConfig               `mapstructure:"provision"`
	Preflight    PreflightConfig               `mapstructure:"preflight"`
	Test         TestConfig                    `mapstructure:"test"`
	Services     []models.ServiceSpecification `mapstructure:"services"`
}

/**
 * Load application configuration from YAML file
 */
func LoadConfig() (*AppConfig, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var Config AppConfig

// collectConfig fills in everything the stack needs to run without a config
// file: the topology and endpoints of the default ingestion deployment.
func collectConfig(cfg *AppConfig) *AppConfig {
	if len(cfg.Compose.Command) == 0 {
		cfg.Compose.Command = []string{"docker", "compose"}
	}
	if cfg.Compose.File == "" {
		cfg.Compose.File = "docker-compose.yml"
	}
	if cfg.Endpoints.API == "" {
		cfg.Endpoints.API = "http://localhost:8000"
	}
	if cfg.Endpoints.Qdrant == "" {
		cfg.Endpoints.Qdrant = "http://localhost:6333"
	}
	if cfg.Endpoints.Ollama == "" {
		cfg.Endpoints.Ollama = "http://localhost:11434"
	}
	if cfg.Health.MaxAttempts == 0 {
		cfg.Health.MaxAttempts = 30
	}
	if cfg.Health.IntervalSeconds == 0 {
		cfg.Health.IntervalSeconds = 2
	}
	if cfg.Health.TailLines == 0 {
		cfg.Health.TailLines = 50
	}
	if cfg.Orchestrator.Barrier == "" {
		cfg.Orchestrator.Barrier = "poll"
	}
	if cfg.Orchestrator.SettleSeconds == 0 {
		cfg.Orchestrator.SettleSeconds = 10
	}
	if cfg.Orchestrator.TierMaxAttempts == 0 {
		cfg.Orchestrator.TierMaxAttempts = 15
	}
	if cfg.Orchestrator.TierIntervalSeconds == 0 {
		cfg.Orchestrator.TierIntervalSeconds = 2
	}
	if cfg.Provision.Model == "" {
		cfg.Provision.Model = "codellama-q"
	}
	if cfg.Provision.Modelfile == "" {
		cfg.Provision.Modelfile = "ollama/Modelfile"
	}
	if cfg.Provision.Engine == "" {
		cfg.Provision.Engine = "ollama"
	}
	if cfg.Provision.RemotePath == "" {
		cfg.Provision.RemotePath = "/tmp/Modelfile"
	}
	if cfg.Provision.SettleSeconds == 0 {
		cfg.Provision.SettleSeconds = 10
	}
	if len(cfg.Preflight.Dirs) == 0 {
		cfg.Preflight.Dirs = []string{"backend", "backend/models", "backend/utils", "tests"}
	}
	if len(cfg.Preflight.Files) == 0 {
		cfg.Preflight.Files = []string{"docker-compose.yml", "backend/main.py", "backend/config.py"}
	}
	if cfg.Test.Command == "" {
		cfg.Test.Command = "python3"
		cfg.Test.Args = []string{"tests/test_system.py"}
	}
	if len(cfg.Services) == 0 {
		cfg.Services = defaultServices(cfg)
	}
	return cfg
}

// defaultServices is the stack topology of the ingestion deployment: the
// stores and the inference engine on tier 0, the API backend on tier 1.
func defaultServices(cfg *AppConfig) []models.ServiceSpecification {
	return []models.ServiceSpecification{
		{
			Name: "postgres",
			Tier: 0,
			Probe: models.ReadinessProbe{
				Type:    models.ProbeExec,
				Service: "postgres",
				Command: []string{"pg_isready", "-U", "user", "-d", "codebase_db"},
			},
		},
		{
			Name: "qdrant",
			Tier: 0,
			Probe: models.ReadinessProbe{
				Type: models.ProbeHTTP,
				URL:  cfg.Endpoints.Qdrant + "/collections",
			},
		},
		{
			Name: "ollama",
			Tier: 0,
			Probe: models.ReadinessProbe{
				Type: models.ProbeHTTP,
				URL:  cfg.Endpoints.Ollama + "/api/tags",
			},
		},
		{
			Name: "api",
			Tier: 1,
			Probe: models.ReadinessProbe{
				Type: models.ProbeHTTP,
				URL:  cfg.Endpoints.API + "/health",
			},
		},
	}
}

func init() {
	cfg, err := LoadConfig()
	if err == nil {
		Config = *cfg
	}
	collectConfig(&Config)
}
