package models

/**
 * Managed service of the ingestion stack
 * @property {string} name - Service name (matches the compose service)
 * @property {int} tier - Startup tier, lower tiers start first
 * @property {string} container - Container name override, defaults to name
 * @property {ReadinessProbe} probe - Readiness probe used by poll barriers
 */
type ServiceSpecification struct {
	Name      string         `mapstructure:"name" json:"name"`
	Tier      int            `mapstructure:"tier" json:"tier"`
	Container string         `mapstructure:"container" json:"container,omitempty"`
	Probe     ReadinessProbe `mapstructure:"probe" json:"probe,omitempty"`
}

/**
 * Readiness probe strategy
 * @property {string} type - Probe type: http/tcp/exec/none
 * @property {string} url - Endpoint for http probes
 * @property {int} port - Local port for tcp probes
 * @property {string} service - Service the exec probe command runs inside
 * @property {[]string} command - Command executed inside the service for exec probes
 */
type ReadinessProbe struct {
	Type    string   `mapstructure:"type" json:"type"`
	URL     string   `mapstructure:"url" json:"url,omitempty"`
	Port    int      `mapstructure:"port" json:"port,omitempty"`
	Service string   `mapstructure:"service" json:"service,omitempty"`
	Command []string `mapstructure:"command" json:"command,omitempty"`
}

const (
	ProbeHTTP = "http"
	ProbeTCP  = "tcp"
	ProbeExec = "exec"
	ProbeNone = "none"
)
