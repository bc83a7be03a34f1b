package models

// ContainerState is one row of the runtime's container listing.
type ContainerState struct {
	Name   string `json:"name"`
	State  string `json:"state"`
	Status string `json:"status"`
}

/**
 * Point-in-time snapshot of the stack
 * @property {[]ContainerState} containers - Container listing, nil when the runtime query failed
 * @property {bool} apiReachable - API /health answered 2xx
 * @property {[]string} models - Model catalog of the inference engine
 * @property {bool} modelsListed - False when the catalog query failed (models is then meaningless)
 * @property {bool} dbReady - Relational store accepts connections
 * @property {bool} vectorStoreReachable - Vector store HTTP endpoint answered
 * @description
 * - Every field is filled by its own single check, no retries
 * - One subsystem failing never prevents reporting on the others
 */
type StatusReport struct {
	Containers           []ContainerState `json:"containers"`
	APIReachable         bool             `json:"apiReachable"`
	Models               []string         `json:"models,omitempty"`
	ModelsListed         bool             `json:"modelsListed"`
	DBReady              bool             `json:"dbReady"`
	VectorStoreReachable bool             `json:"vectorStoreReachable"`
}

// ProvisionOutcome reports what the idempotent provisioner did.
type ProvisionOutcome string

const (
	ProvisionCreated       ProvisionOutcome = "created"
	ProvisionAlreadyExists ProvisionOutcome = "already-exists"
)
