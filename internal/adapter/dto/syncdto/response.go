package syncdto

// ProcessorStatusResponse reports one processor's configuration and
// reachability state
type ProcessorStatusResponse struct {
	Name         string   `json:"name"`
	ConfigValid  bool     `json:"config_valid"`
	ConfigErrors []string `json:"config_errors,omitempty"`
	Available    bool     `json:"available"`
	Message      string   `json:"message,omitempty"`
}
