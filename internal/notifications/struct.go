package notifications

// Webhook holds the endpoint and credentials for failure alerting.
// An empty URL disables notifications entirely.
type Webhook struct {
	URL      string
	Username string
	Password string
	Verify   bool
}

// ProvisioningFailure is the payload sent when a run ends without an instance.
type ProvisioningFailure struct {
	Service     string `json:"service"`
	DisplayName string `json:"display_name"`
	Shape       string `json:"shape"`
	Region      string `json:"region"`
	Outcome     string `json:"outcome"`
	Attempts    int    `json:"attempts"`
	Message     string `json:"message"`
}
