package credential

// Environment values, select which provider base URL the adapter talks to
const (
	EnvSandbox    = "sandbox"
	EnvProduction = "production"
)

// IsProduction reports whether the credential targets the live environment
func (c *ProviderCredential) IsProduction() bool {
	return c.Environment == EnvProduction
}
