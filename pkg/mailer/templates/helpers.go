package templates

// NewWelcomeData builds the data map for the welcome template.
func NewWelcomeData(companyName, appURL, firstName, email string) map[string]any {
	return map[string]any{
		"Name":        firstName,
		"Email":       email,
		"CompanyName": companyName,
		"AppURL":      appURL,
	}
}
