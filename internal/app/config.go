package app

// Constants
const (
	// Error messages
	ErrInvalidYear          = "Invalid year"
	ErrInvalidMonth         = "Invalid month"
	ErrInvalidDateFormat    = "Invalid date format"
	ErrInvalidFormat        = "Invalid format"
	ErrInvalidReminder      = "Invalid reminder"
	ErrInternalServer       = "Internal server error"
	ErrFailedToGenerateJSON = "Failed to generate JSON"
	ErrFailedToGenerateCSV  = "Failed to generate CSV"
	ErrFailedToGenerateICS  = "Failed to generate ICS"

	// ICS constants
	ICSProductID = "-//Feriados//Calendario Nacional//PT-BR"
	ICSTimezone  = "America/Sao_Paulo"
	ICSUIDDomain = "feriados"

	// Export file name prefix
	ExportPrefix = "feriados"

	// Years before and after the current one included in the subscription feed
	SubscriptionYearsBack  = 1
	SubscriptionYearsAhead = 1
)

// Export formats
const (
	FormatICS  = "ics"
	FormatCSV  = "csv"
	FormatJSON = "json"
)
