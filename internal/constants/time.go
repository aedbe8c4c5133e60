package constants

const (
	// DateFormat is the wire date format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the short time format (HH:MM)
	TimeFormat = "15:04"

	// WireTimeFormat is the wire time format (HH:MM:SS)
	WireTimeFormat = "15:04:05"

	// DisplayDateFormat is the display date format (DD/MM/YYYY)
	DisplayDateFormat = "02/01/2006"

	// DisplayFormat is the combined display format (DD/MM/YYYY HH:MM)
	DisplayFormat = "02/01/2006 15:04"

	// MonthFormat is used to select a calendar month (YYYY-MM)
	MonthFormat = "2006-01"
)
