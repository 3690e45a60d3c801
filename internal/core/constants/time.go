package constants

const (
	// OrderTimestampLayout is the zone-less local date-time written to the order logs.
	OrderTimestampLayout = "2006-01-02T15:04:05"

	// OrderTimestampShortLayout is accepted on read for timestamps without seconds.
	OrderTimestampShortLayout = "2006-01-02T15:04"

	// NotificationTimestampLayout prefixes every notification line.
	NotificationTimestampLayout = "2006-01-02 15:04:05"

	// DisplayTimestampLayout is used when an order is shown to a person.
	DisplayTimestampLayout = "2006-01-02 15:04"
)
