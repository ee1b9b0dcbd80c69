package common

// RFC3339Micros is the timestamp layout used for structured log entries:
// RFC 3339 with fixed microsecond precision in UTC.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z07:00"
