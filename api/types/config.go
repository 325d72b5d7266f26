package types

import "time"

type Config struct {
	Port             string
	XRPLDataAPIURL   string
	XRPLTimeout      time.Duration
	XRPLUserAgent    string
	CORSAllowOrigins string
	LogLevel         string
	ShutdownTimeout  time.Duration
}
