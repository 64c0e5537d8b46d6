// rfi scores user engagement decay from binary daily-activity logs.
package main

// Build metadata, set via -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	Execute()
}
