package rowlog

import "fmt"

// HeaderPolicy controls when a header line precedes data lines
type HeaderPolicy int

const (
	// HeaderOnce emits a header at most once per sink lifetime: for the
	// file sink, once per file (decided by file presence); for the
	// console sink, once per writer session.
	HeaderOnce HeaderPolicy = iota

	// HeaderAlways emits a header before every data line, on every sink
	HeaderAlways

	// HeaderNever suppresses headers entirely
	HeaderNever
)

// String returns the string representation of the policy
func (p HeaderPolicy) String() string {
	switch p {
	case HeaderOnce:
		return "once"
	case HeaderAlways:
		return "always"
	case HeaderNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseHeaderPolicy converts a string to a HeaderPolicy
func ParseHeaderPolicy(s string) (HeaderPolicy, error) {
	switch s {
	case "once":
		return HeaderOnce, nil
	case "always":
		return HeaderAlways, nil
	case "never":
		return HeaderNever, nil
	default:
		return 0, fmt.Errorf("unknown header policy %q", s)
	}
}

// Destination selects which sinks receive output
type Destination int

const (
	// DestFileOnly writes to the configured file, nothing else
	DestFileOnly Destination = iota

	// DestConsoleOnly writes to the console stream, nothing else
	DestConsoleOnly

	// DestBoth writes to the file first, then the console, each call
	DestBoth
)

// String returns the string representation of the destination
func (d Destination) String() string {
	switch d {
	case DestFileOnly:
		return "file"
	case DestConsoleOnly:
		return "console"
	case DestBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseDestination converts a string to a Destination
func ParseDestination(s string) (Destination, error) {
	switch s {
	case "file":
		return DestFileOnly, nil
	case "console":
		return DestConsoleOnly, nil
	case "both":
		return DestBoth, nil
	default:
		return 0, fmt.Errorf("unknown destination %q", s)
	}
}

func (d Destination) includesFile() bool {
	return d == DestFileOnly || d == DestBoth
}

func (d Destination) includesConsole() bool {
	return d == DestConsoleOnly || d == DestBoth
}
