package model

// Transport represents the communication transport method for the MCP server
type Transport uint8

const (
	// UndefinedTransport is the zero value, rejected at server construction
	UndefinedTransport Transport = iota
	// StdioTransport communicates over stdin/stdout
	StdioTransport
	// HTTPWithSSETransport communicates over streamable HTTP
	HTTPWithSSETransport
)

// ParseTransport converts a string to a Transport type
func ParseTransport(transport string) (Transport, error) {
	switch transport {
	case "stdio":
		return StdioTransport, nil
	case "http-with-sse":
		return HTTPWithSSETransport, nil
	default:
		return UndefinedTransport, NewFeedlyError(ErrorTypeTransport, "invalid transport: "+transport)
	}
}

// String returns the string representation of a Transport
func (t Transport) String() string {
	switch t {
	case StdioTransport:
		return "stdio"
	case HTTPWithSSETransport:
		return "http-with-sse"
	default:
		return "undefined"
	}
}
