package gridpath

// Version is the release reported by the CLI and the MCP server.
var Version = "0.4.0"
