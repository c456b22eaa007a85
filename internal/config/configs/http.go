package configs

// HTTP defines configuration for the HTTP server. The Host may be left empty
// to bind every interface; Port is sufficient for most use cases.
type HTTP struct {
	// Host is the address the HTTP server binds to. Defaults to all
	// interfaces.
	Host string `env:"HOST" envDefault:""`
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
}
