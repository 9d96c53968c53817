package conf

var (
	BuiltAt   string = "unknown"
	GitCommit string = "unknown"
	Version   string = "dev"
)

// Conf is the loaded process configuration. Set once by Load (or by tests).
var Conf *Config
