package config

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

// MaxPort is the highest valid TCP port
const MaxPort = 65535
