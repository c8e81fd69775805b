package settings

type Config struct {
	Logger Logger `mapstructure:"logger"`
	Server Server `mapstructure:"server"`
	Soak   Soak   `mapstructure:"soak"`
}

// Server is the configuration for the stats server
type Server struct {
	Mode string `mapstructure:"mode" validate:"omitempty,oneof=debug release test"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"gte=0,lte=65535"` // 0 disables the server
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" validate:"gte=0"`  // Days
	MaxSize     int    `mapstructure:"max_size" validate:"gte=0"` // Megabytes
	Compress    bool   `mapstructure:"compress"`
}

// Soak is the configuration for the queue stress harness
type Soak struct {
	Producers        int `mapstructure:"producers" validate:"gte=1"`
	Consumers        int `mapstructure:"consumers" validate:"gte=1"`
	NowaitConsumers  int `mapstructure:"nowait_consumers" validate:"gte=0,ltefield=Consumers"`
	ItemsPerProducer int `mapstructure:"items_per_producer" validate:"gte=1,lte=4294967295"` // Sequence numbers must fit in 32 bits
	Keys             int `mapstructure:"keys" validate:"gte=1"`
	SweepInterval    int `mapstructure:"sweep_interval" validate:"gte=-1"`                   // Milliseconds, -1 disables the sweeper, 0 means default
	StaleAfter       int `mapstructure:"stale_after" validate:"gte=0"`                       // Milliseconds, 0 means default
	Timeout          int `mapstructure:"timeout" validate:"gte=1"`                           // Seconds
}
