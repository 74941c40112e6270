package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		wantErr   bool
		errString string
	}{
		{
			name:     "valid config file",
			filePath: "testdata/valid_config.yaml",
			wantErr:  false,
		},
		{
			name:      "non-existent file",
			filePath:  "testdata/nonexistent.yaml",
			wantErr:   true,
			errString: "failed to read config file",
		},
		{
			name:      "malformed yaml",
			filePath:  "testdata/malformed.yaml",
			wantErr:   true,
			errString: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.filePath)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)

				// Verify some key fields are populated
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "job_board", cfg.Database.Database)
				assert.Equal(t, "job_board_exchange", cfg.RabbitMQ.Exchange.Name)
				assert.Equal(t, "applications_queue", cfg.RabbitMQ.Queue.Name)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, "job-board-api", cfg.App.Name)
				assert.Equal(t, 12, cfg.Board.ItemsPerPage)
				assert.Equal(t, DataSourcePostgres, cfg.Board.DataSource)
				assert.Equal(t, SessionStoreRedis, cfg.Auth.SessionStore)
				assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, 10, cfg.Board.ItemsPerPage)
	assert.Equal(t, 2, cfg.Board.PageDelta)
	assert.Equal(t, DataSourcePostgres, cfg.Board.DataSource)
	assert.Equal(t, 30*time.Minute, cfg.Board.BrowseSessionTTL)
	assert.Equal(t, SessionStoreMemory, cfg.Auth.SessionStore)
	assert.Equal(t, 6, cfg.Auth.MinPasswordLength)
	assert.Equal(t, "session", cfg.Auth.KeyPrefix)

	cfg.Board.ItemsPerPage = 25
	cfg.ApplyDefaults()
	assert.Equal(t, 25, cfg.Board.ItemsPerPage, "explicit values are kept")
}

func validAPIConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{Port: 8080},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "job_board",
		},
		RabbitMQ: RabbitMQConfig{
			Host:     "localhost",
			Port:     5672,
			Exchange: ExchangeConfig{Name: "job_board_exchange"},
			Queue:    QueueConfig{Name: "applications_queue"},
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Board: BoardConfig{DataSource: DataSourcePostgres},
		Auth:  AuthConfig{SessionStore: SessionStoreRedis},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantErr   bool
		errString string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:      "invalid server port - too low",
			mutate:    func(c *Config) { c.Server.Port = 0 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "invalid server port - too high",
			mutate:    func(c *Config) { c.Server.Port = 70000 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "empty database host",
			mutate:    func(c *Config) { c.Database.Host = "" },
			wantErr:   true,
			errString: "database host is required",
		},
		{
			name:      "empty database name",
			mutate:    func(c *Config) { c.Database.Database = "" },
			wantErr:   true,
			errString: "database name is required",
		},
		{
			name:      "empty rabbitmq host",
			mutate:    func(c *Config) { c.RabbitMQ.Host = "" },
			wantErr:   true,
			errString: "rabbitmq host is required",
		},
		{
			name:      "empty exchange name",
			mutate:    func(c *Config) { c.RabbitMQ.Exchange.Name = "" },
			wantErr:   true,
			errString: "rabbitmq exchange name is required",
		},
		{
			name:      "empty queue name",
			mutate:    func(c *Config) { c.RabbitMQ.Queue.Name = "" },
			wantErr:   true,
			errString: "rabbitmq queue name is required",
		},
		{
			name: "memory data source needs no database or broker",
			mutate: func(c *Config) {
				c.Board.DataSource = DataSourceMemory
				c.Database = DatabaseConfig{}
				c.RabbitMQ = RabbitMQConfig{}
			},
		},
		{
			name:      "unknown data source",
			mutate:    func(c *Config) { c.Board.DataSource = "mongo" },
			wantErr:   true,
			errString: "invalid board data_source",
		},
		{
			name:      "redis session store needs an address",
			mutate:    func(c *Config) { c.Redis.Addr = "" },
			wantErr:   true,
			errString: "redis addr is required",
		},
		{
			name: "memory session store needs no redis",
			mutate: func(c *Config) {
				c.Auth.SessionStore = SessionStoreMemory
				c.Redis.Addr = ""
			},
		},
		{
			name:      "unknown session store",
			mutate:    func(c *Config) { c.Auth.SessionStore = "cookie" },
			wantErr:   true,
			errString: "invalid auth session_store",
		},
		{
			name:      "negative items per page",
			mutate:    func(c *Config) { c.Board.ItemsPerPage = -1 },
			wantErr:   true,
			errString: "items_per_page",
		},
		{
			name:      "negative page delta",
			mutate:    func(c *Config) { c.Board.PageDelta = -2 },
			wantErr:   true,
			errString: "page_delta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAPIConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateWorkerConfig(t *testing.T) {
	valid := func() *Config {
		cfg := validAPIConfig()
		cfg.Worker = WorkerConfig{
			Concurrency:     4,
			MaxJobs:         100,
			JobTimeout:      30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		}
		return cfg
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		errString string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "zero concurrency", mutate: func(c *Config) { c.Worker.Concurrency = 0 }, errString: "worker concurrency"},
		{name: "zero max jobs", mutate: func(c *Config) { c.Worker.MaxJobs = 0 }, errString: "worker max_jobs"},
		{name: "zero job timeout", mutate: func(c *Config) { c.Worker.JobTimeout = 0 }, errString: "worker job_timeout"},
		{name: "worker always needs the database", mutate: func(c *Config) { c.Board.DataSource = DataSourceMemory; c.Database.Host = "" }, errString: "database host is required"},
		{name: "worker always needs the broker", mutate: func(c *Config) { c.RabbitMQ.Queue.Name = "" }, errString: "rabbitmq queue name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.ValidateWorkerConfig()

			if tt.errString == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errString)
		})
	}
}

func TestLoad_ValidateIntegration(t *testing.T) {
	t.Run("load and validate valid config", func(t *testing.T) {
		cfg, err := Load("testdata/valid_config.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.Validate()
		require.NoError(t, err)
	})

	t.Run("load config with invalid port", func(t *testing.T) {
		cfg, err := Load("testdata/invalid_port.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid server port")
	})

	t.Run("load config with missing database", func(t *testing.T) {
		cfg, err := Load("testdata/missing_database.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database name is required")
	})

	t.Run("memory mode needs only the server section", func(t *testing.T) {
		cfg, err := Load("testdata/memory.yaml")
		require.NoError(t, err)

		require.NoError(t, cfg.Validate())
		assert.Equal(t, DataSourceMemory, cfg.Board.DataSource)
		assert.Equal(t, SessionStoreMemory, cfg.Auth.SessionStore)
	})
}

func TestPortConstants(t *testing.T) {
	assert.Equal(t, 1, MinPort)
	assert.Equal(t, 65535, MaxPort)
}
