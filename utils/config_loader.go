package utils

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	MinFrequencyHz     = 1
	MaxFrequencyHz     = 100
	DefaultFrequencyHz = 10
)

// ─── Display / export settings ──────────────────────────────────────────

type SettingsConfig struct {
	FrequencyHz  int    `yaml:"frequency_hz"`
	PressureUnit string `yaml:"pressure_unit"`
	HeightUnit   string `yaml:"height_unit"`
	SpeedUnit    string `yaml:"speed_unit"`
	Locale       string `yaml:"locale"`
	Delimiter    string `yaml:"delimiter"`
	HistoryLimit int    `yaml:"history_limit"` // 0 = unbounded
}

// Interval converts the sampling frequency into a tick interval.
func (s SettingsConfig) Interval() time.Duration {
	hz := s.FrequencyHz
	if hz <= 0 {
		hz = DefaultFrequencyHz
	}
	return time.Second / time.Duration(hz)
}

// ─── Sensor-level configs ───────────────────────────────────────────────

type SensorConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LocationConfig struct {
	Enabled        bool    `yaml:"enabled"`
	StartLatitude  float64 `yaml:"start_latitude"`
	StartLongitude float64 `yaml:"start_longitude"`
}

type BarometerConfig struct {
	Enabled      bool    `yaml:"enabled"`
	BasePressure float64 `yaml:"base_pressure_kpa"`
	ClimbRateMps float64 `yaml:"climb_rate_mps"`
}

type SensorsConfig struct {
	Acceleration SensorConfig    `yaml:"acceleration"`
	Gravity      SensorConfig    `yaml:"gravity"`
	Gyroscope    SensorConfig    `yaml:"gyroscope"`
	Magnetometer SensorConfig    `yaml:"magnetometer"`
	Attitude     SensorConfig    `yaml:"attitude"`
	Altitude     BarometerConfig `yaml:"altitude"`
	Location     LocationConfig  `yaml:"location"`
}

type SimulationConfig struct {
	Enabled         bool `yaml:"enabled"`
	DurationSeconds int  `yaml:"duration_seconds"`
}

// ─── Outer surfaces ─────────────────────────────────────────────────────

type ServerConfig struct {
	Addr              string `yaml:"addr"`
	RefreshIntervalMs int    `yaml:"refresh_interval_ms"`
}

type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
	QoS         byte   `yaml:"qos"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // appended to; stdout is always written
}

type StorageConfig struct {
	ExportDir     string `yaml:"export_dir"` // empty = OS temp dir
	SessionPrefix string `yaml:"session_prefix"`
	BufferSizeKB  int    `yaml:"buffer_size_kb"`
}

// Config is the top-level structure for app.yaml.
type Config struct {
	Settings   SettingsConfig   `yaml:"settings"`
	Sensors    SensorsConfig    `yaml:"sensors"`
	Simulation SimulationConfig `yaml:"simulation"`
	Server     ServerConfig     `yaml:"server"`
	MQTT       MQTTConfig       `yaml:"mqtt"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadConfig reads and parses app.yaml, then fills in defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML bytes and applies defaults.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills zero values and clamps the frequency into the range
// the settings screen allows.
func (c *Config) ApplyDefaults() {
	s := &c.Settings
	switch {
	case s.FrequencyHz == 0:
		s.FrequencyHz = DefaultFrequencyHz
	case s.FrequencyHz < MinFrequencyHz:
		L().Warn("frequency %dHz below minimum, using %dHz", s.FrequencyHz, MinFrequencyHz)
		s.FrequencyHz = MinFrequencyHz
	case s.FrequencyHz > MaxFrequencyHz:
		L().Warn("frequency %dHz above maximum, using %dHz", s.FrequencyHz, MaxFrequencyHz)
		s.FrequencyHz = MaxFrequencyHz
	}
	if s.PressureUnit == "" {
		s.PressureUnit = "kPa"
	}
	if s.HeightUnit == "" {
		s.HeightUnit = "m"
	}
	if s.SpeedUnit == "" {
		s.SpeedUnit = "m/s"
	}
	if s.Locale == "" {
		s.Locale = "en"
	}
	if s.Delimiter == "" {
		s.Delimiter = ";"
	}
	if s.HistoryLimit < 0 {
		s.HistoryLimit = 0
	}

	if c.Sensors.Altitude.BasePressure <= 0 {
		c.Sensors.Altitude.BasePressure = 101.325
	}
	if c.Sensors.Location.StartLatitude == 0 && c.Sensors.Location.StartLongitude == 0 {
		// Simulated starting point: roughly Bengaluru, India
		c.Sensors.Location.StartLatitude = 12.9716
		c.Sensors.Location.StartLongitude = 77.5946
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.RefreshIntervalMs <= 0 {
		c.Server.RefreshIntervalMs = 250
	}

	if c.MQTT.TopicPrefix == "" {
		c.MQTT.TopicPrefix = "sensors"
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "sensor-app"
	}

	if c.Storage.SessionPrefix == "" {
		c.Storage.SessionPrefix = "sensors"
	}
	if c.Log.Level == "" {
		c.Log.Level = INFO.String()
	}
}
