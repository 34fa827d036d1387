// Package env configures a device daemon from flags, environment
// variables and an optional TOML file.
package env

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/robotalks/axon/pkg/axon"
	"github.com/robotalks/axon/pkg/gpio"
)

// MemoryGPIO selects in-memory digital outputs instead of a GPIO chip.
const MemoryGPIO = "memory"

// Config provides options to setup a device.
type Config struct {
	Node           string `toml:"node"`
	GenHash        string `toml:"gen_hash"`
	OwnerPublicKey string `toml:"owner_public_key"`
	DeviceID       string `toml:"device_id"`

	// LinkURL specifies the link to the host, e.g.
	// serial:///dev/ttyUSB0?baud=9600, mqtt://host:1883/axon/, ws://host/axon.
	LinkURL string `toml:"link"`
	// GPIOChip is the GPIO character device, or "memory".
	GPIOChip string `toml:"gpio_chip"`
	// SensorURL is the MQTT broker sensors publish readings to, optional.
	SensorURL string `toml:"sensor_mqtt"`

	SettleDelay    time.Duration `toml:"settle_delay"`
	RetryInterval  time.Duration `toml:"retry_interval"`
	ReadTimeout    time.Duration `toml:"read_timeout"`
	CommandTimeout time.Duration `toml:"command_timeout"`
	ReportCommands bool          `toml:"report_commands"`
	Debug          bool          `toml:"debug"`
}

var defaultConfig = Config{
	LinkURL:       "serial:///dev/ttyUSB0",
	GPIOChip:      gpio.DefaultChip,
	SettleDelay:   axon.DefaultSettleDelay,
	RetryInterval: axon.DefaultRetryInterval,
	ReadTimeout:   axon.DefaultReadTimeout,
}

func init() {
	defaultConfig.applyEnv(os.Getenv)
}

func (c *Config) applyEnv(getenv func(string) string) {
	for name, field := range map[string]*string{
		"AXON_NODE":        &c.Node,
		"AXON_GEN_HASH":    &c.GenHash,
		"AXON_OWNER_KEY":   &c.OwnerPublicKey,
		"AXON_DEVICE_ID":   &c.DeviceID,
		"AXON_LINK":        &c.LinkURL,
		"AXON_GPIO_CHIP":   &c.GPIOChip,
		"AXON_SENSOR_MQTT": &c.SensorURL,
	} {
		if val := getenv(name); val != "" {
			*field = val
		}
	}
	if val, err := strconv.ParseBool(getenv("AXON_DEBUG")); err == nil {
		c.Debug = val
	}
}

type configFile string

func (f *configFile) String() string { return string(*f) }

func (f *configFile) Set(path string) error {
	if err := defaultConfig.LoadFile(path); err != nil {
		return err
	}
	*f = configFile(path)
	return nil
}

// SetupFlags sets command line flags.
// Flags following -config override values from the file.
func SetupFlags() {
	var file configFile
	flag.Var(&file, "config", "TOML config file.")
	flag.StringVar(&defaultConfig.Node, "node", defaultConfig.Node, "Node identifier reported in state.")
	flag.StringVar(&defaultConfig.GenHash, "gen-hash", defaultConfig.GenHash, "Generation hash reported in state.")
	flag.StringVar(&defaultConfig.OwnerPublicKey, "owner-key", defaultConfig.OwnerPublicKey, "Owner public key reported in state.")
	flag.StringVar(&defaultConfig.DeviceID, "id", defaultConfig.DeviceID, "Device ID, derived from the machine ID if empty.")
	flag.StringVar(&defaultConfig.LinkURL, "link", defaultConfig.LinkURL, "Link to the host (serial://, mqtt://, ws://).")
	flag.StringVar(&defaultConfig.GPIOChip, "gpio", defaultConfig.GPIOChip, "GPIO chip, or \"memory\".")
	flag.StringVar(&defaultConfig.SensorURL, "sensors", defaultConfig.SensorURL, "MQTT broker URL for sensor readings.")
	flag.DurationVar(&defaultConfig.SettleDelay, "settle", defaultConfig.SettleDelay, "Delay before connecting.")
	flag.DurationVar(&defaultConfig.RetryInterval, "retry", defaultConfig.RetryInterval, "Interval between connect requests.")
	flag.DurationVar(&defaultConfig.ReadTimeout, "read-timeout", defaultConfig.ReadTimeout, "Wait for a reply to a connect request.")
	flag.DurationVar(&defaultConfig.CommandTimeout, "command-timeout", defaultConfig.CommandTimeout, "Wait for a command after a connection, 0 for no limit.")
	flag.BoolVar(&defaultConfig.ReportCommands, "report", defaultConfig.ReportCommands, "Send command responses to the host.")
	flag.BoolVar(&defaultConfig.Debug, "debug", defaultConfig.Debug, "Log protocol diagnostics.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
// The device ID is derived from the machine ID when not configured.
func NewConfig() *Config {
	conf := defaultConfig
	if conf.DeviceID == "" {
		conf.DeviceID = DeviceID()
	}
	return &conf
}

// LoadFile overrides the config with values present in a TOML file.
func (c *Config) LoadFile(path string) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// State returns the identity of the device.
func (c *Config) State() axon.State {
	return axon.State{
		Node:           c.Node,
		GenHash:        c.GenHash,
		OwnerPublicKey: c.OwnerPublicKey,
		DeviceID:       c.DeviceID,
	}
}

// NewOutput creates the digital outputs.
func (c *Config) NewOutput() gpio.Writer {
	if c.GPIOChip == MemoryGPIO {
		return gpio.NewMemory()
	}
	return gpio.NewChip(c.GPIOChip)
}

// NewAxon creates the protocol engine.
func (c *Config) NewAxon(output gpio.Writer) (*axon.Axon, error) {
	if c.DeviceID == "" {
		return nil, fmt.Errorf("device id must be specified")
	}
	a := axon.New(c.State(), output)
	a.SettleDelay = c.SettleDelay
	a.RetryInterval = c.RetryInterval
	a.ReadTimeout = c.ReadTimeout
	a.CommandTimeout = c.CommandTimeout
	a.ReportCommands = c.ReportCommands
	a.Debug(c.Debug)
	return a, nil
}
