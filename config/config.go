package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB_URL     string `mapstructure:"DB_URL"`
	ListenAddr string `mapstructure:"LISTEN_ADDR"`
	AgentName  string `mapstructure:"AGENT_NAME"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	HouseWalletAddress string `mapstructure:"HOUSE_WALLET_ADDRESS"`
	RPCEndpoints       string `mapstructure:"RPC_ENDPOINTS"`
	RPCTimeoutSeconds  int    `mapstructure:"RPC_TIMEOUT_SECONDS"`

	RoundDurationSeconds   int `mapstructure:"ROUND_DURATION_SECONDS"`
	WaitingDurationSeconds int `mapstructure:"WAITING_DURATION_SECONDS"`
	ResultDurationSeconds  int `mapstructure:"RESULT_DURATION_SECONDS"`
	LateWindowSeconds      int `mapstructure:"LATE_WINDOW_SECONDS"`

	BaseTax float64 `mapstructure:"BASE_TAX"`
	MaxTax  float64 `mapstructure:"MAX_TAX"`

	MinBet             float64 `mapstructure:"MIN_BET"`
	MaxBet             float64 `mapstructure:"MAX_BET"`
	WhaleThreshold     float64 `mapstructure:"WHALE_THRESHOLD"`
	JackpotSeed        float64 `mapstructure:"JACKPOT_SEED"`
	UncontestedEpsilon float64 `mapstructure:"UNCONTESTED_EPSILON"`

	SimBettorCount int `mapstructure:"SIM_BETTOR_COUNT"`
}

func LoadConfig(path string) (config Config, err error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return config, fmt.Errorf("failed to resolve config path: %w", err)
	}

	viper.AddConfigPath(filepath.Dir(absPath))
	viper.SetConfigName(filepath.Base(absPath))
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}

	if err := viper.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("LISTEN_ADDR", ":8080")
	viper.SetDefault("AGENT_NAME", "agent-1")
	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("RPC_TIMEOUT_SECONDS", 8)
	viper.SetDefault("ROUND_DURATION_SECONDS", 60)
	viper.SetDefault("WAITING_DURATION_SECONDS", 5)
	viper.SetDefault("RESULT_DURATION_SECONDS", 8)
	viper.SetDefault("LATE_WINDOW_SECONDS", 20)
	viper.SetDefault("BASE_TAX", 0.05)
	viper.SetDefault("MAX_TAX", 0.50)
	viper.SetDefault("MIN_BET", 0.1)
	viper.SetDefault("MAX_BET", 2.0)
	viper.SetDefault("WHALE_THRESHOLD", 5.0)
	viper.SetDefault("JACKPOT_SEED", 0.0)
	viper.SetDefault("UNCONTESTED_EPSILON", 0.001)
	viper.SetDefault("SIM_BETTOR_COUNT", 0)
}

func (c Config) RoundDuration() time.Duration {
	return time.Duration(c.RoundDurationSeconds) * time.Second
}

func (c Config) WaitingDuration() time.Duration {
	return time.Duration(c.WaitingDurationSeconds) * time.Second
}

func (c Config) ResultDuration() time.Duration {
	return time.Duration(c.ResultDurationSeconds) * time.Second
}

func (c Config) LateWindow() time.Duration {
	return time.Duration(c.LateWindowSeconds) * time.Second
}

func (c Config) RPCTimeout() time.Duration {
	return time.Duration(c.RPCTimeoutSeconds) * time.Second
}

func (c Config) RPCEndpointList() []string {
	var endpoints []string
	for _, e := range strings.Split(c.RPCEndpoints, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			endpoints = append(endpoints, e)
		}
	}
	return endpoints
}
