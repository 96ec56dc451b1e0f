package config

import (
	"strings"

	"NFTMarketEngine/src/logger"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Api            Api               `toml:"api" mapstructure:"api" json:"api"`
	ProjectCfg     *ProjectCfg       `toml:"project_cfg" mapstructure:"project_cfg" json:"project_cfg"`
	Log            logger.Conf       `toml:"log" mapstructure:"log" json:"log"`
	DB             DB                `toml:"db" mapstructure:"db" json:"db"`
	Kv             *KvConfig         `toml:"kv" mapstructure:"kv" json:"kv"`
	Market         Market            `toml:"market" mapstructure:"market" json:"market"`
	ChainSupported []*ChainSupported `toml:"chain_supported" mapstructure:"chain_supported" json:"chain_supported"`
}

type Api struct {
	Port   string `toml:"port" mapstructure:"port" json:"port"`
	MaxNum int64  `toml:"max_num" mapstructure:"max_num" json:"max_num"`
}

type ProjectCfg struct {
	Name string `toml:"name" mapstructure:"name" json:"name"`
}

type DB struct {
	Dsn          string `toml:"dsn" mapstructure:"dsn" json:"dsn"`
	MaxIdleConns int    `toml:"max_idle_conns" mapstructure:"max_idle_conns" json:"max_idle_conns"`
	MaxOpenConns int    `toml:"max_open_conns" mapstructure:"max_open_conns" json:"max_open_conns"`
}

type KvConfig struct {
	Redis []*Redis `toml:"redis" mapstructure:"redis" json:"redis"`
}

type Redis struct {
	MasterName string `toml:"master_name" mapstructure:"master_name" json:"master_name"`
	Host       string `toml:"host" json:"host"`
	Type       string `toml:"type" json:"type"`
	Pass       string `toml:"pass" json:"pass"`
}

// Market fixes the one-time marketplace setup: owner, treasury and the
// default tax rates in basis points. Applied exactly once on first boot.
type Market struct {
	Owner         string `toml:"owner" mapstructure:"owner" json:"owner"`
	Treasury      string `toml:"treasury" mapstructure:"treasury" json:"treasury"`
	DefaultSellBp int64  `toml:"default_sell_bp" mapstructure:"default_sell_bp" json:"default_sell_bp"`
	DefaultBuyBp  int64  `toml:"default_buy_bp" mapstructure:"default_buy_bp" json:"default_buy_bp"`
}

type ChainSupported struct {
	Name     string `toml:"name" mapstructure:"name" json:"name"`
	ChainId  int    `toml:"chain_id" mapstructure:"chain_id" json:"chain_id"`
	Endpoint string `toml:"endpoint" mapstructure:"endpoint" json:"endpoint"`
	// OperatorKey signs the custody transfers the engine initiates.
	OperatorKey string `toml:"operator_key" mapstructure:"operator_key" json:"operator_key"`
}

func UnmarshalConfig(configFilePath string) (*Config, error) {
	viper.SetConfigFile(configFilePath)
	viper.SetConfigType("toml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("NFTM")
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}
	config := DefaultConfig()
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func DefaultConfig() *Config {
	return &Config{
		Market: Market{
			DefaultSellBp: 25,
			DefaultBuyBp:  25,
		},
	}
}

func (c *Config) Validate() error {
	if c.Market.Treasury == "" {
		return errors.New("market.treasury is required")
	}
	if c.Market.Owner == "" {
		return errors.New("market.owner is required")
	}
	return nil
}
