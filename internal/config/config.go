package config

import (
	"github.com/caarlos0/env/v11"

	"log"
)

type Config struct {
	Ledger Ledger
	Pacing Pacing
	Relay  Relay
	Run    Run
}

type Ledger struct {
	RPCEndpoint string `env:"Ledger_RPCEndpoint" envDefault:"https://devnet.sonic.game"`
	MaxLamports int64  `env:"Ledger_MaxLamports" envDefault:"7000000"`
}

// Pacing ranges are in milliseconds. The stagger range spaces out account
// launches within a batch, the attempt range spaces out retries.
type Pacing struct {
	StaggerMinMs  int `env:"Pacing_StaggerMinMs" envDefault:"4000"`
	StaggerSpanMs int `env:"Pacing_StaggerSpanMs" envDefault:"10000"`
	AttemptMinMs  int `env:"Pacing_AttemptMinMs" envDefault:"5000"`
	AttemptSpanMs int `env:"Pacing_AttemptSpanMs" envDefault:"5000"`
}

// Relay mirrors run progress into a Redis stream when Addr is set.
type Relay struct {
	Addr      string `env:"Relay_RedisAddress"`
	Password  string `env:"Relay_RedisPassword"`
	DB        int    `env:"Relay_RedisDB"`
	StreamKey string `env:"Relay_StreamKey" envDefault:"driprun:progress"`
}

// Run holds the default thresholds; /set-config overrides them per run.
type Run struct {
	BatchSize          int    `env:"Run_BatchSize" envDefault:"25"`
	MaxTransactions    int    `env:"Run_MaxTransactionCount" envDefault:"100"`
	MaxFailures        int    `env:"Run_MaxFailureCount" envDefault:"30"`
	TerminationLogPath string `env:"Run_TerminationLogPath" envDefault:"termination_logs.txt"`
}

func Load() *Config {
	var c Config
	if err := env.Parse(&c); err != nil {
		log.Fatal(err)
	}

	return &c
}
