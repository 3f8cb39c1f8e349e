package gateway

import (
	"time"

	"github.com/reconnectedcc/kromer/core"
)

// DetailedMOTD is the server metadata block carried by the hello frame.
type DetailedMOTD struct {
	ServerTime string `json:"server_time"`

	MOTD    string  `json:"motd"`
	MOTDSet *string `json:"motd_set,omitempty"`

	PublicURL   string `json:"public_url"`
	PublicWsURL string `json:"public_ws_url"`

	MiningEnabled       bool `json:"mining_enabled"`
	TransactionsEnabled bool `json:"transactions_enabled"`
	DebugMode           bool `json:"debug_mode"`

	Work      int         `json:"work"`
	LastBlock *core.Block `json:"last_block"`

	Package   PackageInfo  `json:"package"`
	Constants Constants    `json:"constants"`
	Currency  CurrencyInfo `json:"currency"`

	Notice string `json:"notice"`
}

// PackageInfo describes the server build
type PackageInfo struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Author     string `json:"author"`
	License    string `json:"license"`
	Repository string `json:"repository"`
}

// Constants are the protocol-level limits clients may rely on
type Constants struct {
	WalletVersion   int     `json:"wallet_version"`
	NonceMaxSize    int     `json:"nonce_max_size"`
	NameCost        int     `json:"name_cost"`
	MinWork         int     `json:"min_work"`
	MaxWork         int     `json:"max_work"`
	WorkFactor      float64 `json:"work_factor"`
	SecondsPerBlock int     `json:"seconds_per_block"`
}

// CurrencyInfo names the currency this instance serves
type CurrencyInfo struct {
	AddressPrefix  string `json:"address_prefix"`
	NameSuffix     string `json:"name_suffix"`
	CurrencyName   string `json:"currency_name"`
	CurrencySymbol string `json:"currency_symbol"`
}

// MOTDConfig is the deployment-specific part of the hello payload
type MOTDConfig struct {
	MOTD        string
	PublicURL   string
	PublicWsURL string
	DebugMode   bool
}

func (c MOTDConfig) detailed(now time.Time) DetailedMOTD {
	return DetailedMOTD{
		ServerTime:          core.ISOTime(now),
		MOTD:                c.MOTD,
		PublicURL:           c.PublicURL,
		PublicWsURL:         c.PublicWsURL,
		MiningEnabled:       false,
		TransactionsEnabled: true,
		DebugMode:           c.DebugMode,
		Work:                500,
		Package: PackageInfo{
			Name:       "Kromer",
			Version:    "0.2.0",
			Author:     "ReconnectedCC Team",
			License:    "GPL-3.0",
			Repository: "https://github.com/ReconnectedCC/kromer/",
		},
		Constants: Constants{
			WalletVersion:   3,
			NonceMaxSize:    500,
			NameCost:        500,
			MinWork:         50,
			MaxWork:         500,
			WorkFactor:      500,
			SecondsPerBlock: 5000,
		},
		Currency: CurrencyInfo{
			AddressPrefix:  "k",
			NameSuffix:     "kro",
			CurrencyName:   "Kromer",
			CurrencySymbol: "KRO",
		},
		Notice: "Kromer is a fork of Krist for the ReconnectedCC server",
	}
}
