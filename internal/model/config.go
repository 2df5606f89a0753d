package model

// Config is the user's t4f configuration.
// Stored at ~/.config/t4f/config.toml
// Schema changes require a version bump, see internal/version/version.go.
type Config struct {
	T4FSchema string         `toml:"t4f_schema" json:"t4f_schema"`
	Server    ServerConfig   `toml:"server" json:"server"`
	Log       LogConfig      `toml:"log" json:"log"`
	Defaults  DefaultsConfig `toml:"defaults" json:"defaults"`
}

// ServerConfig holds settings for `t4f serve`.
type ServerConfig struct {
	Host string `toml:"host" json:"host"`
	Port int    `toml:"port" json:"port"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level" json:"level"` // trace, debug, info, warn, error
	Pretty bool   `toml:"pretty" json:"pretty"`
}

// DefaultsConfig supplies parameters a request leaves unset.
type DefaultsConfig struct {
	IntegerMin        int64   `toml:"integer_min" json:"integer_min"`
	IntegerMax        int64   `toml:"integer_max" json:"integer_max"`
	FloatMin          float64 `toml:"float_min" json:"float_min"`
	FloatMax          float64 `toml:"float_max" json:"float_max"`
	Precision         int     `toml:"precision" json:"precision"`
	PrimeMin          int64   `toml:"prime_min" json:"prime_min"`
	PrimeMax          int64   `toml:"prime_max" json:"prime_max"`
	HexLength         int     `toml:"hex_length" json:"hex_length"`
	Base64Bytes       int     `toml:"base64_bytes" json:"base64_bytes"`
	PasswordLength    int     `toml:"password_length" json:"password_length"`
	PasswordCharset   string  `toml:"password_charset" json:"password_charset"`
	Country           string  `toml:"country" json:"country"`
	MACSeparator      string  `toml:"mac_separator" json:"mac_separator"`
	Coin              string  `toml:"coin" json:"coin"`
	EmailDomain       string  `toml:"email_domain,omitempty" json:"email_domain,omitempty"`
	HtpasswdAlgorithm string  `toml:"htpasswd_algorithm" json:"htpasswd_algorithm"`
	IDKind            string  `toml:"id_kind" json:"id_kind"`
	DateFrom          string  `toml:"date_from" json:"date_from"`
	DateTo            string  `toml:"date_to" json:"date_to"`
}

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 5260
)

// DefaultConfig returns the configuration used when no config file exists.
// T4FSchema is left empty; the store stamps it on save.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: DefaultHost, Port: DefaultPort},
		Log:    LogConfig{Level: "info"},
		Defaults: DefaultsConfig{
			IntegerMin:        1,
			IntegerMax:        100,
			FloatMin:          0,
			FloatMax:          1,
			Precision:         2,
			PrimeMin:          1,
			PrimeMax:          1000,
			HexLength:         32,
			Base64Bytes:       32,
			PasswordLength:    16,
			PasswordCharset:   "luds",
			Country:           "US",
			MACSeparator:      ":",
			Coin:              "bitcoin",
			HtpasswdAlgorithm: "bcrypt",
			IDKind:            "ulid",
			DateFrom:          "1970-01-01",
			DateTo:            "2037-12-31",
		},
	}
}

// FillDefaults replaces zero-valued fields with DefaultConfig values so a
// partial config file still yields usable settings.
func (c *Config) FillDefaults() {
	def := DefaultConfig()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}

	d, dd := &c.Defaults, def.Defaults
	if d.IntegerMin == 0 && d.IntegerMax == 0 {
		d.IntegerMin, d.IntegerMax = dd.IntegerMin, dd.IntegerMax
	}
	if d.FloatMin == 0 && d.FloatMax == 0 {
		d.FloatMin, d.FloatMax = dd.FloatMin, dd.FloatMax
	}
	if d.PrimeMin == 0 && d.PrimeMax == 0 {
		d.PrimeMin, d.PrimeMax = dd.PrimeMin, dd.PrimeMax
	}
	fillInt(&d.HexLength, dd.HexLength)
	fillInt(&d.Base64Bytes, dd.Base64Bytes)
	fillInt(&d.PasswordLength, dd.PasswordLength)
	fillString(&d.PasswordCharset, dd.PasswordCharset)
	fillString(&d.Country, dd.Country)
	fillString(&d.MACSeparator, dd.MACSeparator)
	fillString(&d.Coin, dd.Coin)
	fillString(&d.HtpasswdAlgorithm, dd.HtpasswdAlgorithm)
	fillString(&d.IDKind, dd.IDKind)
	fillString(&d.DateFrom, dd.DateFrom)
	fillString(&d.DateTo, dd.DateTo)
}

func fillInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func fillString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
