package service

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/tools4freee/t4f/internal/entropy"
	t4ferr "github.com/tools4freee/t4f/internal/errors"
	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/internal/store"
	"github.com/tools4freee/t4f/internal/version"
)

// IssueSeverity indicates how critical an issue is.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// Issue codes for diagnostic results.
const (
	// Config file (errors)
	CodeMalformedConfig = "MALFORMED_CONFIG"
	CodeSchemaMissing   = "SCHEMA_MISSING"
	CodeSchemaInvalid   = "SCHEMA_INVALID"

	// Host (errors)
	CodeNoSecureEntropy = "NO_SECURE_ENTROPY"
	CodeGeneratorFailed = "GENERATOR_FAILED"

	// Settings (warnings)
	CodeBadDefault    = "BAD_DEFAULT"
	CodeBadLogLevel   = "BAD_LOG_LEVEL"
	CodeBadServerPort = "BAD_SERVER_PORT"
)

// Issue represents a single diagnostic finding.
type Issue struct {
	Severity  IssueSeverity `json:"severity"`
	Code      string        `json:"code"`
	Family    model.Family  `json:"family,omitempty"`
	Message   string        `json:"message"`
	Fixable   bool          `json:"fixable"`
	FixAction string        `json:"fix_action,omitempty"`
	FixError  string        `json:"fix_error,omitempty"` // Populated if fix was attempted but failed
}

// FamilyDiagnostic is the outcome of one trial generation with the configured defaults.
type FamilyDiagnostic struct {
	Name   model.Family `json:"name"`
	Sample string       `json:"sample,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// ReportSummary summarizes the diagnostic results.
type ReportSummary struct {
	Errors    int `json:"errors"`
	Warnings  int `json:"warnings"`
	Fixed     int `json:"fixed"`
	FixFailed int `json:"fix_failed,omitempty"`
}

// DiagnosticReport contains all diagnostic results.
type DiagnosticReport struct {
	ConfigPath    string             `json:"config_path"`
	ConfigExists  bool               `json:"config_exists"`
	SecureEntropy bool               `json:"secure_entropy"`
	Families      []FamilyDiagnostic `json:"families"`
	Issues        []Issue            `json:"issues"`
	Summary       ReportSummary      `json:"summary"`
}

// HasErrors returns true if there are any error-level issues.
func (r *DiagnosticReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

func (r *DiagnosticReport) summarize() {
	r.Summary.Errors, r.Summary.Warnings = 0, 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			r.Summary.Errors++
		} else {
			r.Summary.Warnings++
		}
	}
}

// DoctorService checks the config file and the host for problems that would
// make generators fail.
type DoctorService struct {
	store   store.ConfigStore
	entropy entropy.Provider
}

// NewDoctorService creates a new diagnostic service.
func NewDoctorService(configStore store.ConfigStore, p entropy.Provider) *DoctorService {
	return &DoctorService{store: configStore, entropy: p}
}

// Diagnose loads the config leniently and tries every family once with the
// configured defaults.
func (s *DoctorService) Diagnose() (*DiagnosticReport, error) {
	report := &DiagnosticReport{
		ConfigPath:    s.store.Path(),
		ConfigExists:  s.store.Exists(),
		SecureEntropy: s.entropy.Available(),
		Families:      []FamilyDiagnostic{},
		Issues:        []Issue{},
	}

	if !report.SecureEntropy {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			Code:     CodeNoSecureEntropy,
			Message:  "No secure random source; hex, base64, uuid, password, htpasswd and id will fail",
		})
	}

	cfg, ok := s.checkConfigFile(report)
	if ok {
		s.checkSettings(report, cfg)
		s.checkFamilies(report, cfg)
	}

	report.summarize()
	return report, nil
}

// checkConfigFile returns the config to check settings against, and false
// when the file cannot be read at all.
func (s *DoctorService) checkConfigFile(report *DiagnosticReport) (*model.Config, bool) {
	raw, err := s.store.Raw()
	if errors.Is(err, os.ErrNotExist) {
		return defaultStampedConfig(), true
	}
	if err != nil {
		return nil, s.malformed(report, fmt.Sprintf("Cannot read config: %v", err))
	}

	cfg, err := store.DecodeConfig(raw, report.ConfigPath)
	if err == nil {
		return cfg, true
	}

	var schemaErr *version.SchemaVersionError
	if !errors.As(err, &schemaErr) {
		return nil, s.malformed(report, fmt.Sprintf("Invalid TOML in config: %v", err))
	}

	if schemaErr.Found == "missing" {
		report.Issues = append(report.Issues, Issue{
			Severity:  SeverityError,
			Code:      CodeSchemaMissing,
			Message:   "Config has no t4f_schema stamp",
			Fixable:   true,
			FixAction: fmt.Sprintf("Add t4f_schema = %q", version.CurrentConfigSchema()),
		})
		// Check the rest as if it were stamped.
		cfg, err := store.DecodeConfig(stampSchema(raw), report.ConfigPath)
		return cfg, err == nil
	}

	action := "Run 't4f config edit' to correct t4f_schema"
	if schemaErr.MinRequired != "" {
		action = "Upgrade t4f to " + schemaErr.MinRequired
	}
	report.Issues = append(report.Issues, Issue{
		Severity:  SeverityError,
		Code:      CodeSchemaInvalid,
		Message:   schemaErr.Error(),
		FixAction: action,
	})
	return nil, false
}

func (s *DoctorService) malformed(report *DiagnosticReport, msg string) bool {
	report.Issues = append(report.Issues, Issue{
		Severity:  SeverityError,
		Code:      CodeMalformedConfig,
		Message:   msg,
		FixAction: "Run 't4f config edit' or 't4f config init --force'",
	})
	return false
}

var knownLogLevels = []string{"trace", "debug", "info", "warn", "warning", "error", "disabled", "off"}

func (s *DoctorService) checkSettings(report *DiagnosticReport, cfg *model.Config) {
	if !lo.Contains(knownLogLevels, strings.ToLower(strings.TrimSpace(cfg.Log.Level))) {
		report.Issues = append(report.Issues, Issue{
			Severity:  SeverityWarning,
			Code:      CodeBadLogLevel,
			Message:   fmt.Sprintf("Unknown log level %q, info is used instead", cfg.Log.Level),
			Fixable:   true,
			FixAction: "Set log.level to info",
		})
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		report.Issues = append(report.Issues, Issue{
			Severity:  SeverityWarning,
			Code:      CodeBadServerPort,
			Message:   fmt.Sprintf("Server port %d is outside 1-65535", cfg.Server.Port),
			Fixable:   true,
			FixAction: fmt.Sprintf("Set server.port to %d", model.DefaultPort),
		})
	}
}

func (s *DoctorService) checkFamilies(report *DiagnosticReport, cfg *model.Config) {
	gen := NewGeneratorService(s.entropy, cfg.Defaults)

	for _, info := range gen.Families() {
		req := &model.GenerationRequest{Family: info.Name}
		if info.Name == model.FamilyHtpasswd {
			req.Username, req.Password = "doctor", "doctor"
		}

		diag := FamilyDiagnostic{Name: info.Name}
		value, err := gen.Generate(req)
		if err == nil {
			diag.Sample = value.Value
			report.Families = append(report.Families, diag)
			continue
		}
		diag.Error = err.Error()
		report.Families = append(report.Families, diag)

		if t4ferr.IsEntropyUnavailable(err) {
			continue // reported once above
		}

		if _, resettable := defaultResets[info.Name]; resettable {
			report.Issues = append(report.Issues, Issue{
				Severity:  SeverityWarning,
				Code:      CodeBadDefault,
				Family:    info.Name,
				Message:   fmt.Sprintf("Configured defaults for %s are unusable: %v", info.Name, err),
				Fixable:   true,
				FixAction: fmt.Sprintf("Reset the %s defaults", info.Name),
			})
			continue
		}
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			Code:     CodeGeneratorFailed,
			Family:   info.Name,
			Message:  fmt.Sprintf("%s failed: %v", info.Name, err),
		})
	}
}

// defaultResets restores the defaults a family reads.
var defaultResets = map[model.Family]func(d *model.DefaultsConfig, def model.DefaultsConfig){
	model.FamilyInteger: func(d *model.DefaultsConfig, def model.DefaultsConfig) {
		d.IntegerMin, d.IntegerMax = def.IntegerMin, def.IntegerMax
	},
	model.FamilyFloat: func(d *model.DefaultsConfig, def model.DefaultsConfig) {
		d.FloatMin, d.FloatMax, d.Precision = def.FloatMin, def.FloatMax, def.Precision
	},
	model.FamilyPrime: func(d *model.DefaultsConfig, def model.DefaultsConfig) {
		d.PrimeMin, d.PrimeMax = def.PrimeMin, def.PrimeMax
	},
	model.FamilyHex:      func(d *model.DefaultsConfig, def model.DefaultsConfig) { d.HexLength = def.HexLength },
	model.FamilyBase64:   func(d *model.DefaultsConfig, def model.DefaultsConfig) { d.Base64Bytes = def.Base64Bytes },
	model.FamilyAddress:  func(d *model.DefaultsConfig, def model.DefaultsConfig) { d.Country = def.Country },
	model.FamilyMAC:      func(d *model.DefaultsConfig, def model.DefaultsConfig) { d.MACSeparator = def.MACSeparator },
	model.FamilyCoin:     func(d *model.DefaultsConfig, def model.DefaultsConfig) { d.Coin = def.Coin },
	model.FamilyEmail:    func(d *model.DefaultsConfig, def model.DefaultsConfig) { d.EmailDomain = def.EmailDomain },
	model.FamilyHtpasswd: func(d *model.DefaultsConfig, def model.DefaultsConfig) { d.HtpasswdAlgorithm = def.HtpasswdAlgorithm },
	model.FamilyID:       func(d *model.DefaultsConfig, def model.DefaultsConfig) { d.IDKind = def.IDKind },
	model.FamilyPassword: func(d *model.DefaultsConfig, def model.DefaultsConfig) {
		d.PasswordLength, d.PasswordCharset = def.PasswordLength, def.PasswordCharset
	},
	model.FamilyDate: func(d *model.DefaultsConfig, def model.DefaultsConfig) {
		d.DateFrom, d.DateTo = def.DateFrom, def.DateTo
	},
}

// Fix applies automatic fixes for issues that have deterministic solutions.
// Returns a new report showing remaining issues and what was fixed.
func (s *DoctorService) Fix(report *DiagnosticReport) (*DiagnosticReport, error) {
	fixed := 0
	fixFailed := 0
	remaining := []Issue{}

	for _, issue := range report.Issues {
		if !issue.Fixable {
			remaining = append(remaining, issue)
			continue
		}

		var err error
		switch issue.Code {
		case CodeSchemaMissing:
			err = s.fixSchemaMissing()
		case CodeBadDefault:
			err = s.updateConfig(func(cfg *model.Config) {
				defaultResets[issue.Family](&cfg.Defaults, model.DefaultConfig().Defaults)
			})
		case CodeBadLogLevel:
			err = s.updateConfig(func(cfg *model.Config) { cfg.Log.Level = "info" })
		case CodeBadServerPort:
			err = s.updateConfig(func(cfg *model.Config) { cfg.Server.Port = model.DefaultPort })
		default:
			remaining = append(remaining, issue)
			continue
		}

		if err != nil {
			// If fix failed, keep the issue with error recorded
			issue.FixError = err.Error()
			remaining = append(remaining, issue)
			fixFailed++
		} else {
			fixed++
		}
	}

	newReport := *report
	newReport.Issues = remaining
	newReport.Summary = ReportSummary{Fixed: fixed, FixFailed: fixFailed}
	newReport.summarize()
	return &newReport, nil
}

func (s *DoctorService) fixSchemaMissing() error {
	raw, err := s.store.Raw()
	if err != nil {
		return err
	}
	return s.store.SaveRaw(stampSchema(raw))
}

// updateConfig loads, mutates and saves the config. A config file that is
// still missing settings is written out in full.
func (s *DoctorService) updateConfig(mutate func(cfg *model.Config)) error {
	cfg, err := s.store.Load()
	if err != nil {
		return err
	}
	mutate(cfg)
	return s.store.Save(cfg)
}

func stampSchema(raw []byte) []byte {
	return append([]byte(fmt.Sprintf("t4f_schema = %q\n", version.CurrentConfigSchema())), raw...)
}

func defaultStampedConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.T4FSchema = version.CurrentConfigSchema()
	return cfg
}
