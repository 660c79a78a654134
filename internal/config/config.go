// Package config resolves the settings of a repair run from defaults, an HCL
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	m "github.com/mouse-blink/gorald/internal/model"
)

// DefaultFile is the configuration file picked up from the working directory
// when no file is given explicitly.
const DefaultFile = "gorald.hcl"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GORALD_"

// Config holds the settings of one run.
type Config struct {
	Target             string       `hcl:"target,optional"`
	Workspace          string       `hcl:"workspace,optional"`
	Rules              []string     `hcl:"rules,optional"`
	OutputStrategy     string       `hcl:"output_strategy,optional"`
	Printing           string       `hcl:"printing,optional"`
	ChangedScope       string       `hcl:"changed_scope,optional"`
	MaxFilesPerSegment int          `hcl:"max_files_per_segment,optional"`
	MaxFixesPerRule    int          `hcl:"max_fixes_per_rule,optional"`
	GitRepo            string       `hcl:"git_repo,optional"`
	StatsOutputFile    string       `hcl:"stats_output_file,optional"`
	ViolationSpecs     []string     `hcl:"violation_specs,optional"`
	Exclude            []string     `hcl:"exclude,optional"`
	ScanWorkers        int          `hcl:"scan_workers,optional"`
	PatchUpload        *PatchUpload `hcl:"patch_upload,block"`
}

// PatchUpload configures mirroring of generated patches to an S3-compatible bucket.
type PatchUpload struct {
	Endpoint  string `hcl:"endpoint"`
	Bucket    string `hcl:"bucket"`
	Region    string `hcl:"region,optional"`
	AccessKey string `hcl:"access_key,optional"`
	SecretKey string `hcl:"secret_key,optional"`
	Prefix    string `hcl:"prefix,optional"`
	UseSSL    bool   `hcl:"use_ssl,optional"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Target:         ".",
		Workspace:      "gorald-workspace",
		OutputStrategy: string(m.OutputChangedOnly),
		Printing:       string(m.PrintPreserve),
		ChangedScope:   string(m.ScopeRun),
		ScanWorkers:    4,
	}
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// File is an explicit HCL file. When empty, DefaultFile is used if it exists.
	File string
	// EnvFile is a dotenv file loaded into the process environment when present.
	EnvFile string
	// LookupEnv reads environment variables; os.LookupEnv when nil.
	LookupEnv func(string) (string, bool)
}

// Load resolves the configuration: defaults, then the HCL file, then the
// environment. Command-line flags are applied on top by the caller.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	file := opts.File
	if file == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			file = DefaultFile
		}
	}

	if file != "" {
		if err := cfg.DecodeFile(file); err != nil {
			return cfg, err
		}
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// DecodeFile overlays the attributes set in an HCL file onto c.
func (c *Config) DecodeFile(path string) error {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	diags = gohcl.DecodeBody(file.Body, nil, c)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	return nil
}

// ApplyEnv overlays GORALD_* variables onto c.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)

		return v, ok && v != ""
	}

	strs := map[string]*string{
		"TARGET":            &c.Target,
		"WORKSPACE":         &c.Workspace,
		"OUTPUT_STRATEGY":   &c.OutputStrategy,
		"PRINTING":          &c.Printing,
		"CHANGED_SCOPE":     &c.ChangedScope,
		"GIT_REPO":          &c.GitRepo,
		"STATS_OUTPUT_FILE": &c.StatsOutputFile,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"MAX_FILES_PER_SEGMENT": &c.MaxFilesPerSegment,
		"MAX_FIXES_PER_RULE":    &c.MaxFixesPerRule,
		"SCAN_WORKERS":          &c.ScanWorkers,
	}
	for name, dst := range ints {
		v, ok := get(name)
		if !ok {
			continue
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s=%q: %w", EnvPrefix, name, v, err)
		}

		*dst = n
	}

	if v, ok := get("RULES"); ok {
		c.Rules = splitList(v)
	}

	if v, ok := get("EXCLUDE"); ok {
		c.Exclude = splitList(v)
	}

	return c.applyUploadEnv(get)
}

func (c *Config) applyUploadEnv(get func(string) (string, bool)) error {
	endpoint, ok := get("S3_ENDPOINT")
	if !ok && c.PatchUpload == nil {
		return nil
	}

	if c.PatchUpload == nil {
		c.PatchUpload = &PatchUpload{}
	}

	up := c.PatchUpload
	if ok {
		up.Endpoint = endpoint
	}

	for name, dst := range map[string]*string{
		"S3_BUCKET":     &up.Bucket,
		"S3_REGION":     &up.Region,
		"S3_ACCESS_KEY": &up.AccessKey,
		"S3_SECRET_KEY": &up.SecretKey,
		"S3_PREFIX":     &up.Prefix,
	} {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	if v, ok := get("S3_USE_SSL"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sS3_USE_SSL=%q: %w", EnvPrefix, v, err)
		}

		up.UseSSL = b
	}

	return nil
}

// Validate checks that the settings describe a runnable repair.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Target) == "" {
		errs = append(errs, errors.New("target is required"))
	}

	if len(c.Rules) == 0 {
		errs = append(errs, errors.New("at least one rule is required"))
	}

	if strings.TrimSpace(c.Workspace) == "" {
		errs = append(errs, errors.New("workspace is required"))
	}

	if _, err := m.ParseOutputStrategy(c.OutputStrategy); err != nil {
		errs = append(errs, err)
	}

	if _, err := m.ParsePrintingMode(c.Printing); err != nil {
		errs = append(errs, err)
	}

	if _, err := m.ParseChangedScope(c.ChangedScope); err != nil {
		errs = append(errs, err)
	}

	if c.MaxFilesPerSegment < 0 {
		errs = append(errs, fmt.Errorf("max_files_per_segment must not be negative, got %d", c.MaxFilesPerSegment))
	}

	if c.MaxFixesPerRule < 0 {
		errs = append(errs, fmt.Errorf("max_fixes_per_rule must not be negative, got %d", c.MaxFixesPerRule))
	}

	if c.PatchUpload != nil {
		if err := c.PatchUpload.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Validate checks the upload settings.
func (p PatchUpload) Validate() error {
	if strings.TrimSpace(p.Endpoint) == "" {
		return errors.New("patch_upload: endpoint is required")
	}

	if strings.TrimSpace(p.Bucket) == "" {
		return errors.New("patch_upload: bucket is required")
	}

	if strings.TrimSpace(p.AccessKey) == "" || strings.TrimSpace(p.SecretKey) == "" {
		return errors.New("patch_upload: access_key and secret_key are required")
	}

	return nil
}

func splitList(raw string) []string {
	var out []string

	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
