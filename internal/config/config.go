package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bmccool/aws-transfer-project/internal/secretfetcher"
)

const (
	UsernameEnv            = "SFTP_USERNAME"
	PasswordEnv            = "SFTP_PASSWORD"
	PasswordSecretARNEnv   = "SFTP_PASSWORD_SECRET_ARN"
	PasswordSecretKeyEnv   = "SFTP_PASSWORD_SECRET_KEY"
	RoleARNEnv             = "SFTP_ROLE_ARN"
	HomeDirectoryTargetEnv = "SFTP_HOME_DIRECTORY_TARGET"
	AllowedServerIDsEnv    = "SFTP_ALLOWED_SERVER_IDS"
	AllowedSourceCIDRsEnv  = "SFTP_ALLOWED_SOURCE_CIDRS"
	AccessPolicyFileEnv    = "ACCESS_POLICY_FILE"
	ListenAddrEnv          = "LISTEN_ADDR"

	DefaultListenAddr = ":8080"
)

// Config is the deployment configuration of the identity provider. It is resolved once at
// startup and never mutated afterwards.
type Config struct {
	// Credentials
	Username string
	Password string // plaintext or bcrypt hash

	// Authorization attributes returned on success
	RoleARN             string
	HomeDirectoryTarget string

	// Access policy; empty lists allow everything
	AllowedServerIDs   []string
	AllowedSourceCIDRs []string
	AccessPolicyFile   string

	// HTTP mode
	ListenAddr string
}

// Load resolves the username and password through the given fetchers concurrently, reads
// the remaining settings from the environment and validates the result.
func Load(ctx context.Context, username, password secretfetcher.Fetcher) (*Config, error) {
	cfg := &Config{
		RoleARN:             strings.TrimSpace(os.Getenv(RoleARNEnv)),
		HomeDirectoryTarget: strings.TrimSpace(os.Getenv(HomeDirectoryTargetEnv)),
		AllowedServerIDs:    getEnvSlice(AllowedServerIDsEnv),
		AccessPolicyFile:    os.Getenv(AccessPolicyFileEnv),
		ListenAddr:          getEnv(ListenAddrEnv, DefaultListenAddr),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := username.Fetch(gctx)
		if err != nil {
			return fmt.Errorf("failed to resolve username: %w", err)
		}
		cfg.Username = v
		return nil
	})
	g.Go(func() error {
		v, err := password.Fetch(gctx)
		if err != nil {
			return fmt.Errorf("failed to resolve password: %w", err)
		}
		cfg.Password = v
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	cidrs, err := normalizeCIDRs(getEnvSlice(AllowedSourceCIDRsEnv))
	if err != nil {
		return nil, err
	}
	cfg.AllowedSourceCIDRs = cidrs

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every missing or malformed setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Username == "" {
		errs = append(errs, fmt.Errorf("%s is required", UsernameEnv))
	}
	if c.Password == "" {
		errs = append(errs, fmt.Errorf("%s or %s is required", PasswordEnv, PasswordSecretARNEnv))
	}
	if !strings.HasPrefix(c.RoleARN, "arn:") {
		errs = append(errs, fmt.Errorf("%s must be an IAM role ARN", RoleARNEnv))
	}
	if !strings.HasPrefix(c.HomeDirectoryTarget, "/") {
		errs = append(errs, fmt.Errorf("%s must be an absolute path", HomeDirectoryTargetEnv))
	}

	return errors.Join(errs...)
}

// normalizeCIDRs parses each entry as a CIDR block. A bare address becomes a single-host
// block (/32 or /128).
func normalizeCIDRs(values []string) ([]string, error) {
	cidrs := make([]string, 0, len(values))
	for _, v := range values {
		if !strings.Contains(v, "/") {
			ip := net.ParseIP(v)
			if ip == nil {
				return nil, fmt.Errorf("invalid source address %q in %s", v, AllowedSourceCIDRsEnv)
			}

			bits := 128
			if ip.To4() != nil {
				bits = 32
			}
			v = fmt.Sprintf("%s/%d", ip.String(), bits)
		}

		_, ipNet, err := net.ParseCIDR(v)
		if err != nil {
			return nil, fmt.Errorf("invalid source CIDR %q in %s: %w", v, AllowedSourceCIDRsEnv, err)
		}
		cidrs = append(cidrs, ipNet.String())
	}

	return cidrs, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvSlice splits a comma separated variable, dropping blank entries.
func getEnvSlice(key string) []string {
	parts := []string{}
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
