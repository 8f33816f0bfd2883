//go:build casbin

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	_ "github.com/go-sql-driver/mysql"

	"github.com/bmccool/aws-transfer-project/internal/config"
	"github.com/bmccool/aws-transfer-project/internal/decisionmaker/casbin"
	"github.com/bmccool/aws-transfer-project/internal/enforcer"
)

const (
	MysqlUserEnv = "MYSQL_USER"
	MysqlPassEnv = "MYSQL_PASSWORD"
	MysqlHostEnv = "MYSQL_HOST"
	MysqlPortEnv = "MYSQL_PORT"
)

// getMysqlDSN constructs a MySQL Data Source Name (DSN) from environment variables and returns it as a string.
func getMysqlDSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/",
		os.Getenv(MysqlUserEnv),
		os.Getenv(MysqlPassEnv),
		os.Getenv(MysqlHostEnv),
		os.Getenv(MysqlPortEnv),
	)
}

// newPolicyRetriever connects to MySQL and replaces the stored policies of the configured
// user with the ones derived from the current configuration.
func newPolicyRetriever(cfg *config.Config) (*gormadapter.Adapter, error) {
	a, err := gormadapter.NewAdapter("mysql", getMysqlDSN())
	if err != nil {
		return nil, err
	}

	if err := a.RemoveFilteredPolicy("p", "p", 0, cfg.Username); err != nil {
		return nil, err
	}

	if err := a.AddPolicies("p", "p", casbin.PolicyRules(cfg.Username, restrictions(cfg))); err != nil {
		return nil, err
	}

	return a, nil
}

// newEnforcer initializes a Casbin backed enforcer with policies persisted in MySQL.
func newEnforcer(_ context.Context, logger *slog.Logger, cfg *config.Config) (enforcer.Enforcer, error) {
	logger.Info("initializing enforcer with Casbin")

	policyRetriever, err := newPolicyRetriever(cfg)
	if err != nil {
		return nil, err
	}

	decisionMaker, err := casbin.NewDecisionMaker(casbin.DefaultModel, policyRetriever)
	if err != nil {
		return nil, err
	}

	return enforcer.NewEnforcer(decisionMaker), nil
}
