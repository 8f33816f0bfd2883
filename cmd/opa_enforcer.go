//go:build !casbin

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bmccool/aws-transfer-project/internal/config"
	"github.com/bmccool/aws-transfer-project/internal/enforcer"
	"github.com/bmccool/aws-transfer-project/internal/infoprovider"
	"github.com/bmccool/aws-transfer-project/internal/policyretriever"

	pdp "github.com/bmccool/aws-transfer-project/internal/decisionmaker/opa"
)

// newPolicyRetriever returns the built-in login policy unless a policy file is configured.
func newPolicyRetriever(cfg *config.Config) policyretriever.PolicyRetriever {
	if cfg.AccessPolicyFile != "" {
		return policyretriever.NewFilePolicyRetriever(cfg.AccessPolicyFile)
	}

	return policyretriever.NewHardcodedPolicyRetriever(pdp.DefaultPolicy)
}

// newEnforcer initializes an OPA backed enforcer and checks that its policy compiles.
func newEnforcer(ctx context.Context, logger *slog.Logger, cfg *config.Config) (enforcer.Enforcer, error) {
	logger.Info("initializing enforcer with OPA", "policyFile", cfg.AccessPolicyFile)

	retriever := newPolicyRetriever(cfg)
	policy, err := retriever.GetPolicy()
	if err != nil {
		return nil, err
	}

	if err := pdp.Validate(ctx, policy, pdp.DefaultQuery); err != nil {
		return nil, fmt.Errorf("invalid access policy: %w", err)
	}

	decisionMaker := pdp.NewDecisionMaker(
		retriever,
		infoprovider.NewStaticInfoProvider(cfg.Username, restrictions(cfg)),
		pdp.DefaultQuery,
	)

	return enforcer.NewEnforcer(decisionMaker), nil
}
