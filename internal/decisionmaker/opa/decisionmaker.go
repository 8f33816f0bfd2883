package opa

import (
	"context"
	"fmt"
	"sync"

	"github.com/open-policy-agent/opa/rego"

	"github.com/bmccool/aws-transfer-project/internal/decisionmaker"
	"github.com/bmccool/aws-transfer-project/internal/infoprovider"
	"github.com/bmccool/aws-transfer-project/internal/policyretriever"
)

const (
	moduleName = "decisionmaker"
)

type decisionMaker struct {
	policyRetriever policyretriever.PolicyRetriever
	infoProvider    infoprovider.InfoProvider
	query           string

	mu       sync.Mutex
	policy   string
	prepared *rego.PreparedEvalQuery
}

// MakeDecision evaluates the login policy against the given decision request and returns whether the login is allowed.
func (d *decisionMaker) MakeDecision(ctx context.Context, req *decisionmaker.DecisionRequest) (bool, error) {
	policy, err := d.policyRetriever.GetPolicy()
	if err != nil {
		return false, fmt.Errorf("failed to get policy: %w", err)
	}

	query, err := d.prepare(ctx, policy)
	if err != nil {
		return false, fmt.Errorf("failed to prepare query: %w", err)
	}

	restrictions, err := d.infoProvider.GetRestrictions(req.Subject)
	if err != nil {
		return false, fmt.Errorf("failed to get restrictions: %w", err)
	}

	result, err := query.Eval(ctx, rego.EvalInput(map[string]any{
		"username":             req.Subject,
		"server_id":            req.Resource,
		"source_ip":            req.SourceIP,
		"allowed_server_ids":   restrictions.ServerIDs,
		"allowed_source_cidrs": restrictions.SourceCIDRs,
	}))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate query: %w", err)
	}

	if len(result) == 0 || len(result[0].Expressions) == 0 {
		return false, fmt.Errorf("failed to evaluate query: %s is undefined", d.query)
	}

	allowed, ok := result[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("failed to evaluate query: %s is not a boolean", d.query)
	}

	return allowed, nil
}

// prepare compiles the policy, reusing the previous compilation while the policy text is unchanged.
func (d *decisionMaker) prepare(ctx context.Context, policy string) (*rego.PreparedEvalQuery, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.prepared != nil && d.policy == policy {
		return d.prepared, nil
	}

	query, err := rego.New(rego.Module(moduleName, policy), rego.Query(d.query)).PrepareForEval(ctx)
	if err != nil {
		return nil, err
	}

	d.policy = policy
	d.prepared = &query

	return d.prepared, nil
}

// NewDecisionMaker initializes a DecisionMaker with the provided PolicyRetriever, InfoProvider, and Rego query.
func NewDecisionMaker(
	policyRetriever policyretriever.PolicyRetriever,
	infoProvider infoprovider.InfoProvider,
	query string,
) decisionmaker.DecisionMaker {
	return &decisionMaker{
		policyRetriever: policyRetriever,
		infoProvider:    infoProvider,
		query:           query,
	}
}

// Validate compiles policy and query, reporting syntax and type errors before the first login.
func Validate(ctx context.Context, policy, query string) error {
	_, err := rego.New(rego.Module(moduleName, policy), rego.Query(query)).PrepareForEval(ctx)
	return err
}
