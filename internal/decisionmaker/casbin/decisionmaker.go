package casbin

import (
	"context"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"

	"github.com/bmccool/aws-transfer-project/internal/decisionmaker"
	"github.com/bmccool/aws-transfer-project/internal/infoprovider"
)

type decisionMaker struct {
	enforcer casbin.IEnforcer
}

// MakeDecision evaluates a decision request based on provided subject, server, and source address using the enforcer.
// It first loads the latest policy and then enforces the decision based on the request parameters.
func (d *decisionMaker) MakeDecision(_ context.Context, req *decisionmaker.DecisionRequest) (bool, error) {
	err := d.enforcer.LoadPolicy()
	if err != nil {
		return false, err
	}

	return d.enforcer.Enforce(req.Subject, req.Resource, req.SourceIP)
}

// NewDecisionMaker creates a new instance of DecisionMaker using the provided Casbin configuration and policy repository adapter.
func NewDecisionMaker(config string, policyRepo persist.Adapter) (decisionmaker.DecisionMaker, error) {
	m, err := model.NewModelFromString(config)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m, policyRepo)
	if err != nil {
		return nil, err
	}

	return &decisionMaker{enforcer: enforcer}, nil
}

// PolicyRules expands restrictions for subject into policy lines, one per server and source
// pair. An empty list becomes Wildcard.
func PolicyRules(subject string, r infoprovider.Restrictions) [][]string {
	servers := orWildcard(r.ServerIDs)
	sources := orWildcard(r.SourceCIDRs)

	rules := make([][]string, 0, len(servers)*len(sources))
	for _, srv := range servers {
		for _, ip := range sources {
			rules = append(rules, []string{subject, srv, ip})
		}
	}

	return rules
}

func orWildcard(values []string) []string {
	if len(values) == 0 {
		return []string{Wildcard}
	}
	return values
}
