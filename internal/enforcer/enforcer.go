package enforcer

import (
	"context"
	"strings"

	"github.com/bmccool/aws-transfer-project/internal/decisionmaker"
)

type Enforcer interface {
	Enforce(ctx context.Context, req *LoginRequest) (bool, error)
}

// LoginRequest describes an already authenticated login attempt.
type LoginRequest struct {
	Username string
	ServerID string
	SourceIP string
}

type enforcer struct {
	decisionMaker decisionmaker.DecisionMaker
}

// Enforce asks the decision maker whether the login may proceed. Values are trimmed but keep
// their case since server IDs and usernames are case sensitive.
func (e *enforcer) Enforce(ctx context.Context, req *LoginRequest) (bool, error) {
	return e.decisionMaker.MakeDecision(
		ctx,
		&decisionmaker.DecisionRequest{
			Subject:  strings.TrimSpace(req.Username),
			Resource: strings.TrimSpace(req.ServerID),
			SourceIP: strings.TrimSpace(req.SourceIP),
		},
	)
}

func NewEnforcer(decisionMaker decisionmaker.DecisionMaker) Enforcer {
	return &enforcer{decisionMaker: decisionMaker}
}
