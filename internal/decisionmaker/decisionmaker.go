package decisionmaker

import "context"

// DecisionRequest asks whether Subject may log into the server Resource from SourceIP.
type DecisionRequest struct {
	Subject  string
	Resource string
	SourceIP string
}

type DecisionMaker interface {
	MakeDecision(ctx context.Context, req *DecisionRequest) (bool, error)
}
