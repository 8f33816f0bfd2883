package infoprovider

import "fmt"

type staticInfoProvider struct {
	subject      string
	restrictions Restrictions
}

// GetRestrictions returns the configured restrictions for the configured subject.
// It returns an error for any other subject.
func (p *staticInfoProvider) GetRestrictions(subject string) (*Restrictions, error) {
	if subject != p.subject {
		return nil, fmt.Errorf("user %s not found", subject)
	}

	return &Restrictions{
		ServerIDs:   nonNil(p.restrictions.ServerIDs),
		SourceCIDRs: nonNil(p.restrictions.SourceCIDRs),
	}, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// NewStaticInfoProvider initializes an InfoProvider that knows a single subject.
func NewStaticInfoProvider(subject string, restrictions Restrictions) InfoProvider {
	return &staticInfoProvider{subject: subject, restrictions: restrictions}
}
