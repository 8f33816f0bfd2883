package infoprovider

// Restrictions narrows where a user may log in from. Empty lists place no restriction.
type Restrictions struct {
	ServerIDs   []string
	SourceCIDRs []string
}

type InfoProvider interface {
	GetRestrictions(subject string) (*Restrictions, error)
}
