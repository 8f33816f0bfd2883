package identityprovider

// HomeDirectoryTypeLogical maps client-visible entries onto backend storage paths.
const HomeDirectoryTypeLogical = "LOGICAL"

// AuthEvent is the payload a Transfer Family server sends to a custom identity provider.
type AuthEvent struct {
	Username string `json:"username"`
	ServerID string `json:"serverId"`
	SourceIP string `json:"sourceIp"`
	Password string `json:"password,omitempty"`
	Protocol string `json:"protocol,omitempty"`
}

// HomeDirectoryMapping maps a client-visible Entry to a backend Target path.
type HomeDirectoryMapping struct {
	Entry  string `json:"Entry"`
	Target string `json:"Target"`
}

// AuthResponse is returned to the Transfer Family server. The zero value serializes to {},
// which the server treats as a failed login.
type AuthResponse struct {
	Role                 string `json:"Role,omitempty"`
	HomeDirectoryType    string `json:"HomeDirectoryType,omitempty"`
	HomeDirectoryDetails string `json:"HomeDirectoryDetails,omitempty"` // JSON encoded []HomeDirectoryMapping
}

// Authorized reports whether the response grants access. The server only grants access when
// Role is present.
func (r AuthResponse) Authorized() bool {
	return r.Role != ""
}

// Attributes are granted to every successful login.
type Attributes struct {
	RoleARN             string
	HomeDirectoryTarget string
}
