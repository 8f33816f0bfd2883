package casbin

// Wildcard matches any subject, server or source in a policy line.
const Wildcard = "*"

// DefaultModel matches a login request (user, server, source address) against policy lines
// that may use Wildcard in any position.
const DefaultModel = `
[request_definition]
r = sub, srv, ip

[policy_definition]
p = sub, srv, ip

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (p.sub == "*" || r.sub == p.sub) && (p.srv == "*" || r.srv == p.srv) && (p.ip == "*" || ipMatch(r.ip, p.ip))
`
