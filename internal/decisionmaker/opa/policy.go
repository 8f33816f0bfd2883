package opa

// DefaultQuery is the Rego query answering whether a login is allowed.
const DefaultQuery = "data.transfer.login.allow"

// DefaultPolicy permits every login unless allow-lists are supplied in the input.
const DefaultPolicy = `
package transfer.login

default allow = false

allow {
    server_allowed
    source_allowed
}

# an empty allow-list places no restriction
server_allowed {
    count(input.allowed_server_ids) == 0
}

server_allowed {
    input.allowed_server_ids[_] == input.server_id
}

source_allowed {
    count(input.allowed_source_cidrs) == 0
}

source_allowed {
    net.cidr_contains(input.allowed_source_cidrs[_], input.source_ip)
}
`
