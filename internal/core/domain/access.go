package domain

// Operation identifies a protected action in the access policy.
type Operation string

const (
	OpReadSeries        Operation = "series:read"
	OpWriteSeries       Operation = "series:write"
	OpReadMeasurement   Operation = "measurement:read"
	OpWriteMeasurement  Operation = "measurement:write"
	OpChangeOwnPassword Operation = "password:change"
)

// AccessPolicy lists the roles allowed to perform each operation. A nil entry
// means any authenticated identity.
var AccessPolicy = map[Operation][]Role{
	OpReadSeries:        {RoleAdmin, RoleUser},
	OpWriteSeries:       {RoleAdmin},
	OpReadMeasurement:   {RoleAdmin, RoleUser},
	OpWriteMeasurement:  {RoleAdmin},
	OpChangeOwnPassword: nil,
}

// RolesFor returns the allowed roles for op and whether op is in the policy.
func RolesFor(op Operation) ([]Role, bool) {
	roles, ok := AccessPolicy[op]
	return roles, ok
}
