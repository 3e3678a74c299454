package constants

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleWorker  Role = "WORKER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleWorker:
		return true
	}
	return false
}

func ParseRole(raw string) (Role, bool) {
	r := Role(normalizeEnumToken(raw))
	if !r.Valid() {
		return "", false
	}
	return r, true
}
