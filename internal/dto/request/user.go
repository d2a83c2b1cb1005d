package request

type SetRolesRequest struct {
	Roles []string `json:"roles" validate:"dive,oneof=end-user auditor admin"`
}
