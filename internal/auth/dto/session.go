package dto

type SignInInput struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type UserOutput struct {
	ID        string `json:"id"`
	UserName  string `json:"userName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	RoleName  string `json:"roleName"`
	RoleID    int    `json:"roleId"`
}

type SignInResult struct {
	User      UserOutput `json:"user"`
	Token     string     `json:"token"`
	ExpiresIn int64      `json:"expiresIn"` // seconds
}

type RefreshResult struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"` // seconds
}

// DataEnvelope wraps every successful response body.
type DataEnvelope struct {
	Data any `json:"data"`
}

// ErrorResponse is the single error shape rendered at the boundary.
type ErrorResponse struct {
	Message       string `json:"message"`
	Code          string `json:"code"`
	CorrelationID string `json:"correlationId"`
}
