package handler

// dateLayout is the wire format for dateOfBirth values.
const dateLayout = "2006-01-02"

// envelope is the uniform response shape used across all handlers:
// {success, msg, data|errors}, plus token/tokenType on login.
type envelope struct {
	Success   bool   `json:"success"`
	Msg       string `json:"msg"`
	Token     string `json:"token,omitempty"`
	TokenType string `json:"tokenType,omitempty"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

func ok(msg string, data any) envelope {
	return envelope{Success: true, Msg: msg, Data: data}
}

func fail(msg string) envelope {
	return envelope{Success: false, Msg: msg}
}

// --- Request types ---

type registerRequest struct {
	Name        string         `json:"name"        validate:"required"`
	Email       string         `json:"email"       validate:"required,email"`
	Password    string         `json:"password"    validate:"required,min=6"`
	DateOfBirth string         `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Address     map[string]any `json:"address"     validate:"required"`
	Role        string         `json:"role"        validate:"omitempty,oneof=USER ADMIN"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name        *string        `json:"name"        validate:"omitempty,min=1"`
	Email       *string        `json:"email"       validate:"omitempty,email"`
	Password    *string        `json:"password"    validate:"omitempty,min=6"`
	DateOfBirth *string        `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Address     map[string]any `json:"address"`
	Role        *string        `json:"role"        validate:"omitempty,oneof=USER ADMIN"`
}

type deleteUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}
