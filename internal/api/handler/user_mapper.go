package handler

import (
	"time"

	"github.com/PankajGoutam/User-Api/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) (ports.RegisterInput, error) {
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return ports.RegisterInput{}, err
	}
	return ports.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: dob,
		Address:     req.Address,
		Role:        req.Role,
	}, nil
}

func toUpdateInput(req updateProfileRequest) (ports.UpdateProfileInput, error) {
	input := ports.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			return ports.UpdateProfileInput{}, err
		}
		input.DateOfBirth = &dob
	}
	return input, nil
}
