package inbound

import (
	"github.com/heralddev/herald/internal/pkg/router"
	"github.com/heralddev/herald/internal/user/usecase"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	var req CreateUserRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Create(r.Context(), usecase.CreateInput{
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		PushToken:   req.PushToken,
	})
	if err != nil {
		return nil, err
	}

	return CreateUserResponse{ID: out.ID, Email: out.Email}, nil
}

func (h *HTTPEndpoint) Get(r *router.Request) (any, error) {
	user, err := h.uc.Get(r.Context(), usecase.GetInput{ID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}

	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		PushToken:   user.PushToken,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}, nil
}

func (h *HTTPEndpoint) GetPreferences(r *router.Request) (any, error) {
	prefs, err := h.uc.GetPreferences(r.Context(), usecase.GetPreferencesInput{UserID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}

	return PreferencesResponse{
		UserID:     prefs.UserID,
		AllowEmail: prefs.AllowEmail,
		AllowSMS:   prefs.AllowSMS,
		AllowPush:  prefs.AllowPush,
		UpdatedAt:  prefs.UpdatedAt,
	}, nil
}

func (h *HTTPEndpoint) UpdatePreferences(r *router.Request) (any, error) {
	var req UpdatePreferencesRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	prefs, err := h.uc.UpdatePreferences(r.Context(), usecase.UpdatePreferencesInput{
		UserID:     r.GetParam("id"),
		AllowEmail: req.AllowEmail,
		AllowSMS:   req.AllowSMS,
		AllowPush:  req.AllowPush,
	})
	if err != nil {
		return nil, err
	}

	return PreferencesResponse{
		UserID:     prefs.UserID,
		AllowEmail: prefs.AllowEmail,
		AllowSMS:   prefs.AllowSMS,
		AllowPush:  prefs.AllowPush,
		UpdatedAt:  prefs.UpdatedAt,
	}, nil
}
