package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/praveshgrewal/UCMS/domain"
	"github.com/praveshgrewal/UCMS/internal/mocks"
)

func TestLoginHandlers_RequestOTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		requestError   error
		expectedStatus int
	}{
		{
			name:           "code sent",
			requestBody:    LoginRequest{Contact: "a@example.com"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing contact",
			requestBody:    map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unclassifiable contact",
			requestBody:    LoginRequest{Contact: "???"},
			requestError:   domain.ErrContactRequired,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no approved profile",
			requestBody:    LoginRequest{Contact: "ghost@example.com"},
			requestError:   domain.ErrProfileNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockLoginService()
			svc.RequestLoginFunc = func(ctx context.Context, contact string) (*domain.LoginSession, error) {
				if tt.requestError != nil {
					return nil, tt.requestError
				}
				return &domain.LoginSession{
					Token:     "tok-1",
					Contact:   contact,
					Channel:   domain.ChannelEmail,
					ProfileID: 7,
					ExpiresAt: time.Now().Add(5 * time.Minute),
				}, nil
			}
			h := NewLoginHandlers(svc, mocks.NewMockProfileRepository())

			w := postJSON(t, h.RequestOTP, "/auth/login", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestLoginHandlers_VerifyOTP(t *testing.T) {
	t.Run("successful confirmation returns tokens", func(t *testing.T) {
		svc := mocks.NewMockLoginService()
		svc.ConfirmLoginFunc = func(ctx context.Context, token, code string) (*domain.AuthResult, error) {
			return &domain.AuthResult{
				Identity:     &domain.Identity{ID: 21, Username: "a@example.com", Role: domain.RoleAlumni},
				Profile:      &domain.Profile{ID: 7, Name: "Asha", Email: "a@example.com", Status: domain.StatusApproved},
				AccessToken:  "access",
				RefreshToken: "refresh",
				SessionID:    "sess-1",
				ExpiresIn:    900,
			}, nil
		}
		h := NewLoginHandlers(svc, mocks.NewMockProfileRepository())

		w := postJSON(t, h.VerifyOTP, "/auth/login/verify", LoginVerifyRequest{Token: "tok-1", Code: "123456"})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
		data := body["data"].(map[string]interface{})
		if data["access_token"] != "access" || data["token_type"] != "Bearer" {
			t.Errorf("unexpected token payload: %v", data)
		}
	})

	t.Run("stale token", func(t *testing.T) {
		svc := mocks.NewMockLoginService()
		h := NewLoginHandlers(svc, mocks.NewMockProfileRepository())

		w := postJSON(t, h.VerifyOTP, "/auth/login/verify", LoginVerifyRequest{Token: "gone", Code: "123456"})

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong code", func(t *testing.T) {
		svc := mocks.NewMockLoginService()
		svc.ConfirmLoginFunc = func(ctx context.Context, token, code string) (*domain.AuthResult, error) {
			return nil, domain.ErrCodeInvalid
		}
		h := NewLoginHandlers(svc, mocks.NewMockProfileRepository())

		w := postJSON(t, h.VerifyOTP, "/auth/login/verify", LoginVerifyRequest{Token: "tok-1", Code: "000000"})

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}
