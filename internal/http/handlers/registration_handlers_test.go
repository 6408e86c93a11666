package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/praveshgrewal/UCMS/domain"
	"github.com/praveshgrewal/UCMS/internal/mocks"
)

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST(path, handler)

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegistrationHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*mocks.MockRegistrationService)
		expectedStatus int
	}{
		{
			name: "successful submission",
			requestBody: RegisterRequest{
				Name:  "Asha Rao",
				Email: "asha@example.com",
				Phone: "+919876543210",
			},
			setupMocks: func(svc *mocks.MockRegistrationService) {
				svc.SubmitFunc = func(ctx context.Context, profile *domain.Profile) (*domain.SubmissionResult, error) {
					if profile.Name != "Asha Rao" {
						t.Errorf("unexpected profile name %q", profile.Name)
					}
					return &domain.SubmissionResult{ProfileID: 10, SMSSent: true, EmailSent: false}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			requestBody:    RegisterRequest{Email: "asha@example.com"},
			setupMocks:     func(svc *mocks.MockRegistrationService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "no contact on the submission",
			requestBody: RegisterRequest{Name: "Asha Rao"},
			setupMocks: func(svc *mocks.MockRegistrationService) {
				svc.SubmitFunc = func(ctx context.Context, profile *domain.Profile) (*domain.SubmissionResult, error) {
					return nil, domain.ErrContactRequired
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "duplicate of an approved registration",
			requestBody: RegisterRequest{Name: "Asha Rao", Email: "asha@example.com"},
			setupMocks: func(svc *mocks.MockRegistrationService) {
				svc.SubmitFunc = func(ctx context.Context, profile *domain.Profile) (*domain.SubmissionResult, error) {
					return nil, domain.ErrAlreadyRegistered
				}
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockRegistrationService()
			tt.setupMocks(svc)
			h := NewRegistrationHandlers(svc)

			w := postJSON(t, h.Register, "/auth/register", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRegistrationHandlers_Register_ResponseBody(t *testing.T) {
	svc := mocks.NewMockRegistrationService()
	svc.SubmitFunc = func(ctx context.Context, profile *domain.Profile) (*domain.SubmissionResult, error) {
		return &domain.SubmissionResult{ProfileID: 10, SMSSent: true, EmailSent: false}, nil
	}
	h := NewRegistrationHandlers(svc)

	w := postJSON(t, h.Register, "/auth/register", RegisterRequest{Name: "Asha", Phone: "+919876543210"})

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data envelope, got %v", body)
	}
	if data["profile_id"] != float64(10) {
		t.Errorf("expected profile_id 10, got %v", data["profile_id"])
	}
	if data["sms_sent"] != true || data["email_sent"] != false {
		t.Errorf("expected per-channel dispatch flags, got %v", data)
	}
}

func TestRegistrationHandlers_Verify(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    VerifyRequest
		verifyError    error
		expectedStatus int
	}{
		{
			name:           "successful verification",
			requestBody:    VerifyRequest{ProfileID: 10, PhoneCode: "111111", EmailCode: "222222"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid code",
			requestBody:    VerifyRequest{ProfileID: 10, PhoneCode: "000000"},
			verifyError:    domain.ErrCodeInvalid,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown profile",
			requestBody:    VerifyRequest{ProfileID: 99, PhoneCode: "111111"},
			verifyError:    domain.ErrProfileNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockRegistrationService()
			svc.CompleteVerificationFunc = func(ctx context.Context, profileID uint, phoneCode, emailCode string) error {
				return tt.verifyError
			}
			h := NewRegistrationHandlers(svc)

			w := postJSON(t, h.Verify, "/auth/register/verify", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRegistrationHandlers_Resend(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    ResendRequest
		resendError    error
		expectedStatus int
	}{
		{
			name:           "successful resend",
			requestBody:    ResendRequest{Contact: "a@example.com", Channel: "email"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "throttled",
			requestBody:    ResendRequest{Contact: "a@example.com", Channel: "email"},
			resendError:    domain.ErrResendThrottled,
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:           "channel not one of phone or email",
			requestBody:    ResendRequest{Contact: "a@example.com", Channel: "carrier-pigeon"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockRegistrationService()
			svc.ResendFunc = func(ctx context.Context, contact string, channel domain.Channel) error {
				return tt.resendError
			}
			h := NewRegistrationHandlers(svc)

			w := postJSON(t, h.Resend, "/auth/otp/resend", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
