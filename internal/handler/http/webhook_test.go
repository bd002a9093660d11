package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/chirpyhq/chirpy/pkg/errors"
)

func TestPolkaWebhook_UpgradesUser(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(t, d)

	d.userRepo.On("UpgradeToChirpyRed", mock.Anything, testUserID).Return(nil)

	rec := doJSON(t, router, http.MethodPost, "/polka/webhooks",
		`{"event":"user.upgraded","data":{"user_id":"`+testUserID+`"}}`,
		map[string]string{"Authorization": "ApiKey " + testPolkaKey})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	d.userRepo.AssertExpectations(t)
}

func TestPolkaWebhook_BadKey(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(t, d)

	tests := []struct {
		name   string
		header map[string]string
	}{
		{"wrong key", map[string]string{"Authorization": "ApiKey wrong-key"}},
		{"missing header", nil},
		{"bearer scheme", map[string]string{"Authorization": "Bearer " + testPolkaKey}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/polka/webhooks",
				`{"event":"user.upgraded","data":{"user_id":"`+testUserID+`"}}`, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	d.userRepo.AssertNotCalled(t, "UpgradeToChirpyRed")
}

// Events other than user.upgraded are acknowledged so Polka stops retrying,
// but nothing happens.
func TestPolkaWebhook_OtherEventIgnored(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(t, d)

	rec := doJSON(t, router, http.MethodPost, "/polka/webhooks",
		`{"event":"user.downgraded","data":{"user_id":"`+testUserID+`"}}`,
		map[string]string{"Authorization": "ApiKey " + testPolkaKey})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	d.userRepo.AssertNotCalled(t, "UpgradeToChirpyRed")
}

func TestPolkaWebhook_MissingUserID(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(t, d)

	rec := doJSON(t, router, http.MethodPost, "/polka/webhooks",
		`{"event":"user.upgraded","data":{}}`,
		map[string]string{"Authorization": "ApiKey " + testPolkaKey})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	d.userRepo.AssertNotCalled(t, "UpgradeToChirpyRed")
}

func TestPolkaWebhook_UnknownUser(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(t, d)

	d.userRepo.On("UpgradeToChirpyRed", mock.Anything, "missing-id").
		Return(apperrors.NotFound("user", "missing-id"))

	rec := doJSON(t, router, http.MethodPost, "/polka/webhooks",
		`{"event":"user.upgraded","data":{"user_id":"missing-id"}}`,
		map[string]string{"Authorization": "ApiKey " + testPolkaKey})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
