// Package testutils provides the fiber test harness shared by the route tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/middleware"
	"github.com/amirasaad/spendwise/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// Jwt is the signing config used by every handler test.
var Jwt = &config.Jwt{Secret: "handler-test-secret", Expiry: time.Hour}

// HandlerSuite owns a fiber app and a signed token for one random user.
type HandlerSuite struct {
	suite.Suite
	App    *fiber.App
	UserID uuid.UUID
	Token  string
}

// SetupApp creates a fresh app, lets register mount routes on it and signs a
// token for a new user.
func (s *HandlerSuite) SetupApp(register func(app *fiber.App, cfg *config.Jwt)) {
	s.App = fiber.New()
	register(s.App, Jwt)
	s.UserID = uuid.New()
	token, err := middleware.NewToken(Jwt, s.UserID)
	s.Require().NoError(err)
	s.Token = token
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *HandlerSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.App.Test(req, int(5*time.Second/time.Millisecond))
	s.Require().NoError(err)
	return resp
}

// DecodeData unmarshals the data field of a success envelope into out.
func (s *HandlerSuite) DecodeData(resp *http.Response, out any) {
	defer resp.Body.Close() //nolint:errcheck
	var envelope struct {
		common.Response
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	s.Require().NoError(json.Unmarshal(envelope.Data, out))
}

// DecodeProblem reads an RFC 9457 problem body.
func (s *HandlerSuite) DecodeProblem(resp *http.Response) common.ProblemDetails {
	defer resp.Body.Close() //nolint:errcheck
	var pd common.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}
