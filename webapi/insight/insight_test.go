package insight_test

import (
	"testing"
	"time"

	"github.com/amirasaad/spendwise/internal/fixtures/mocks"
	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/domain/insight"
	"github.com/amirasaad/spendwise/pkg/ratelimit"
	insightsvc "github.com/amirasaad/spendwise/pkg/service/insight"
	insightapi "github.com/amirasaad/spendwise/webapi/insight"
	"github.com/amirasaad/spendwise/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InsightHandlerSuite struct {
	testutils.HandlerSuite
	insights *mocks.MockInsightRepository
	limiter  *mocks.MockLimiter
}

func (s *InsightHandlerSuite) SetupTest() {
	s.insights = mocks.NewMockInsightRepository(s.T())
	s.limiter = mocks.NewMockLimiter(s.T())
	uow := mocks.NewMockUnitOfWork(s.insights)
	synth := insightsvc.NewSynthesizer(nil, insightsvc.SynthesizerConfig{}, nil)
	svc := insightsvc.New(uow, synth, insightsvc.NewRanker(insightsvc.DefaultQuotas), s.limiter, nil)
	s.SetupApp(func(app *fiber.App, cfg *config.Jwt) {
		insightapi.InsightRoutes(app, svc, cfg)
	})
}

func (s *InsightHandlerSuite) TestListRequiresToken() {
	resp := s.MakeRequest(fiber.MethodGet, "/insights", "", "")
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *InsightHandlerSuite) TestList() {
	s.insights.On("ListActive", mock.Anything, s.UserID, mock.Anything).Return([]insight.Insight{
		{ID: uuid.New(), UserID: s.UserID, Type: insight.TypeAlert, Title: "Top spending category: TRAVEL", Priority: 8},
	}, nil).Once()

	resp := s.MakeRequest(fiber.MethodGet, "/insights", "", s.Token)

	s.Equal(fiber.StatusOK, resp.StatusCode)
	var got []insight.Insight
	s.DecodeData(resp, &got)
	s.Require().Len(got, 1)
	s.Equal("Top spending category: TRAVEL", got[0].Title)
}

func (s *InsightHandlerSuite) TestGenerateRateLimited() {
	s.limiter.On("Allow", mock.Anything, "insights:"+s.UserID.String()).
		Return(ratelimit.Result{Allowed: false, RetryAfter: 90*time.Second + 200*time.Millisecond}, nil).Once()

	resp := s.MakeRequest(fiber.MethodPost, "/insights/generate", "", s.Token)

	s.Equal(fiber.StatusTooManyRequests, resp.StatusCode)
	s.Equal("91", resp.Header.Get(fiber.HeaderRetryAfter))
	pd := s.DecodeProblem(resp)
	s.Equal(fiber.StatusTooManyRequests, pd.Status)
}

func (s *InsightHandlerSuite) TestDismissInvalidID() {
	resp := s.MakeRequest(fiber.MethodPatch, "/insights/not-a-uuid/dismiss", "", s.Token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("ID must be a valid UUID", s.DecodeProblem(resp).Detail)
}

func (s *InsightHandlerSuite) TestDismissNotFound() {
	id := uuid.New()
	s.insights.On("Get", mock.Anything, s.UserID, id).Return(nil, insight.ErrInsightNotFound).Once()

	resp := s.MakeRequest(fiber.MethodPatch, "/insights/"+id.String()+"/dismiss", "", s.Token)

	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *InsightHandlerSuite) TestMarkViewed() {
	id := uuid.New()
	s.insights.On("Get", mock.Anything, s.UserID, id).
		Return(&insight.Insight{ID: id, UserID: s.UserID, Title: "t"}, nil).Once()
	s.insights.On("SetFlags", mock.Anything, mock.MatchedBy(func(in *insight.Insight) bool {
		return in.IsViewed && !in.IsDismissed
	})).Return(nil).Once()

	resp := s.MakeRequest(fiber.MethodPatch, "/insights/"+id.String()+"/view", "", s.Token)

	s.Equal(fiber.StatusOK, resp.StatusCode)
	var got insight.Insight
	s.DecodeData(resp, &got)
	s.True(got.IsViewed)
}

func (s *InsightHandlerSuite) TestDelete() {
	id := uuid.New()
	s.insights.On("Delete", mock.Anything, s.UserID, id).Return(nil).Once()

	resp := s.MakeRequest(fiber.MethodDelete, "/insights/"+id.String(), "", s.Token)
	defer resp.Body.Close() //nolint:errcheck

	s.Equal(fiber.StatusNoContent, resp.StatusCode)
}

func TestInsightHandlerSuite(t *testing.T) {
	suite.Run(t, new(InsightHandlerSuite))
}
