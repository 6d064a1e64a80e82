//go:build e2e

package checkin_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	reqdto "kidcheck/internal/handler/dto/request"
	resdto "kidcheck/internal/handler/dto/response"
	"kidcheck/tests/common/authtest"
	"kidcheck/tests/common/dbtest"
	"kidcheck/tests/common/httptest"
	"kidcheck/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CheckinE2ESuite struct {
	e2e.SharedSuite
}

func TestCheckinE2E(t *testing.T) {
	suite.Run(t, new(CheckinE2ESuite))
}

// fixture is the minimal cast for one check-in: a logged-in parent, a
// logged-in staff member, a child of that parent, and an open service.
type fixture struct {
	parentID    uuid.UUID
	parentToken string
	staffToken  string
	childID     uuid.UUID
	serviceID   uuid.UUID
}

func (s *CheckinE2ESuite) setupFixture(maxCapacity int) fixture {
	t := s.T()

	parentID, parentToken := authtest.CreateAndLogin(t, s.DB, s.Router, "parent@example.com", "parent")
	_, staffToken := authtest.CreateAndLogin(t, s.DB, s.Router, "staff@example.com", "staff")

	birthDate := time.Now().UTC().AddDate(-6, 0, 0)
	childID := dbtest.CreateTestChild(t, s.DB, "Kim Kid", birthDate, parentID, nil)
	serviceID := dbtest.CreateTestService(t, s.DB, "Morning Care", maxCapacity)

	return fixture{
		parentID:    parentID,
		parentToken: parentToken,
		staffToken:  staffToken,
		childID:     childID,
		serviceID:   serviceID,
	}
}

func (s *CheckinE2ESuite) createRequest(f fixture, note *string) resdto.CheckinRequestResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/requests",
		reqdto.CreateCheckinRequest{ChildID: f.childID, ServiceID: f.serviceID, Note: note}, f.parentToken)

	var created resdto.CheckinRequestResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &created)
	return created
}

func (s *CheckinE2ESuite) TestRequestLifecycle() {
	s.Run("親がリクエストを作成しトークンを受け取る", func() {
		f := s.setupFixture(10)
		note := "Picks up at noon"

		created := s.createRequest(f, &note)

		s.Equal("pending", created.Status)
		s.Equal(f.childID, created.ChildID)
		s.NotEmpty(created.Token)
		s.Len(created.Token, 43)
		s.Require().NotNil(created.Note)
		s.Equal(note, *created.Note)
		s.InDelta(15*60, created.ExpiresInSeconds, 5)
	})

	s.Run("同じ子とサービスへの再リクエストは既存のものを返す", func() {
		f := s.setupFixture(10)
		first := s.createRequest(f, nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/requests",
			reqdto.CreateCheckinRequest{ChildID: f.childID, ServiceID: f.serviceID}, f.parentToken)

		var reused resdto.CheckinRequestResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &reused)
		s.Equal(first.ID, reused.ID)
		s.Equal(first.Token, reused.Token)
	})

	s.Run("アクティブ一覧には保留中のリクエストだけが載る", func() {
		f := s.setupFixture(10)
		created := s.createRequest(f, nil)

		// A request whose validity window has already passed must not
		// show up, even before the sweeper has visited it.
		dbtest.CreateStaleRequest(s.T(), s.DB,
			dbtest.CreateTestChild(s.T(), s.DB, "Old Kid", time.Now().UTC().AddDate(-8, 0, 0), f.parentID, nil),
			f.serviceID, f.parentID, "c3RhbGUtdG9rZW4tZm9yLWxpc3QtZmlsdGVyaW5nLXRlc3Q")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/checkin/requests", nil, f.parentToken)

		var listResponse struct {
			Requests []resdto.CheckinRequestResponse `json:"requests"`
		}
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &listResponse)
		s.Require().Len(listResponse.Requests, 1)
		s.Equal(created.ID, listResponse.Requests[0].ID)
	})

	s.Run("未認証ではリクエストを作成できない", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/requests",
			reqdto.CreateCheckinRequest{ChildID: uuid.New(), ServiceID: uuid.New()}, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("他人の子供ではリクエストを作成できない", func() {
		f := s.setupFixture(10)
		otherParentID := dbtest.CreateTestUser(s.T(), s.DB, "other@example.com", "parent")
		otherChildID := dbtest.CreateTestChild(s.T(), s.DB, "Other Kid", time.Now().UTC().AddDate(-5, 0, 0), otherParentID, nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/requests",
			reqdto.CreateCheckinRequest{ChildID: otherChildID, ServiceID: f.serviceID}, f.parentToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Not a parent of this child")
	})
}

func (s *CheckinE2ESuite) TestScan() {
	s.Run("スタッフはトークンから詳細と安全フラグを取得できる", func() {
		f := s.setupFixture(10)
		created := s.createRequest(f, nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/checkin/scan/"+created.Token, nil, f.staffToken)

		var details resdto.ScanDetailsResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &details)
		s.Equal(created.ID, details.RequestID)
		s.Equal("Kim Kid", details.ChildName)
		s.Equal(6, details.ChildAgeYears)
		s.True(details.Safety.HasAllergies)
		s.Require().NotNil(details.Safety.Allergies)
		s.Equal("peanuts", *details.Safety.Allergies)
		s.False(details.Safety.HasMedicalNotes)
	})

	s.Run("親はスキャンエンドポイントにアクセスできない", func() {
		f := s.setupFixture(10)
		created := s.createRequest(f, nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/checkin/scan/"+created.Token, nil, f.parentToken)
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("未知のトークンは404", func() {
		f := s.setupFixture(10)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/checkin/scan/bm8tc3VjaC10b2tlbg", nil, f.staffToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Not found")
	})

	s.Run("期限切れリクエストのスキャンは410", func() {
		f := s.setupFixture(10)
		staleToken := "c3RhbGUtdG9rZW4tZm9yLXNjYW4tZ29uZS10ZXN0LXh4"
		dbtest.CreateStaleRequest(s.T(), s.DB, f.childID, f.serviceID, f.parentID, staleToken)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/checkin/scan/"+staleToken, nil, f.staffToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusGone, "Request has expired")
	})
}

func (s *CheckinE2ESuite) TestApprove() {
	s.Run("承認で出席レコードが作られる", func() {
		f := s.setupFixture(10)
		created := s.createRequest(f, nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/scan/"+created.Token+"/approve", nil, f.staffToken)

		var approval resdto.ApprovalResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &approval)
		s.NotEqual(uuid.Nil, approval.AttendanceID)
		s.Require().NotNil(approval.Request)
		s.Equal("approved", approval.Request.Status)
		s.NotNil(approval.Request.ProcessedAt)
	})

	s.Run("期限切れトークンの承認は出席レコードを作らない", func() {
		f := s.setupFixture(10)
		staleToken := "c3RhbGUtdG9rZW4tZm9yLWFwcHJvdmUtZ29uZS10ZXN0"
		requestID := dbtest.CreateStaleRequest(s.T(), s.DB, f.childID, f.serviceID, f.parentID, staleToken)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/scan/"+staleToken+"/approve", nil, f.staffToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusGone, "Request has expired")

		s.Equal(0, s.countAttendance(f.serviceID))
		s.NotEqual("approved", s.requestStatus(requestID))
	})

	s.Run("処理済みリクエストの再承認は422", func() {
		f := s.setupFixture(10)
		created := s.createRequest(f, nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/scan/"+created.Token+"/approve", nil, f.staffToken)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/scan/"+created.Token+"/approve", nil, f.staffToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "already been processed")
	})

	s.Run("定員に達したサービスへの承認は409", func() {
		f := s.setupFixture(1)
		first := s.createRequest(f, nil)

		secondChildID := dbtest.CreateTestChild(s.T(), s.DB, "Sib Kid", time.Now().UTC().AddDate(-4, 0, 0), f.parentID, nil)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/requests",
			reqdto.CreateCheckinRequest{ChildID: secondChildID, ServiceID: f.serviceID}, f.parentToken)
		var second resdto.CheckinRequestResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &second)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/scan/"+first.Token+"/approve", nil, f.staffToken)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/scan/"+second.Token+"/approve", nil, f.staffToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "capacity")
	})

	s.Run("同日同サービスへの再チェックインは409", func() {
		f := s.setupFixture(10)
		first := s.createRequest(f, nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/scan/"+first.Token+"/approve", nil, f.staffToken)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		// The pending uniqueness slot is free again, so a fresh request
		// goes through; approving it must trip on today's attendance.
		second := s.createRequest(f, nil)
		s.NotEqual(first.Token, second.Token)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/scan/"+second.Token+"/approve", nil, f.staffToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already checked in")
	})
}

func (s *CheckinE2ESuite) countAttendance(serviceID uuid.UUID) int {
	var count int
	err := s.DB.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM attendance_records WHERE service_id = $1 AND check_out_time IS NULL",
		serviceID).Scan(&count)
	s.Require().NoError(err)
	return count
}

func (s *CheckinE2ESuite) requestStatus(requestID uuid.UUID) string {
	var status string
	err := s.DB.QueryRow(context.Background(),
		"SELECT status FROM checkin_requests WHERE id = $1", requestID).Scan(&status)
	s.Require().NoError(err)
	return status
}

func (s *CheckinE2ESuite) TestConcurrency() {
	s.Run("同じトークンへの同時承認は一度だけ成功する", func() {
		f := s.setupFixture(10)
		created := s.createRequest(f, nil)

		codes := make([]int, 2)
		var wg sync.WaitGroup
		for i := range codes {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
					"/api/checkin/scan/"+created.Token+"/approve", nil, f.staffToken)
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		successes := 0
		for _, code := range codes {
			if code == http.StatusOK {
				successes++
			}
		}
		s.Equal(1, successes, "exactly one approval must win: %v", codes)
		s.Equal(1, s.countAttendance(f.serviceID))
		s.Equal("approved", s.requestStatus(created.ID))
	})

	s.Run("最後の一枠を争う同時承認は定員を守る", func() {
		f := s.setupFixture(1)
		first := s.createRequest(f, nil)

		secondChildID := dbtest.CreateTestChild(s.T(), s.DB, "Sib Kid", time.Now().UTC().AddDate(-4, 0, 0), f.parentID, nil)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/requests",
			reqdto.CreateCheckinRequest{ChildID: secondChildID, ServiceID: f.serviceID}, f.parentToken)
		var second resdto.CheckinRequestResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &second)

		tokens := []string{first.Token, second.Token}
		codes := make([]int, len(tokens))
		var wg sync.WaitGroup
		for i, token := range tokens {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
					"/api/checkin/scan/"+token+"/approve", nil, f.staffToken)
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		successes := 0
		for _, code := range codes {
			if code == http.StatusOK {
				successes++
			}
		}
		s.Equal(1, successes, "one slot, one winner: %v", codes)
		s.Equal(1, s.countAttendance(f.serviceID), "occupancy must not exceed capacity")
	})

	s.Run("スイープと承認が競合しても終端状態はひとつ", func() {
		f := s.setupFixture(10)
		staleToken := "c3RhbGUtdG9rZW4tZm9yLXN3ZWVwLXJhY2UtdGVzdA"
		requestID := dbtest.CreateStaleRequest(s.T(), s.DB, f.childID, f.serviceID, f.parentID, staleToken)

		var wg sync.WaitGroup
		var approveCode int
		wg.Add(2)
		go func() {
			defer wg.Done()
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
				"/api/checkin/scan/"+staleToken+"/approve", nil, f.staffToken)
			approveCode = w.Code
		}()
		go func() {
			defer wg.Done()
			_, err := s.Commands.ExpireStale(context.Background())
			s.NoError(err)
		}()
		wg.Wait()

		s.Equal(http.StatusGone, approveCode)
		s.Equal("expired", s.requestStatus(requestID))
		s.Equal(0, s.countAttendance(f.serviceID), "no attendance record may survive the race")
	})
}

func (s *CheckinE2ESuite) TestReject() {
	s.Run("理由付きで却下できる", func() {
		f := s.setupFixture(10)
		created := s.createRequest(f, nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/scan/"+created.Token+"/reject",
			reqdto.RejectCheckinRequest{Reason: "Pickup card missing"}, f.staffToken)

		var rejected resdto.CheckinRequestResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &rejected)
		s.Equal("rejected", rejected.Status)
		s.Require().NotNil(rejected.RejectionReason)
		s.Equal("Pickup card missing", *rejected.RejectionReason)
	})

	s.Run("理由なしの却下は400", func() {
		f := s.setupFixture(10)
		created := s.createRequest(f, nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/scan/"+created.Token+"/reject",
			map[string]string{}, f.staffToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")

		// Whitespace passes binding but fails domain validation; the
		// request must stay pending either way.
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/scan/"+created.Token+"/reject",
			reqdto.RejectCheckinRequest{Reason: "   "}, f.staffToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Rejection reason is required")

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/checkin/scan/"+created.Token, nil, f.staffToken)
		var details resdto.ScanDetailsResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &details)
		s.Equal("pending", details.Status)
	})
}

func (s *CheckinE2ESuite) TestCancel() {
	s.Run("親は自分のリクエストをキャンセルできる", func() {
		f := s.setupFixture(10)
		created := s.createRequest(f, nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/checkin/requests/"+created.ID.String(), nil, f.parentToken)
		s.Equal(http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/checkin/requests", nil, f.parentToken)
		var listResponse struct {
			Requests []resdto.CheckinRequestResponse `json:"requests"`
		}
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &listResponse)
		s.Empty(listResponse.Requests)
	})

	s.Run("他人のリクエストはキャンセルできない", func() {
		f := s.setupFixture(10)
		created := s.createRequest(f, nil)

		_, otherToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "stranger@example.com", "parent")
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/checkin/requests/"+created.ID.String(), nil, otherToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Not a parent of this child")
	})

	s.Run("処理済みリクエストのキャンセルは422", func() {
		f := s.setupFixture(10)
		created := s.createRequest(f, nil)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkin/scan/"+created.Token+"/approve", nil, f.staffToken)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/checkin/requests/"+created.ID.String(), nil, f.parentToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "already been processed")
	})

	s.Run("存在しないリクエストのキャンセルは404", func() {
		f := s.setupFixture(10)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/checkin/requests/"+uuid.New().String(), nil, f.parentToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Not found")
	})
}
