package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

const testIncomeSourceID = "01900000-0000-7000-8000-0000000000ff"

// --- mock income service ---

type mockIncomeService struct {
	createIncomeSourceFn   func(userID, name string, amount float64, frequency models.IncomeFrequency, description *string) (*models.IncomeSource, error)
	getUserIncomeSourcesFn func(userID string) ([]models.IncomeSource, error)
	getIncomeSourceByIDFn  func(userID, incomeSourceID string) (*models.IncomeSource, error)
	deleteIncomeSourceFn   func(userID, incomeSourceID string) error
}

func (m *mockIncomeService) CreateIncomeSource(userID, name string, amount float64, frequency models.IncomeFrequency, description *string) (*models.IncomeSource, error) {
	if m.createIncomeSourceFn != nil {
		return m.createIncomeSourceFn(userID, name, amount, frequency, description)
	}
	return &models.IncomeSource{Base: models.Base{ID: testIncomeSourceID}, UserID: userID, Name: name, Amount: amount, Frequency: frequency}, nil
}

func (m *mockIncomeService) GetUserIncomeSources(userID string) ([]models.IncomeSource, error) {
	if m.getUserIncomeSourcesFn != nil {
		return m.getUserIncomeSourcesFn(userID)
	}
	return []models.IncomeSource{}, nil
}

func (m *mockIncomeService) GetIncomeSourceByID(userID, incomeSourceID string) (*models.IncomeSource, error) {
	if m.getIncomeSourceByIDFn != nil {
		return m.getIncomeSourceByIDFn(userID, incomeSourceID)
	}
	return &models.IncomeSource{Base: models.Base{ID: incomeSourceID}}, nil
}

func (m *mockIncomeService) DeleteIncomeSource(userID, incomeSourceID string) error {
	if m.deleteIncomeSourceFn != nil {
		return m.deleteIncomeSourceFn(userID, incomeSourceID)
	}
	return nil
}

var _ services.IncomeServicer = (*mockIncomeService)(nil)

func setupIncomeRouter(handler *IncomeHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/income", handler.CreateIncomeSource)
	auth.GET("/income", handler.GetIncomeSources)
	auth.GET("/income/:id", handler.GetIncomeSource)
	auth.DELETE("/income/:id", handler.DeleteIncomeSource)
	return r
}

func TestIncomeHandler_CreateIncomeSource(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		audit := &mockAuditService{}
		handler := NewIncomeHandler(&mockIncomeService{}, audit)
		r := setupIncomeRouter(handler)

		rec := doRequest(r, "POST", "/income", `{"name":"Salary","amount":5000,"frequency":"monthly"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		source := parseJSON(t, rec)["income_source"].(map[string]interface{})
		if source["frequency"] != "monthly" {
			t.Errorf("expected monthly, got %v", source["frequency"])
		}
		if got := audit.actions(); len(got) != 1 || got[0] != "CREATE_INCOME_SOURCE" {
			t.Errorf("expected CREATE_INCOME_SOURCE audit entry, got %v", got)
		}
	})

	t.Run("accepts bi-weekly", func(t *testing.T) {
		var got models.IncomeFrequency
		svc := &mockIncomeService{
			createIncomeSourceFn: func(_, _ string, _ float64, frequency models.IncomeFrequency, _ *string) (*models.IncomeSource, error) {
				got = frequency
				return &models.IncomeSource{Frequency: frequency}, nil
			},
		}
		handler := NewIncomeHandler(svc, &mockAuditService{})
		r := setupIncomeRouter(handler)

		rec := doRequest(r, "POST", "/income", `{"name":"Contract","amount":1200,"frequency":"bi-weekly"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got != models.IncomeFrequencyBiWeekly {
			t.Errorf("expected bi-weekly, got %s", got)
		}
	})

	t.Run("returns 400 on unknown frequency", func(t *testing.T) {
		handler := NewIncomeHandler(&mockIncomeService{}, &mockAuditService{})
		r := setupIncomeRouter(handler)

		rec := doRequest(r, "POST", "/income", `{"name":"Salary","amount":5000,"frequency":"hourly"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on zero amount", func(t *testing.T) {
		handler := NewIncomeHandler(&mockIncomeService{}, &mockAuditService{})
		r := setupIncomeRouter(handler)

		rec := doRequest(r, "POST", "/income", `{"name":"Salary","amount":0,"frequency":"monthly"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestIncomeHandler_GetIncomeSources(t *testing.T) {
	svc := &mockIncomeService{
		getUserIncomeSourcesFn: func(userID string) ([]models.IncomeSource, error) {
			return []models.IncomeSource{
				{UserID: userID, Name: "Salary", Amount: 5000, Frequency: models.IncomeFrequencyMonthly},
				{UserID: userID, Name: "Dividends", Amount: 900, Frequency: models.IncomeFrequencyQuarterly},
			}, nil
		},
	}
	handler := NewIncomeHandler(svc, &mockAuditService{})
	r := setupIncomeRouter(handler)

	rec := doRequest(r, "GET", "/income", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	sources := parseJSON(t, rec)["income_sources"].([]interface{})
	if len(sources) != 2 {
		t.Errorf("expected 2 sources, got %d", len(sources))
	}
}

func TestIncomeHandler_GetIncomeSource(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockIncomeService{
			getIncomeSourceByIDFn: func(_, _ string) (*models.IncomeSource, error) {
				return nil, apperrors.ErrIncomeSourceNotFound
			},
		}
		handler := NewIncomeHandler(svc, &mockAuditService{})
		r := setupIncomeRouter(handler)

		rec := doRequest(r, "GET", "/income/"+testIncomeSourceID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INCOME_SOURCE_NOT_FOUND")
	})
}

func TestIncomeHandler_DeleteIncomeSource(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var deleted string
		svc := &mockIncomeService{
			deleteIncomeSourceFn: func(_, id string) error {
				deleted = id
				return nil
			},
		}
		handler := NewIncomeHandler(svc, &mockAuditService{})
		r := setupIncomeRouter(handler)

		rec := doRequest(r, "DELETE", "/income/"+testIncomeSourceID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deleted != testIncomeSourceID {
			t.Errorf("expected %s deleted, got %s", testIncomeSourceID, deleted)
		}
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		handler := NewIncomeHandler(&mockIncomeService{}, &mockAuditService{})
		r := setupIncomeRouter(handler)

		rec := doRequest(r, "DELETE", "/income/salary", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
