package class

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gymflow/internal/schedule"
)

func setupRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(NewService(repo))

	router := gin.New()
	router.POST("/admin/classes", handler.ScheduleClass)
	router.PATCH("/admin/classes/:classID", handler.UpdateClass)
	router.DELETE("/admin/classes/:classID", handler.DeleteClass)
	router.GET("/classes/:classID", handler.GetClass)
	return router
}

func TestHandler_ScheduleClass(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	window := schedule.NewClassWindow(start)

	scheduleBody := func() *bytes.Reader {
		body, _ := json.Marshal(ScheduleClassRequest{
			TrainerID: 1,
			RoomID:    2,
			Activity:  "yoga",
			StartsAt:  start.Format(time.RFC3339),
			Capacity:  20,
		})
		return bytes.NewReader(body)
	}

	t.Run("created", func(t *testing.T) {
		repo := new(MockClassRepo)
		repo.On("Schedule", mock.Anything, 1, 2, "yoga", window, 20).Return(&Class{
			ID:       10,
			StartsAt: window.Start,
			EndsAt:   window.End,
		}, nil)

		req := httptest.NewRequest("POST", "/admin/classes", scheduleBody())
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		setupRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var created Class
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, 10, created.ID)
	})

	t.Run("trainer conflict carries kind and class id", func(t *testing.T) {
		repo := new(MockClassRepo)
		repo.On("Schedule", mock.Anything, 1, 2, "yoga", window, 20).
			Return(nil, &ConflictError{Kind: TrainerBusy, ClassID: 7})

		req := httptest.NewRequest("POST", "/admin/classes", scheduleBody())
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		setupRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "trainer_busy", resp["kind"])
		assert.Equal(t, float64(7), resp["conflicting_class_id"])
	})

	t.Run("unknown trainer", func(t *testing.T) {
		repo := new(MockClassRepo)
		repo.On("Schedule", mock.Anything, 1, 2, "yoga", window, 20).
			Return(nil, ErrTrainerNotFound)

		req := httptest.NewRequest("POST", "/admin/classes", scheduleBody())
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		setupRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad start time", func(t *testing.T) {
		repo := new(MockClassRepo)
		body, _ := json.Marshal(ScheduleClassRequest{
			TrainerID: 1,
			RoomID:    2,
			Activity:  "yoga",
			StartsAt:  "next tuesday",
			Capacity:  20,
		})

		req := httptest.NewRequest("POST", "/admin/classes", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		setupRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Schedule")
	})
}

func TestHandler_UpdateClass(t *testing.T) {
	t.Run("empty patch", func(t *testing.T) {
		repo := new(MockClassRepo)

		req := httptest.NewRequest("PATCH", "/admin/classes/10", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		setupRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("room conflict", func(t *testing.T) {
		repo := new(MockClassRepo)
		repo.On("Update", mock.Anything, 10, mock.Anything).
			Return(nil, &ConflictError{Kind: RoomBusy, ClassID: 8})

		req := httptest.NewRequest("PATCH", "/admin/classes/10", bytes.NewReader([]byte(`{"room_id": 3}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		setupRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "room_busy")
	})
}

func TestHandler_DeleteClass(t *testing.T) {
	t.Run("blocked by enrollments", func(t *testing.T) {
		repo := new(MockClassRepo)
		repo.On("Delete", mock.Anything, 10).Return(&IntegrityError{Enrollments: 3})

		req := httptest.NewRequest("DELETE", "/admin/classes/10", nil)
		w := httptest.NewRecorder()
		setupRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(3), resp["enrolled"])
	})

	t.Run("deleted", func(t *testing.T) {
		repo := new(MockClassRepo)
		repo.On("Delete", mock.Anything, 10).Return(nil)

		req := httptest.NewRequest("DELETE", "/admin/classes/10", nil)
		w := httptest.NewRecorder()
		setupRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown class", func(t *testing.T) {
		repo := new(MockClassRepo)
		repo.On("Delete", mock.Anything, 99).Return(ErrClassNotFound)

		req := httptest.NewRequest("DELETE", "/admin/classes/99", nil)
		w := httptest.NewRecorder()
		setupRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
