package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatslabs/VSC-BookingService/internal/api/middleware"
	createBooking "github.com/seatslabs/VSC-BookingService/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	resp *createBooking.Response
	err  error
	got  *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func doRequest(t *testing.T, uc *fakeUseCase, body string, withUser bool) *httptest.ResponseRecorder {
	t.Helper()

	handler := middleware.Auth(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body))
	if withUser {
		req.Header.Set("X-User-ID", "1")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateBookingHandler(t *testing.T) {
	validBody := `{"customerId":1,"vehicleId":2,"serviceId":3,"slotId":4}`

	t.Run("Created", func(t *testing.T) {
		uc := &fakeUseCase{resp: &createBooking.Response{
			ID:          10,
			Reference:   "BK-123456AB01",
			CustomerID:  1,
			VehicleID:   2,
			ServiceID:   3,
			TimeSlotID:  4,
			Status:      "pending",
			ScheduledAt: time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC),
			Price:       90,
		}}

		rec := doRequest(t, uc, validBody, true)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "BK-123456AB01", resp.Reference)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, 90.0, resp.Price)

		// ActorUserID берется из заголовка, а не из тела
		require.NotNil(t, uc.got)
		assert.Equal(t, int64(1), uc.got.ActorUserID)
	})

	t.Run("SlotFullConflict", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: createBooking.ErrSlotFull}, validBody, true)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("SlotNotFound", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: createBooking.ErrSlotNotFound}, validBody, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ServiceNotFound", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: createBooking.ErrServiceNotFound}, validBody, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: createBooking.ErrInvalidInput}, validBody, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InternalError", func(t *testing.T) {
		rec := doRequest(t, &fakeUseCase{err: createBooking.ErrInternal}, validBody, true)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		uc := &fakeUseCase{}
		rec := doRequest(t, uc, `{"customerId":`, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, uc.got)
	})

	t.Run("MissingUserHeader", func(t *testing.T) {
		uc := &fakeUseCase{}
		rec := doRequest(t, uc, validBody, false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, uc.got)
	})
}
