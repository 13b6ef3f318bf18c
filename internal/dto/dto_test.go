package dto

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_JSON(t *testing.T) {
	var got struct {
		Start *Time `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2026-05-01T10:30:00"}`), &got))
	require.NotNil(t, got.Start)
	assert.True(t, got.Start.Equal(time.Date(2026, 5, 1, 10, 30, 0, 0, time.Local)))

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2026-05-01T10:30:00"}`, string(raw))

	require.NoError(t, json.Unmarshal([]byte(`{"start":"2026-05-01T10:30:00Z"}`), &got))
	assert.True(t, got.Start.Equal(time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC)))

	assert.Error(t, json.Unmarshal([]byte(`{"start":"01.05.2026"}`), &got))
	assert.Error(t, json.Unmarshal([]byte(`{"start":12}`), &got))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		req     interface{}
		wantErr string
	}{
		{"valid user", `{"name":"ann","email":"ann@example.com"}`, &UserCreate{}, ""},
		{"bad email", `{"name":"ann","email":"ann"}`, &UserCreate{}, "email must be a valid email"},
		{"blank name", `{"name":"  ","email":"ann@example.com"}`, &UserCreate{}, "name must not be blank"},
		{"patch keeps nil", `{}`, &UserUpdate{}, ""},
		{"patch blank name", `{"name":""}`, &UserUpdate{}, "name must not be blank"},
		{"item without available", `{"name":"drill","description":"d"}`, &ItemCreate{}, "available is required"},
		{"item", `{"name":"drill","description":"d","available":false}`, &ItemCreate{}, ""},
		{"item bad request id", `{"name":"drill","description":"d","available":true,"requestId":0}`, &ItemCreate{}, "requestId must be greater than 0"},
		{"booking missing end", `{"itemId":1,"start":"2030-01-01T10:00:00"}`, &BookingCreate{}, "end is required"},
		{"booking missing item", `{"start":"2030-01-01T10:00:00","end":"2030-01-01T11:00:00"}`, &BookingCreate{}, "itemId is required"},
		{"blank comment", `{"text":"\t"}`, &CommentCreate{}, "text must not be blank"},
		{"request", `{"description":"need a drill"}`, &RequestCreate{}, ""},
		{"malformed", `{"name":`, &UserCreate{}, "malformed JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decode(strings.NewReader(tt.body), tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBookingCreate_CheckFuture(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	req := BookingCreate{ItemID: 1, Start: &Time{now.Add(time.Hour)}, End: &Time{now.Add(2 * time.Hour)}}
	assert.NoError(t, req.CheckFuture(now))

	req.Start = &Time{now}
	assert.ErrorIs(t, req.CheckFuture(now), ErrInvalid)

	req.Start = &Time{now.Add(time.Hour)}
	req.End = &Time{now.Add(-time.Hour)}
	assert.ErrorIs(t, req.CheckFuture(now), ErrInvalid)
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query   string
		want    models.Page
		wantErr bool
	}{
		{"", models.Page{From: 0, Size: 10}, false},
		{"from=5&size=2", models.Page{From: 5, Size: 2}, false},
		{"from=-1", models.Page{}, true},
		{"size=0", models.Page{}, true},
		{"size=abc", models.Page{}, true},
		{"size=101", models.Page{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			page, err := ParsePage(q, 10, 100)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, page)
		})
	}
}

func TestUserID(t *testing.T) {
	h := http.Header{}
	_, err := UserID(h)
	assert.ErrorIs(t, err, ErrInvalid)

	h.Set(models.UserHeader, "abc")
	_, err = UserID(h)
	assert.ErrorIs(t, err, ErrInvalid)

	h.Set(models.UserHeader, "42")
	id, err := UserID(h)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestState(t *testing.T) {
	assert.Equal(t, "ALL", State(url.Values{}))
	assert.Equal(t, "ALL", State(url.Values{"state": {""}}))
	assert.Equal(t, "PAST", State(url.Values{"state": {"PAST"}}))
	assert.Equal(t, "banana", State(url.Values{"state": {"banana"}}))
}

func TestNewItemDetailsResponse(t *testing.T) {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.Local)
	details := &models.ItemDetails{
		Item:        models.Item{ID: 3, Name: "drill", Description: "cordless", Available: true, OwnerID: 1},
		LastBooking: &models.Booking{ID: 8, Start: start, End: start.Add(time.Hour), ItemID: 3, BookerID: 2, Status: models.StatusApproved},
	}

	raw, err := json.Marshal(NewItemDetailsResponse(details))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 3, "name": "drill", "description": "cordless", "available": true, "ownerId": 1, "requestId": null,
		"lastBooking": {"id": 8, "start": "2026-05-01T10:00:00", "end": "2026-05-01T11:00:00", "itemId": 3, "bookerId": 2, "status": "APPROVED"},
		"nextBooking": null,
		"comments": []
	}`, string(raw))
}
