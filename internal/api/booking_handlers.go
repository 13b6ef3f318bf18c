package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/dto"
	"shareit/internal/export"
	"shareit/internal/models"
)

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := dto.UserID(r.Header)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req dto.BookingCreate
	if err := dto.Decode(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	booking, err := s.services.Bookings.CreateBooking(r.Context(), userID, req.ItemID, req.Start.Time, req.End.Time)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewBookingResponse(booking))
}

func (s *HTTPServer) handleDecideBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := dto.UserID(r.Header)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	bookingID, err := dto.ParseID(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	booking, err := s.services.Bookings.DecideBooking(r.Context(), userID, bookingID, r.URL.Query().Get("approved"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewBookingResponse(booking))
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := dto.UserID(r.Header)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	bookingID, err := dto.ParseID(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	booking, err := s.services.Bookings.GetBooking(r.Context(), userID, bookingID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewBookingResponse(booking))
}

func (s *HTTPServer) handleListBookerBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := dto.UserID(r.Header)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, err := dto.ParsePage(r.URL.Query(), s.pagination.DefaultSize, s.pagination.MaxSize)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	bookings, err := s.services.Bookings.ListBookerBookings(r.Context(), userID, dto.State(r.URL.Query()), page)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewBookingResponses(bookings))
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := dto.UserID(r.Header)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, err := dto.ParsePage(r.URL.Query(), s.pagination.DefaultSize, s.pagination.MaxSize)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	bookings, err := s.services.Bookings.ListOwnerBookings(r.Context(), userID, dto.State(r.URL.Query()), page)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewBookingResponses(bookings))
}

// handleExportOwnerBookings streams every owner booking in the state as a workbook.
func (s *HTTPServer) handleExportOwnerBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := dto.UserID(r.Header)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	state := dto.State(r.URL.Query())

	bookings, err := s.services.Bookings.ListOwnerBookings(r.Context(), userID, state, models.Page{})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	title := fmt.Sprintf("Owner %d bookings: %s", userID, state)
	if err := export.WriteBookings(&buf, title, bookings, time.Local); err != nil {
		s.fail(w, r, err)
		return
	}

	fileName := fmt.Sprintf("bookings_%d_%s_%s.xlsx", userID, state, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
