package dto

import "shareit/internal/models"

type ErrorResponse struct {
	Error string `json:"error"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func NewUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId"`
}

func NewItemResponse(i *models.Item) ItemResponse {
	resp := ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		OwnerID:     i.OwnerID,
	}
	if i.RequestID != 0 {
		requestID := i.RequestID
		resp.RequestID = &requestID
	}
	return resp
}

func NewItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, NewItemResponse(i))
	}
	return out
}

// ItemDetailsResponse is an item with its comments and, for the owner, the
// neighbouring approved bookings.
type ItemDetailsResponse struct {
	ItemResponse
	LastBooking *BookingShort     `json:"lastBooking"`
	NextBooking *BookingShort     `json:"nextBooking"`
	Comments    []CommentResponse `json:"comments"`
}

func NewItemDetailsResponse(d *models.ItemDetails) ItemDetailsResponse {
	return ItemDetailsResponse{
		ItemResponse: NewItemResponse(&d.Item),
		LastBooking:  NewBookingShort(d.LastBooking),
		NextBooking:  NewBookingShort(d.NextBooking),
		Comments:     NewCommentResponses(d.Comments),
	}
}

func NewItemDetailsResponses(items []*models.ItemDetails) []ItemDetailsResponse {
	out := make([]ItemDetailsResponse, 0, len(items))
	for _, d := range items {
		out = append(out, NewItemDetailsResponse(d))
	}
	return out
}

type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID       int64  `json:"id"`
	Start    *Time  `json:"start"`
	End      *Time  `json:"end"`
	Status   string `json:"status"`
	ItemID   int64  `json:"itemId"`
	BookerID int64  `json:"bookerId"`
	Item     Ref    `json:"item"`
	Booker   Ref    `json:"booker"`
}

func NewBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:       b.ID,
		Start:    NewTime(b.Start),
		End:      NewTime(b.End),
		Status:   string(b.Status),
		ItemID:   b.ItemID,
		BookerID: b.BookerID,
		Item:     Ref{ID: b.ItemID, Name: b.ItemName},
		Booker:   Ref{ID: b.BookerID, Name: b.BookerName},
	}
}

func NewBookingResponses(bookings []*models.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingResponse(b))
	}
	return out
}

// BookingShort is the booking summary embedded in item details.
type BookingShort struct {
	ID       int64  `json:"id"`
	Start    *Time  `json:"start"`
	End      *Time  `json:"end"`
	ItemID   int64  `json:"itemId"`
	BookerID int64  `json:"bookerId"`
	Status   string `json:"status"`
}

func NewBookingShort(b *models.Booking) *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{
		ID:       b.ID,
		Start:    NewTime(b.Start),
		End:      NewTime(b.End),
		ItemID:   b.ItemID,
		BookerID: b.BookerID,
		Status:   string(b.Status),
	}
}

type CommentResponse struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	AuthorName string `json:"authorName"`
	Created    *Time  `json:"created"`
}

func NewCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{ID: c.ID, Text: c.Text, AuthorName: c.AuthorName, Created: NewTime(c.Created)}
}

func NewCommentResponses(comments []*models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentResponse(c))
	}
	return out
}

type ItemRequestResponse struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	RequestorID int64          `json:"requestorId"`
	Created     *Time          `json:"created"`
	Items       []ItemResponse `json:"items"`
}

func NewItemRequestResponse(r *models.ItemRequest) ItemRequestResponse {
	return ItemRequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.RequestorID,
		Created:     NewTime(r.Created),
		Items:       NewItemResponses(r.Items),
	}
}

func NewItemRequestResponses(requests []*models.ItemRequest) []ItemRequestResponse {
	out := make([]ItemRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, NewItemRequestResponse(r))
	}
	return out
}
