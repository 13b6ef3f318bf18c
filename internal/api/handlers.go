package api

import (
	"net/http"

	"shareit/internal/dto"
)

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.UserCreate
	if err := dto.Decode(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	user, err := s.services.Users.CreateUser(r.Context(), req.ToModel())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.services.Users.ListUsers(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewUserResponses(users))
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseID(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	user, err := s.services.Users.GetUser(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

func (s *HTTPServer) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseID(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req dto.UserUpdate
	if err := dto.Decode(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	user, err := s.services.Users.UpdateUser(r.Context(), id, req.ToPatch())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := dto.ParseID(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.services.Users.DeleteUser(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := dto.UserID(r.Header)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req dto.ItemCreate
	if err := dto.Decode(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	item, err := s.services.Items.CreateItem(r.Context(), userID, req.ToModel())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewItemResponse(item))
}

func (s *HTTPServer) handleListOwnerItems(w http.ResponseWriter, r *http.Request) {
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

	items, err := s.services.Items.ListOwnerItems(r.Context(), userID, page)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewItemDetailsResponses(items))
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	page, err := dto.ParsePage(r.URL.Query(), s.pagination.DefaultSize, s.pagination.MaxSize)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	items, err := s.services.Items.SearchItems(r.Context(), r.URL.Query().Get("text"), page)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewItemResponses(items))
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	userID, err := dto.UserID(r.Header)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	itemID, err := dto.ParseID(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	details, err := s.services.Items.GetItem(r.Context(), userID, itemID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewItemDetailsResponse(details))
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := dto.UserID(r.Header)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	itemID, err := dto.ParseID(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req dto.ItemUpdate
	if err := dto.Decode(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	item, err := s.services.Items.UpdateItem(r.Context(), userID, itemID, req.ToPatch())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewItemResponse(item))
}

func (s *HTTPServer) handleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, err := dto.UserID(r.Header)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	itemID, err := dto.ParseID(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req dto.CommentCreate
	if err := dto.Decode(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	comment, err := s.services.Items.AddComment(r.Context(), userID, itemID, req.Text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewCommentResponse(comment))
}

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := dto.UserID(r.Header)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req dto.RequestCreate
	if err := dto.Decode(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	request, err := s.services.Requests.CreateRequest(r.Context(), userID, req.Description)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewItemRequestResponse(request))
}

func (s *HTTPServer) handleListOwnRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := dto.UserID(r.Header)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	requests, err := s.services.Requests.ListOwnRequests(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewItemRequestResponses(requests))
}

func (s *HTTPServer) handleListOtherRequests(w http.ResponseWriter, r *http.Request) {
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

	requests, err := s.services.Requests.ListOtherRequests(r.Context(), userID, page)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewItemRequestResponses(requests))
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := dto.UserID(r.Header)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	requestID, err := dto.ParseID(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	request, err := s.services.Requests.GetRequest(r.Context(), userID, requestID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewItemRequestResponse(request))
}
