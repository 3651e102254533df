package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/model"
)

type userResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Major      *string   `json:"major,omitempty"`
	Year       *string   `json:"year,omitempty"`
	Residence  *string   `json:"residence,omitempty"`
	IsVerified bool      `json:"isVerified"`
	HasAvatar  bool      `json:"hasAvatar"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       string(u.Role),
		Major:      u.Major,
		Year:       u.Year,
		Residence:  u.Residence,
		IsVerified: u.IsVerified,
		HasAvatar:  u.AvatarKey != nil,
		CreatedAt:  u.CreatedAt,
	}
}

func toUserResponses(users []model.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type postResponse struct {
	ID          uuid.UUID  `json:"id"`
	AuthorID    uuid.UUID  `json:"authorId"`
	AuthorName  string     `json:"authorName"`
	ClubID      *uuid.UUID `json:"clubId,omitempty"`
	ClubName    *string    `json:"clubName,omitempty"`
	Content     string     `json:"content"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func toPostResponse(p model.Post) postResponse {
	return postResponse{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
		ClubID:     p.ClubID,
		ClubName:   p.ClubName,
		Content:    p.Content,
		CreatedAt:  p.CreatedAt,
	}
}

func toPostResponses(posts []model.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

type clubResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"ownerId"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toClubResponse(c model.Club) clubResponse {
	return clubResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		OwnerID:     c.OwnerID,
		MemberCount: c.MemberCount,
		CreatedAt:   c.CreatedAt,
	}
}

type eventResponse struct {
	ID          uuid.UUID `json:"id"`
	ClubID      uuid.UUID `json:"clubId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"startsAt"`
	GoingCount  int       `json:"goingCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toEventResponse(e model.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		ClubID:      e.ClubID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		GoingCount:  e.GoingCount,
		CreatedAt:   e.CreatedAt,
	}
}

type messageResponse struct {
	ID          uuid.UUID `json:"id"`
	SenderID    uuid.UUID `json:"senderId"`
	RecipientID uuid.UUID `json:"recipientId"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toMessageResponse(m model.Message) messageResponse {
	return messageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		CreatedAt:   m.CreatedAt,
	}
}
