package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rosterd/rosterd/internal/model"
)

func TestToUserResponse(t *testing.T) {
	now := time.Now().UTC()
	user := &model.User{
		ID:           "1",
		Name:         "John",
		Email:        "john@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	resp := ToUserResponse(user)

	if resp.ID != "1" || resp.Name != "John" || resp.Email != "john@example.com" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestToUserResponse_Nil(t *testing.T) {
	if resp := ToUserResponse(nil); resp != nil {
		t.Errorf("expected nil for nil input, got %+v", resp)
	}
}

func TestToUserResponse_NoPasswordInJSON(t *testing.T) {
	user := &model.User{
		ID:           "1",
		Name:         "John",
		Email:        "john@example.com",
		PasswordHash: "super-sensitive-hash",
	}

	data, err := json.Marshal(ToUserResponse(user))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	body := string(data)
	if strings.Contains(strings.ToLower(body), "password") || strings.Contains(body, "super-sensitive-hash") {
		t.Errorf("serialized view leaked password material: %s", body)
	}
}

func TestToUserListResponse_EmptyIsNotNil(t *testing.T) {
	resp := ToUserListResponse(nil)
	if resp == nil {
		t.Fatal("expected non-nil slice for empty input")
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected [] serialization, got %s", data)
	}
}

func TestToUserListResponse(t *testing.T) {
	users := []*model.User{
		{ID: "1", Name: "John", Email: "john@example.com"},
		{ID: "2", Name: "Jane", Email: "jane@example.com"},
	}

	resp := ToUserListResponse(users)

	if len(resp) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(resp))
	}
	if resp[0].ID != "1" || resp[1].ID != "2" {
		t.Errorf("order must be passed through: %+v", resp)
	}
}
