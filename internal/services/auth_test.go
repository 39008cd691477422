package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/canonkeeper-backend/internal/repos"
	"github.com/yungbote/canonkeeper-backend/internal/requestdata"
	"github.com/yungbote/canonkeeper-backend/internal/types"
)

func newAuthFixture(t *testing.T) (AuthService, repos.UserTokenRepo) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()
	userRepo := repos.NewUserRepo(db, log)
	userTokenRepo := repos.NewUserTokenRepo(db, log)
	svc := NewAuthService(db, log, userRepo, userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
	return svc, userTokenRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, userTokenRepo := newAuthFixture(t)
	ctx := context.Background()

	user := &types.User{
		Email:       "  Reader@Example.COM ",
		DisplayName: "Reader",
		Password:    "hunter22",
	}
	if err := svc.RegisterUser(ctx, user); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Email != "reader@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Password == "hunter22" {
		t.Fatal("password stored in plain text")
	}

	// duplicate email
	dup := &types.User{Email: "reader@example.com", DisplayName: "Other", Password: "whatever"}
	if err := svc.RegisterUser(ctx, dup); err == nil {
		t.Fatal("duplicate registration succeeded, want error")
	}

	if _, _, err := svc.LoginUser(ctx, "reader@example.com", "wrong"); err == nil {
		t.Fatal("login with wrong password succeeded, want error")
	}

	accessToken, refreshToken, err := svc.LoginUser(ctx, "Reader@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("login returned empty tokens")
	}

	authedCtx, err := svc.SetContextFromToken(ctx, accessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("request data user = %v, want %s", rd, user.ID)
	}

	// refresh rotates the token pair
	newAccess, newRefresh, err := svc.RefreshUser(authedCtx)
	if err != nil {
		t.Fatalf("RefreshUser: %v", err)
	}
	if newRefresh == refreshToken {
		t.Fatal("refresh token was not rotated")
	}
	if _, _, err := svc.RefreshUser(authedCtx); err == nil {
		t.Fatal("reusing a rotated refresh token succeeded, want error")
	}

	// logout deletes the active token row
	authedCtx, err = svc.SetContextFromToken(ctx, newAccess)
	if err != nil {
		t.Fatalf("SetContextFromToken after refresh: %v", err)
	}
	if err := svc.LogoutUser(authedCtx); err != nil {
		t.Fatalf("LogoutUser: %v", err)
	}
	tokens, err := userTokenRepo.GetByUserIDs(ctx, nil, []uuid.UUID{user.ID})
	if err != nil {
		t.Fatalf("load tokens: %v", err)
	}
	if len(tokens) != 0 {
		t.Fatalf("%d token rows survived logout, want 0", len(tokens))
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.SetContextFromToken(ctx, ""); err == nil {
		t.Fatal("empty token accepted")
	}
	if _, err := svc.SetContextFromToken(ctx, "not.a.jwt"); err == nil {
		t.Fatal("malformed token accepted")
	}
}
