package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
	"github.com/wellnest/wellnest-api/pkg/helpers"
)

func accountFixture() (*AccountService, *fakeAccounts) {
	accounts := newFakeAccounts()
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	return NewAccountService(accounts, jwt, nil, nil, "", nil), accounts
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := accountFixture()

	a, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Budi Santoso",
		Email:    "  Budi@Example.COM ",
		Password: "password123",
		Role:     "consumer",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if a.Email != "budi@example.com" {
		t.Errorf("email = %q, want lowercased trimmed", a.Email)
	}
	if a.Password == "password123" {
		t.Error("password stored in plain text")
	}

	got, err := svc.Authenticate(context.Background(), "budi@example.com", "password123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != a.ID {
		t.Errorf("authenticated id = %s, want %s", got.ID, a.ID)
	}

	if _, err := svc.Authenticate(context.Background(), "budi@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := accountFixture()

	in := RegisterInput{Name: "A", Email: "a@example.com", Password: "password123", Role: "consumer"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second Register err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _ := accountFixture()

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "A", Email: "a@example.com", Password: "password123", Role: "practitioner",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	a, pair, err := svc.Login(context.Background(), "a@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != a.ID || claims.Role != "practitioner" {
		t.Errorf("claims = %+v, want id %s role practitioner", claims, a.ID)
	}
}

func TestRefreshRotatesPair(t *testing.T) {
	svc, _ := accountFixture()

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "A", Email: "a@example.com", Password: "password123", Role: "consumer",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, pair, err := svc.Login(context.Background(), "a@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rotated.AccessToken == "" {
		t.Error("expected a fresh access token")
	}

	if _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("garbage refresh err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthStorageFailureIsNotInvalidCredentials(t *testing.T) {
	svc, accounts := accountFixture()

	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "A", Email: "a@example.com", Password: "password123", Role: "consumer",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, pair, err := svc.Login(context.Background(), "a@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	accounts.readErr = errors.New("connection refused")

	if _, err := svc.Authenticate(context.Background(), "a@example.com", "password123"); errors.Is(err, ErrInvalidCredentials) || err == nil {
		t.Errorf("Authenticate err = %v, want the storage error propagated", err)
	}
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); errors.Is(err, ErrInvalidCredentials) || err == nil {
		t.Errorf("Refresh err = %v, want the storage error propagated", err)
	}
}

func TestGetConsumerProfileDefaults(t *testing.T) {
	svc, accounts := accountFixture()
	c := accounts.add("Budi", "budi@example.com", entity.RoleConsumer)

	p, a, err := svc.GetConsumerProfile(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("GetConsumerProfile: %v", err)
	}
	if a.ID != c.ID {
		t.Errorf("account id = %s", a.ID)
	}
	if p.Age != nil || p.HealthGoals == nil || p.Interests == nil {
		t.Errorf("expected empty default profile, got %+v", p)
	}
}

func TestUpdateConsumerProfileNormalizesTags(t *testing.T) {
	svc, accounts := accountFixture()
	c := accounts.add("Budi", "budi@example.com", entity.RoleConsumer)

	age := 31
	p, err := svc.UpdateConsumerProfile(context.Background(), c.ID, ConsumerProfileInput{
		Age:    &age,
		Gender: "Other",
		About:  "hello",
		HealthGoals: []string{
			" Better sleep ", "Better sleep", "", "Stress", "Fitness", "Posture", "Energy", "Seventh",
		},
		Interests: []string{"Yoga"},
	})
	if err != nil {
		t.Fatalf("UpdateConsumerProfile: %v", err)
	}
	if len(p.HealthGoals) != 5 {
		t.Errorf("health goals = %v, want capped at 5", p.HealthGoals)
	}
	if p.HealthGoals[0] != "Better sleep" {
		t.Errorf("first goal = %q, want trimmed %q", p.HealthGoals[0], "Better sleep")
	}
}

func TestUpdateConsumerProfileValidation(t *testing.T) {
	svc, accounts := accountFixture()
	c := accounts.add("Budi", "budi@example.com", entity.RoleConsumer)

	bad := 121
	cases := []struct {
		name string
		in   ConsumerProfileInput
	}{
		{"age too high", ConsumerProfileInput{Age: &bad}},
		{"bad gender", ConsumerProfileInput{Gender: "Unknown"}},
		{"about too long", ConsumerProfileInput{About: strings.Repeat("x", 501)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.UpdateConsumerProfile(context.Background(), c.ID, tc.in); !IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}
