package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var userRowColumns = []string{
	"user_id", "name", "email", "password_hash", "role", "is_active",
	"must_change_password", "locked_until", "failed_login_attempts", "token_version",
	"referral_code", "referred_by", "referral_points", "referrals_count", "avatar_url",
	"email_notifications_enabled", "email_notification_types",
	"recovery_codes_generated_at", "last_login_at", "last_login_ip",
	"last_login_user_agent", "created_at", "updated_at",
}

func fullUserRow(userID int64, email string, now time.Time) []driverValue {
	return []driverValue{
		userID, "John", email, "hash", models.RoleMember, true,
		false, nil, 0, int64(0),
		"ABCD2345", nil, int64(0), int64(0), "",
		false, []byte(`["task_created"]`),
		nil, nil, "",
		"", now, now,
	}
}

// driverValue aliases driver.Value for readability in row fixtures.
type driverValue = driver.Value

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Name:         "John",
		Email:        "john@example.com",
		PasswordHash: "hash",
		Role:         models.RoleMember,
	}

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(fullUserRow(1, user.Email, time.Now())...)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Name, user.Email, user.PasswordHash, user.Role, nil, false).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, created.Email)
	}
	if len(created.EmailNotificationTypes) != 1 || created.EmailNotificationTypes[0] != models.NotificationTaskCreated {
		t.Errorf("expected decoded notification types, got %v", created.EmailNotificationTypes)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, models.User{Email: "john@example.com"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, models.User{Email: "john@example.com"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(fullUserRow(1, "john@example.com", time.Now())...)

	mock.ExpectQuery("SELECT user_id").
		WithArgs("john@example.com").
		WillReturnRows(rows)

	found, err := repo.FindUserByEmail(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Email != "john@example.com" {
		t.Errorf("expected email john@example.com, got %s", found.Email)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(ctx, "ghost@example.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByEmail_ScanError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"user_id"}).AddRow(1) // wrong shape → scan error

	mock.ExpectQuery("SELECT user_id").
		WithArgs("john@example.com").
		WillReturnRows(rows)

	_, err := repo.FindUserByEmail(ctx, "john@example.com")
	if err == nil {
		t.Fatal("expected scan error, got nil")
	}
}

func TestSetPassword_NoUser(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(77), "newhash", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPassword(ctx, 77, "newhash", true)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestSetPassword_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(1), "newhash", false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetPassword(ctx, 1, "newhash", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegisterFailedLogin_ReturnsCounter(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"failed_login_attempts"}).AddRow(3)

	mock.ExpectQuery("UPDATE users").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	attempts, err := repo.RegisterFailedLogin(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestSetReferralCode_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(1), "ABCD2345").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.SetReferralCode(ctx, 1, "ABCD2345")
	if !errors.Is(err, ErrReferralCodeExists) {
		t.Fatalf("expected ErrReferralCodeExists, got %v", err)
	}
}

func TestSetReferralCode_AlreadyAssigned(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	// the WHERE referral_code IS NULL guard matches no rows
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(1), "ABCD2345").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetReferralCode(ctx, 1, "ABCD2345")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestAwardReferral_DirectIncrementsCount(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(1), int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AwardReferral(ctx, 1, 100, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReferrerOf_NoReferrer(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"referred_by"}).AddRow(nil)

	mock.ExpectQuery("SELECT referred_by").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	got, err := repo.ReferrerOf(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil referrer, got %v", *got)
	}
}

func TestReferrerOf_WithReferrer(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"referred_by"}).AddRow(int64(42))

	mock.ExpectQuery("SELECT referred_by").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	got, err := repo.ReferrerOf(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != 42 {
		t.Errorf("expected referrer 42, got %v", got)
	}
}

func TestListUsers_ReturnsPageAndTotal(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	dataRows := sqlmock.NewRows([]string{
		"user_id", "name", "email", "role", "is_active",
		"must_change_password", "locked_until", "last_login_at",
		"failed_login_attempts", "created_at",
	}).
		AddRow(1, "John", "john@example.com", models.RoleMember, true, false, nil, nil, 0, now).
		AddRow(2, "Jane", "jane@example.com", models.RoleAdmin, true, false, nil, now, 1, now)

	mock.ExpectQuery("SELECT user_id").WillReturnRows(dataRows)
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	items, total, err := repo.ListUsers(ctx, UserListFilter{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Errorf("expected total 2, got %d", total)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(items))
	}
	if items[1].Role != models.RoleAdmin {
		t.Errorf("expected admin role on second row, got %s", items[1].Role)
	}
}
