package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"booksaetong/internal/domain/entity"
	pg "booksaetong/internal/infra/adapter/persistence/postgres"
)

func TestUserRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := &entity.User{
		ID: "u-1", Email: "reader@example.com", Nickname: "책벌레",
		Address: "서울", ProfileURL: "https://cdn.example.com/u-1.png",
	}
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "nickname", "address", "profile_url"}).
			AddRow(want.ID, want.Email, want.Nickname, want.Address, want.ProfileURL))

	got, err := pg.NewUserRepo(db).Get(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUserRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "nickname", "address", "profile_url"}))

	got, err := pg.NewUserRepo(db).Get(context.Background(), "nobody")
	if err != nil || got != nil {
		t.Fatalf("Get = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestUserRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(sqlmock.AnyArg(), "reader@example.com", "책벌레", "부산", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &entity.User{Email: "reader@example.com", Nickname: "책벌레", Address: "부산"}
	if err := pg.NewUserRepo(db).Create(context.Background(), u); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if u.ID == "" {
		t.Fatal("Create did not assign an id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserRepo_Update(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET")).
		WithArgs("책벌레", "부산 해운대구", "", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &entity.User{ID: "u-1", Email: "reader@example.com", Nickname: "책벌레", Address: "부산 해운대구"}
	if err := pg.NewUserRepo(db).Update(context.Background(), u); err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserRepo_Update_NoRows(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := pg.NewUserRepo(db).Update(context.Background(), &entity.User{ID: "ghost", Nickname: "x"})
	if err == nil {
		t.Fatal("expected an error for a missing user")
	}
}
