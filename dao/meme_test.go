package dao

import (
	"Sirius/models"
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestCreateWithCart(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, 1)

	m := seedMeme(t, db, owner.ID, "lol")
	if m.ID == 0 {
		t.Fatal("expected meme id to be assigned")
	}

	n, err := NewCartDAO(db).CountEntries(ctx, owner.ID, m.ID, models.CartGeneral)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 general entry, got %d", n)
	}
}

func TestCreateWithCart_RollsBackOnCartFailure(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, 1)

	boom := errors.New("cart insert failed")
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_cart", func(tx *gorm.DB) {
		if tx.Statement.Table == "meme_carts" {
			_ = tx.AddError(boom)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	m := &models.Meme{UserID: owner.ID, Caption: "orphan", StorageKey: "k"}
	if err := NewMemeDAO(db).CreateWithCart(ctx, m); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}

	var memes int64
	db.Model(&models.Meme{}).Count(&memes)
	if memes != 0 {
		t.Fatalf("expected no orphan meme, found %d", memes)
	}
}

func TestGetAggregate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	d := NewMemeDAO(db)

	got, err := d.GetAggregate(ctx, 404)
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil for missing meme, got %+v, %v", got, err)
	}

	owner := seedUser(t, db, 1)
	voters := []*models.User{seedUser(t, db, 2), seedUser(t, db, 3), seedUser(t, db, 4)}
	m := seedMeme(t, db, owner.ID, "lol")

	votes := NewVoteDAO(db)
	for i, u := range voters {
		mark := models.VoteLike
		if i == 2 {
			mark = models.VoteDislike
		}
		if _, err := votes.Toggle(ctx, u.ID, m.ID, mark); err != nil {
			t.Fatalf("vote: %v", err)
		}
	}

	got, err = d.GetAggregate(ctx, m.ID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if got.ID != m.ID || got.Caption != "lol" || got.Likes != 2 || got.Dislikes != 1 {
		t.Fatalf("unexpected aggregate %+v", got)
	}

	dl, err := d.GetDownload(ctx, m.ID)
	if err != nil || dl == nil || dl.StorageKey != m.StorageKey {
		t.Fatalf("unexpected download %+v, %v", dl, err)
	}
	if dl, _ := d.GetDownload(ctx, 404); dl != nil {
		t.Fatalf("expected nil download for missing meme, got %+v", dl)
	}
}

func TestListByCart(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	d := NewMemeDAO(db)
	alice := seedUser(t, db, 1)
	bob := seedUser(t, db, 2)

	empty, err := d.ListByCart(ctx, models.CartGeneral, alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", empty)
	}

	x := seedMeme(t, db, alice.ID, "x")
	y := seedMeme(t, db, bob.ID, "y")

	general, err := d.ListByCart(ctx, models.CartGeneral, alice.ID)
	if err != nil {
		t.Fatalf("list general: %v", err)
	}
	if len(general) != 2 || general[0].ID != x.ID || general[1].ID != y.ID {
		t.Fatalf("unexpected general list %+v", general)
	}

	carts := NewCartDAO(db)
	if err := carts.Add(ctx, alice.ID, y.ID, models.CartPersonal); err != nil {
		t.Fatalf("add: %v", err)
	}

	personal, err := d.ListByCart(ctx, models.CartPersonal, alice.ID)
	if err != nil {
		t.Fatalf("list personal: %v", err)
	}
	if len(personal) != 1 || personal[0].ID != y.ID {
		t.Fatalf("unexpected personal list %+v", personal)
	}

	other, _ := d.ListByCart(ctx, models.CartPersonal, bob.ID)
	if len(other) != 0 {
		t.Fatalf("expected bob's personal cart empty, got %+v", other)
	}
}

func TestPickTrendy(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	d := NewMemeDAO(db)
	votes := NewVoteDAO(db)
	owner := seedUser(t, db, 1)
	u1 := seedUser(t, db, 2)
	u2 := seedUser(t, db, 3)

	a := seedMeme(t, db, owner.ID, "a")
	b := seedMeme(t, db, owner.ID, "b")
	c := seedMeme(t, db, owner.ID, "c")

	got, err := d.PickTrendy(ctx)
	if err != nil || got != nil {
		t.Fatalf("expected no trendy meme without likes, got %+v, %v", got, err)
	}

	// b and c tie on likes; the lower id wins
	mustToggle(t, votes, u1.ID, c.ID, models.VoteLike)
	mustToggle(t, votes, u1.ID, b.ID, models.VoteLike)
	mustToggle(t, votes, u2.ID, a.ID, models.VoteDislike)
	mustToggle(t, votes, u2.ID, b.ID, models.VoteDislike)

	got, err = d.PickTrendy(ctx)
	if err != nil {
		t.Fatalf("trendy: %v", err)
	}
	if got == nil || got.ID != b.ID {
		t.Fatalf("expected meme %d, got %+v", b.ID, got)
	}

	mustToggle(t, votes, u2.ID, c.ID, models.VoteLike)
	got, _ = d.PickTrendy(ctx)
	if got == nil || got.ID != c.ID || got.Likes != 2 {
		t.Fatalf("expected meme %d with 2 likes, got %+v", c.ID, got)
	}
}

func TestPickRandom(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	d := NewMemeDAO(db)

	got, err := d.PickRandom(ctx)
	if err != nil || got != nil {
		t.Fatalf("expected empty pick, got %+v, %v", got, err)
	}

	owner := seedUser(t, db, 1)
	ids := map[int64]bool{}
	for _, caption := range []string{"a", "b", "c"} {
		ids[seedMeme(t, db, owner.ID, caption).ID] = true
	}

	for i := 0; i < 20; i++ {
		got, err := d.PickRandom(ctx)
		if err != nil {
			t.Fatalf("pick: %v", err)
		}
		if got == nil || !ids[got.ID] {
			t.Fatalf("unexpected pick %+v", got)
		}
	}
}

func TestPickRandomCountsMemesNotCartRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	d := NewMemeDAO(db)
	owner := seedUser(t, db, 1)
	other := seedUser(t, db, 2)
	m := seedMeme(t, db, owner.ID, "only")

	// a second general row for the same meme must not skew the offset range
	if err := NewCartDAO(db).Add(ctx, other.ID, m.ID, models.CartGeneral); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := NewCartDAO(db).Add(ctx, other.ID, m.ID, models.CartPersonal); err != nil {
		t.Fatalf("add: %v", err)
	}

	mustToggle(t, NewVoteDAO(db), other.ID, m.ID, models.VoteLike)

	for i := 0; i < 20; i++ {
		got, err := d.PickRandom(ctx)
		if err != nil {
			t.Fatalf("pick: %v", err)
		}
		if got == nil || got.ID != m.ID || got.Likes != 1 {
			t.Fatalf("expected meme %d with 1 like, got %+v", m.ID, got)
		}
	}
}

func mustToggle(t *testing.T, d *VoteDAO, userID, memeID int64, mark models.VoteValue) VoteState {
	t.Helper()
	state, err := d.Toggle(context.Background(), userID, memeID, mark)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	return state
}
