package dao

import (
	"Sirius/models"
	"Sirius/types"
	"context"
	"errors"
	"sync"
	"testing"
)

func TestToggleTransitions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	votes := NewVoteDAO(db)
	owner := seedUser(t, db, 1)
	voter := seedUser(t, db, 2)
	m := seedMeme(t, db, owner.ID, "lol")

	steps := []struct {
		mark models.VoteValue
		want VoteState
	}{
		{models.VoteLike, Liked},
		{models.VoteLike, NoVote},
		{models.VoteDislike, Disliked},
		{models.VoteDislike, NoVote},
		{models.VoteLike, Liked},
		{models.VoteDislike, Disliked},
		{models.VoteLike, Liked},
	}
	for i, step := range steps {
		got := mustToggle(t, votes, voter.ID, m.ID, step.mark)
		if got != step.want {
			t.Fatalf("step %d (%s): expected %s, got %s", i, step.mark, step.want, got)
		}
		state, err := votes.State(ctx, voter.ID, m.ID)
		if err != nil {
			t.Fatalf("state: %v", err)
		}
		if state != step.want {
			t.Fatalf("step %d: stored state %s, want %s", i, state, step.want)
		}
		n, _ := votes.Count(ctx, voter.ID, m.ID)
		if n > 1 {
			t.Fatalf("step %d: %d vote rows for one user", i, n)
		}
	}
}

func TestToggleLikeThenDislikeKeepsOneRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	votes := NewVoteDAO(db)
	owner := seedUser(t, db, 1)
	voter := seedUser(t, db, 2)
	m := seedMeme(t, db, owner.ID, "lol")

	mustToggle(t, votes, voter.ID, m.ID, models.VoteLike)
	mustToggle(t, votes, voter.ID, m.ID, models.VoteDislike)

	var rows []models.Vote
	if err := db.Where("user_id = ? AND meme_id = ?", voter.ID, m.ID).Find(&rows).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(rows) != 1 || rows[0].Value != models.VoteDislike {
		t.Fatalf("expected exactly one dislike row, got %+v", rows)
	}

	agg, _ := NewMemeDAO(db).GetAggregate(ctx, m.ID)
	if agg.Likes != 0 || agg.Dislikes != 1 {
		t.Fatalf("unexpected aggregate %+v", agg)
	}
}

func TestToggleMissingRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	votes := NewVoteDAO(db)
	owner := seedUser(t, db, 1)
	m := seedMeme(t, db, owner.ID, "lol")

	if _, err := votes.Toggle(ctx, owner.ID, 404, models.VoteLike); !errors.Is(err, types.ErrMemeNotFound) {
		t.Fatalf("expected ErrMemeNotFound, got %v", err)
	}
	if _, err := votes.Toggle(ctx, 404, m.ID, models.VoteLike); !errors.Is(err, types.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	var n int64
	db.Model(&models.Vote{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected no vote rows, got %d", n)
	}
}

func TestToggleConcurrentSameUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	votes := NewVoteDAO(db)
	owner := seedUser(t, db, 1)
	voter := seedUser(t, db, 2)
	m := seedMeme(t, db, owner.ID, "lol")

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := votes.Toggle(ctx, voter.ID, m.ID, models.VoteLike); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("toggle: %v", err)
	}

	// an even number of identical toggles cancels out
	n, err := votes.Count(ctx, voter.ID, m.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows after %d toggles, got %d", workers, n)
	}
}

func TestVoteUniqueIndexIsBackstop(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, 1)
	m := seedMeme(t, db, owner.ID, "lol")

	if err := db.Create(&models.Vote{UserID: owner.ID, MemeID: m.ID, Value: models.VoteLike}).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := db.Create(&models.Vote{UserID: owner.ID, MemeID: m.ID, Value: models.VoteDislike}).Error; err == nil {
		t.Fatal("expected unique violation on second vote row")
	}
}
