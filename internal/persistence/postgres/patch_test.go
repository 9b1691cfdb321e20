package postgres

import "testing"

func TestUpdateBuilderSingleColumn(t *testing.T) {
	b := newUpdateBuilder("users")
	b.Set("name", "Ada")

	stmt, args := b.Build("id", "user-1")
	if stmt != "UPDATE users SET name = $1 WHERE id = $2" {
		t.Fatalf("unexpected statement: %s", stmt)
	}
	if len(args) != 2 || args[0] != "Ada" || args[1] != "user-1" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestUpdateBuilderMultipleColumns(t *testing.T) {
	b := newUpdateBuilder("exercises")
	b.Set("sets", 5)
	b.Set("reps", 8)
	b.Set("weight", 62.5)

	stmt, args := b.Build("exercise_id", "e-1")
	if stmt != "UPDATE exercises SET sets = $1, reps = $2, weight = $3 WHERE exercise_id = $4" {
		t.Fatalf("unexpected statement: %s", stmt)
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args got %d", len(args))
	}
	if args[3] != "e-1" {
		t.Fatalf("id must be the final arg, got %v", args[3])
	}
}

func TestUpdateBuilderEmpty(t *testing.T) {
	b := newUpdateBuilder("users")
	if !b.Empty() {
		t.Fatal("fresh builder should be empty")
	}
	b.Set("name", "Ada")
	if b.Empty() {
		t.Fatal("builder with one column reported empty")
	}
}
